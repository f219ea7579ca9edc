package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"labfleet/app/models"

	"github.com/rs/zerolog"
)

// Config holds the engine tunables that may be hot-reloaded in daemon mode.
type Config struct {
	// TickTimeout bounds one full pass so a pathological lab cannot stall
	// the next scheduled tick. Zero means unbounded.
	TickTimeout time.Duration
	// RetryOnceUntilSuccess keeps a failed `once` task active so it retries
	// at its next eligible minute instead of firing exactly once regardless
	// of outcome.
	RetryOnceUntilSuccess bool
}

// Engine runs one synchronous batch pass over all active tasks per tick.
// The periodic driver (cron or the daemon loop) is external to it.
type Engine struct {
	tasks      TaskStore
	commands   CommandStore
	resolver   *TargetResolver
	dispatcher *Dispatcher
	clock      Clock
	lock       TickLock
	logger     zerolog.Logger

	mu  sync.Mutex
	cfg Config
}

func NewEngine(tasks TaskStore, commands CommandStore, resolver *TargetResolver, dispatcher *Dispatcher, clock Clock, lock TickLock, logger zerolog.Logger, cfg Config) *Engine {
	return &Engine{
		tasks:      tasks,
		commands:   commands,
		resolver:   resolver,
		dispatcher: dispatcher,
		clock:      clock,
		lock:       lock,
		logger:     logger,
		cfg:        cfg,
	}
}

// UpdateConfig swaps the tunables; used by the config watcher in daemon mode.
func (e *Engine) UpdateConfig(cfg Config) {
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
}

func (e *Engine) config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// RunTick evaluates every active task once. Individual task failures are
// isolated; the returned error only reflects a failure of the pass itself
// (lock, task load, deadline).
func (e *Engine) RunTick(ctx context.Context) error {
	cfg := e.config()
	if cfg.TickTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TickTimeout)
		defer cancel()
	}

	ok, err := e.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire tick lock: %w", err)
	}
	if !ok {
		e.logger.Warn().Msg("previous tick still holds the lock, skipping")
		return nil
	}
	defer func() {
		if err := e.lock.Release(context.WithoutCancel(ctx)); err != nil {
			e.logger.Error().Err(err).Msg("release tick lock")
		}
	}()

	started := time.Now()
	now := e.clock.Now()

	if n, err := e.commands.ExpirePending(now); err != nil {
		e.logger.Error().Err(err).Msg("expire pending commands")
	} else if n > 0 {
		e.logger.Info().Int64("count", n).Msg("marked expired pending commands as failed")
	}

	tasks, err := e.tasks.ListActive()
	if err != nil {
		return fmt.Errorf("load active tasks: %w", err)
	}

	e.logger.Info().
		Str("time", HHMM(now)).
		Int("day", int(now.Weekday())).
		Str("date", now.Format("2006-01-02")).
		Int("tasks", len(tasks)).
		Msg("checking scheduled tasks")

	for i := range tasks {
		select {
		case <-ctx.Done():
			e.logger.Warn().Err(ctx.Err()).Int("remaining", len(tasks)-i).Msg("tick deadline reached")
			return ctx.Err()
		default:
		}
		e.runTask(&tasks[i], now, cfg)
	}

	e.logger.Info().Dur("elapsed", time.Since(started)).Msg("tick complete")
	return nil
}

// runTask walks one task through the pipeline: guard, time match, frequency
// match, target resolution, dispatch, outcome record.
func (e *Engine) runTask(task *models.ScheduledTask, now time.Time, cfg Config) {
	log := e.logger.With().Uint("task_id", task.ID).Str("name", task.Name).Logger()

	scheduled := NormalizeTime(task.Time)
	if AlreadyRan(task, now, scheduled) {
		log.Debug().Str("reason", "already ran this minute").Msg("skip")
		return
	}
	if scheduled != HHMM(now) {
		log.Debug().Str("reason", "time mismatch").Str("scheduled", scheduled).Msg("skip")
		return
	}
	if !IsRunDay(task, now) {
		log.Debug().Str("reason", "not an eligible day").Str("frequency", task.Frequency).Msg("skip")
		return
	}

	log.Info().Str("command", task.Command).Str("target_type", task.TargetType).
		Uint("target_id", task.TargetID).Msg("executing task")

	targets, err := e.resolver.Resolve(task)
	if err != nil {
		e.record(task, now, models.RunStatusFailed, err.Error(), cfg, log)
		log.Error().Err(err).Msg("target resolution failed")
		return
	}
	if len(targets) == 0 {
		e.record(task, now, models.RunStatusFailed, "Nenhum computador no alvo", cfg, log)
		log.Warn().Msg("target resolved to zero computers")
		return
	}

	sum := e.dispatcher.Dispatch(task, targets, now)
	e.record(task, now, sum.Status(), sum.Text(), cfg, log)
	log.Info().Int("success", sum.Success).Int("total", sum.Total).
		Str("status", sum.Status()).Msg("task finished")
}

// record persists the outcome and, for `once` tasks, the staged
// deactivation. Under RetryOnceUntilSuccess a failed `once` stays active.
func (e *Engine) record(task *models.ScheduledTask, now time.Time, status, output string, cfg Config, log zerolog.Logger) {
	deactivate := task.Frequency == models.FrequencyOnce
	if deactivate && cfg.RetryOnceUntilSuccess && status != models.RunStatusSuccess {
		deactivate = false
	}
	if err := e.tasks.RecordRun(task.ID, now, status, output, deactivate); err != nil {
		// A lost write here means the guard cannot see this run next minute.
		log.Error().Err(err).Msg("record execution outcome failed")
	}
}
