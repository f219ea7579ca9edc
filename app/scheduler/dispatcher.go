package scheduler

import (
	"fmt"
	"strings"
	"time"

	"labfleet/app/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultCommandValidity = 60 * time.Minute

// Summary is the per-task dispatch outcome. Partial failure is normal:
// a task counts as successful when at least one target succeeded.
type Summary struct {
	Success int
	Total   int
	Errors  []string
}

func (s Summary) Status() string {
	if s.Success > 0 {
		return models.RunStatusSuccess
	}
	return models.RunStatusFailed
}

// Text renders the operator-facing outcome string stored on the task.
func (s Summary) Text() string {
	out := fmt.Sprintf("Executado em %d/%d computador(es)", s.Success, s.Total)
	if len(s.Errors) > 0 {
		out += ". Erros: " + strings.Join(s.Errors, "; ")
	}
	return out
}

// WolSender is the server-side broadcast path; wol.Sender satisfies it.
type WolSender interface {
	Send(mac string) error
}

// Dispatcher turns a resolved target list into pending command records,
// one per computer (per proxy, for WoL).
type Dispatcher struct {
	commands CommandStore
	proxies  *ProxySelector
	wol      WolSender // nil unless send-from-server is enabled
	logger   zerolog.Logger
}

func NewDispatcher(commands CommandStore, proxies *ProxySelector, wolSender WolSender, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{commands: commands, proxies: proxies, wol: wolSender, logger: logger}
}

// Dispatch processes each target independently. Errors are folded into the
// summary; they never abort the loop.
func (d *Dispatcher) Dispatch(task *models.ScheduledTask, targets []models.Computer, now time.Time) Summary {
	sum := Summary{Total: len(targets)}
	for i := range targets {
		target := &targets[i]
		var err error
		if task.Command == models.CommandWol {
			err = d.dispatchWol(task, target, now)
		} else {
			err = d.createCommand(task, target, now)
		}
		if err != nil {
			sum.Errors = append(sum.Errors, fmt.Sprintf("Falha em %s: %v", target.Hostname, err))
			continue
		}
		sum.Success++
	}
	return sum
}

func (d *Dispatcher) createCommand(task *models.ScheduledTask, target *models.Computer, now time.Time) error {
	params := map[string]string{}
	if task.Command == models.CommandMessage {
		params["message"] = task.Message
	}
	return d.commands.Create(&models.ComputerCommand{
		UUID:       uuid.NewString(),
		ComputerID: target.ID,
		UserID:     task.UserID,
		Command:    task.Command,
		Parameters: params,
		Status:     models.CommandStatusPending,
		ExpiresAt:  commandExpiry(task, now),
	})
}

// dispatchWol recruits an online labmate to broadcast the magic packet for
// the (presumably offline) target, or broadcasts from the server itself
// when that mode is configured.
func (d *Dispatcher) dispatchWol(task *models.ScheduledTask, target *models.Computer, now time.Time) error {
	mac, err := TargetMac(target)
	if err != nil {
		return err
	}
	if d.wol != nil {
		if err := d.wol.Send(mac); err != nil {
			return err
		}
		d.logger.Info().Uint("target_id", target.ID).Str("hostname", target.Hostname).
			Msg("wol sent from server")
		return nil
	}
	proxy, err := d.proxies.SelectProxy(target, now)
	if err != nil {
		return err
	}
	d.logger.Info().Uint("target_id", target.ID).Str("target_hostname", target.Hostname).
		Uint("proxy_id", proxy.ID).Str("proxy_hostname", proxy.Hostname).
		Msg("wol proxy selected")
	return d.commands.Create(&models.ComputerCommand{
		UUID:       uuid.NewString(),
		ComputerID: proxy.ID,
		UserID:     task.UserID,
		Command:    models.CommandWol,
		Parameters: map[string]string{
			"target_mac":      mac,
			"target_hostname": target.Hostname,
		},
		Status:    models.CommandStatusPending,
		ExpiresAt: commandExpiry(task, now),
	})
}

func commandExpiry(task *models.ScheduledTask, now time.Time) *time.Time {
	validity := defaultCommandValidity
	if task.CommandValidityMinutes > 0 {
		validity = time.Duration(task.CommandValidityMinutes) * time.Minute
	}
	at := now.Add(validity)
	return &at
}
