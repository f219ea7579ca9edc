package scheduler

import (
	"time"

	"labfleet/app/models"
)

// AlreadyRan reports whether the task already fired today at its scheduled
// minute. The driver ticks every minute; this keeps a tick that lands twice
// inside the same minute from double-dispatching. It is a guard, not a lock;
// concurrent driver invocations are serialized by TickLock.
func AlreadyRan(task *models.ScheduledTask, now time.Time, scheduled string) bool {
	if task.LastRunAt == nil {
		return false
	}
	last := task.LastRunAt.In(now.Location())
	return sameDate(last, now) && HHMM(last) == scheduled
}
