package scheduler

import (
	"time"

	"labfleet/app/models"
)

// IsRunDay reports whether now falls on an eligible day for the task.
//
//   - daily: always.
//   - weekly: now's weekday is in days_of_week (Sunday=0).
//   - monthly: now's day-of-month equals the task's creation day; the
//     anchor is the creation day, there is no separate day-of-month field.
//   - once: now's date equals run_at_date. Deactivation is staged by the
//     engine and persisted with the execution record, not here.
//
// Unknown frequencies never run.
func IsRunDay(task *models.ScheduledTask, now time.Time) bool {
	switch task.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		day := int(now.Weekday())
		for _, d := range task.DaysOfWeek {
			if d == day {
				return true
			}
		}
		return false
	case models.FrequencyMonthly:
		return now.Day() == task.CreatedAt.Day()
	case models.FrequencyOnce:
		return task.RunAtDate != nil && sameDate(*task.RunAtDate, now)
	default:
		return false
	}
}
