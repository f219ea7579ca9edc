package scheduler

import "time"

// NormalizeTime truncates a stored time-of-day value to minute precision:
// "22:00:00" and "22:00" both become "22:00". Best effort on malformed
// input, never errors.
func NormalizeTime(v string) string {
	if len(v) <= 5 {
		return v
	}
	return v[:5]
}

// HHMM is the minute-precision comparison key for a wall-clock instant.
func HHMM(t time.Time) string { return t.Format("15:04") }

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
