package scheduler

import (
	"fmt"
	"time"
)

// Clock supplies timezone-aware wall time. Injected so ticks are testable
// and so the timezone is never a process-wide side effect.
type Clock interface {
	Now() time.Time
}

type systemClock struct{ loc *time.Location }

func NewSystemClock(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return systemClock{loc: loc}, nil
}

func (c systemClock) Now() time.Time { return time.Now().In(c.loc) }
