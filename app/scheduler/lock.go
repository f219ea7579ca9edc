package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TickLock serializes engine passes. The double-run guard only suppresses
// same-minute duplication against persisted state; overlapping driver
// invocations need an actual lease to guarantee at-most-once dispatch.
type TickLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// NoopLock is used when redis is not configured. Safe only with a single
// driver that never overlaps its own invocations.
type NoopLock struct{}

func (NoopLock) Acquire(context.Context) (bool, error) { return true, nil }
func (NoopLock) Release(context.Context) error         { return nil }

const tickLockKey = "labfleet:scheduler:tick"

// RedisTickLock is a SETNX lease with a TTL slightly above the tick period,
// so a crashed holder cannot wedge the scheduler.
type RedisTickLock struct {
	rdb   *redis.Client
	ttl   time.Duration
	token string
}

func NewRedisTickLock(rdb *redis.Client, ttl time.Duration) *RedisTickLock {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisTickLock{rdb: rdb, ttl: ttl}
}

func (l *RedisTickLock) Acquire(ctx context.Context) (bool, error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, tickLockKey, token, l.ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Release deletes the lease only while we still own it; an expired lease
// taken over by another invocation is left alone.
func (l *RedisTickLock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	const script = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`
	err := l.rdb.Eval(ctx, script, []string{tickLockKey}, l.token).Err()
	l.token = ""
	return err
}
