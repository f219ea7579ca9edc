package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemClock(t *testing.T) {
	clock, err := NewSystemClock("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", clock.Now().Location().String())

	_, err = NewSystemClock("Not/AZone")
	assert.Error(t, err)
}

func TestNoopLock(t *testing.T) {
	var lock TickLock = NoopLock{}
	ok, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, lock.Release(context.Background()))
}
