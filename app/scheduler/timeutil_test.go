package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"22:00", "22:00"},
		{"22:00:00", "22:00"},
		{"07:30:59", "07:30"},
		{"9:00", "9:00"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTime(tt.in))
	}
}

func TestNormalizeTimeIdempotent(t *testing.T) {
	for _, v := range []string{"22:00", "22:00:00", "00:00:01", "", "9:3"} {
		once := NormalizeTime(v)
		assert.Equal(t, once, NormalizeTime(once))
	}
}

func TestHHMM(t *testing.T) {
	at := time.Date(2026, 8, 28, 22, 0, 59, 0, time.UTC)
	assert.Equal(t, "22:00", HHMM(at))
}
