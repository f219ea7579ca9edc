package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduledTaskValidate(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		task    ScheduledTask
		wantErr bool
	}{
		{
			name: "valid daily",
			task: ScheduledTask{Command: CommandShutdown, TargetType: TargetLab, Frequency: FrequencyDaily, Time: "22:00"},
		},
		{
			name: "valid weekly",
			task: ScheduledTask{Command: CommandLock, TargetType: TargetComputer, Frequency: FrequencyWeekly, Time: "08:00", DaysOfWeek: []int{1, 3, 5}},
		},
		{
			name: "valid monthly",
			task: ScheduledTask{Command: CommandRestart, TargetType: TargetLab, Frequency: FrequencyMonthly, Time: "06:00"},
		},
		{
			name: "valid once",
			task: ScheduledTask{Command: CommandWol, TargetType: TargetComputer, Frequency: FrequencyOnce, Time: "07:30", RunAtDate: &date},
		},
		{
			name:    "weekly without days",
			task:    ScheduledTask{Command: CommandShutdown, TargetType: TargetLab, Frequency: FrequencyWeekly},
			wantErr: true,
		},
		{
			name:    "weekly with day out of range",
			task:    ScheduledTask{Command: CommandShutdown, TargetType: TargetLab, Frequency: FrequencyWeekly, DaysOfWeek: []int{7}},
			wantErr: true,
		},
		{
			name:    "once without date",
			task:    ScheduledTask{Command: CommandShutdown, TargetType: TargetLab, Frequency: FrequencyOnce},
			wantErr: true,
		},
		{
			name:    "unknown frequency",
			task:    ScheduledTask{Command: CommandShutdown, TargetType: TargetLab, Frequency: "hourly"},
			wantErr: true,
		},
		{
			name:    "unknown command",
			task:    ScheduledTask{Command: "format", TargetType: TargetLab, Frequency: FrequencyDaily},
			wantErr: true,
		},
		{
			name:    "unknown target type",
			task:    ScheduledTask{Command: CommandShutdown, TargetType: "user", Frequency: FrequencyDaily},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
