package models

import (
	"errors"
	"time"
)

const (
	CommandShutdown = "shutdown"
	CommandRestart  = "restart"
	CommandLock     = "lock"
	CommandLogoff   = "logoff"
	CommandMessage  = "message"
	CommandWol      = "wol"
)

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyOnce    = "once"
)

// Target type tags, normalized at write time.
const (
	TargetLab      = "lab"
	TargetComputer = "computer"
)

const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// ScheduledTask describes what command to run, on which target, how often
// and at what time. Only the last-run fields are mutated by the engine.
type ScheduledTask struct {
	ID                     uint   `gorm:"primaryKey"`
	Name                   string `gorm:"size:255"`
	Command                string `gorm:"size:32"`
	TargetType             string `gorm:"size:16;index:idx_task_target"`
	TargetID               uint   `gorm:"index:idx_task_target"`
	Frequency              string `gorm:"size:16"`
	Time                   string `gorm:"size:8"` // "HH:MM" or "HH:MM:SS"
	DaysOfWeek             []int  `gorm:"serializer:json"` // Sunday=0, weekly only
	RunAtDate              *time.Time // once only
	Message                string `gorm:"size:1000"` // literal text for the message command
	CommandValidityMinutes int    `gorm:"default:60"`
	IsActive               bool   `gorm:"index"`
	UserID                 uint
	LastRunAt              *time.Time
	LastRunStatus          string `gorm:"size:16"`
	LastRunOutput          string `gorm:"size:2048"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

var validCommands = map[string]bool{
	CommandShutdown: true,
	CommandRestart:  true,
	CommandLock:     true,
	CommandLogoff:   true,
	CommandMessage:  true,
	CommandWol:      true,
}

// Validate enforces the per-frequency field requirements. It runs at write
// time so the engine never has to re-derive what a stored task means.
func (t *ScheduledTask) Validate() error {
	if !validCommands[t.Command] {
		return errors.New("comando inválido: " + t.Command)
	}
	if t.TargetType != TargetLab && t.TargetType != TargetComputer {
		return errors.New("tipo de alvo inválido: " + t.TargetType)
	}
	switch t.Frequency {
	case FrequencyDaily, FrequencyMonthly:
	case FrequencyWeekly:
		if len(t.DaysOfWeek) == 0 {
			return errors.New("tarefa semanal exige pelo menos um dia da semana")
		}
		for _, d := range t.DaysOfWeek {
			if d < 0 || d > 6 {
				return errors.New("dia da semana fora do intervalo 0-6")
			}
		}
	case FrequencyOnce:
		if t.RunAtDate == nil {
			return errors.New("tarefa única exige data de execução")
		}
	default:
		return errors.New("frequência inválida: " + t.Frequency)
	}
	return nil
}
