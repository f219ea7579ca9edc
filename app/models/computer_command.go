package models

import "time"

const (
	CommandStatusPending = "pending"
	CommandStatusSent    = "sent"
	CommandStatusDone    = "done"
	CommandStatusFailed  = "failed"
)

// ComputerCommand is one pending remote action for one computer, consumed
// asynchronously by the agent. For WoL the ComputerID is the proxy that
// broadcasts the packet, not the machine being woken.
type ComputerCommand struct {
	ID         uint              `gorm:"primaryKey"`
	UUID       string            `gorm:"uniqueIndex;size:191"`
	ComputerID uint              `gorm:"index"`
	UserID     uint
	Command    string            `gorm:"size:32"`
	Parameters map[string]string `gorm:"serializer:json"`
	Status     string            `gorm:"size:16;index"`
	Output     string            `gorm:"size:2048"`
	ExecutedAt *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
