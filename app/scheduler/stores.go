package scheduler

import (
	"time"

	"labfleet/app/models"
)

// Store interfaces the engine needs from the persistence layer. The repo
// package satisfies them; tests substitute fakes for failure injection.

type TaskStore interface {
	ListActive() ([]models.ScheduledTask, error)
	RecordRun(id uint, runAt time.Time, status, output string, deactivate bool) error
}

type LabStore interface {
	FindByID(id uint) (*models.Lab, error)
}

type ComputerStore interface {
	FindByID(id uint) (*models.Computer, error)
	ListByLab(labID uint) ([]models.Computer, error)
	FindOnlineProxy(labID, excludeID uint, since time.Time) (*models.Computer, error)
}

type CommandStore interface {
	Create(cmd *models.ComputerCommand) error
	ExpirePending(now time.Time) (int64, error)
}
