package scheduler

import (
	"errors"
	"fmt"

	"labfleet/app/models"

	"gorm.io/gorm"
)

// TargetResolver expands a task's weak target reference into concrete
// computers at execution time. Targets may have been deleted or changed
// since the task was created.
type TargetResolver struct {
	labs      LabStore
	computers ComputerStore
}

func NewTargetResolver(labs LabStore, computers ComputerStore) *TargetResolver {
	return &TargetResolver{labs: labs, computers: computers}
}

// Resolve returns the computers the task acts on. A lab with no computers
// resolves to an empty list, which the engine turns into a failed outcome,
// not an error here.
func (r *TargetResolver) Resolve(task *models.ScheduledTask) ([]models.Computer, error) {
	switch task.TargetType {
	case models.TargetLab:
		if _, err := r.labs.FindByID(task.TargetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: laboratório id=%d", ErrTargetNotFound, task.TargetID)
			}
			return nil, err
		}
		return r.computers.ListByLab(task.TargetID)
	case models.TargetComputer:
		c, err := r.computers.FindByID(task.TargetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: computador id=%d", ErrTargetNotFound, task.TargetID)
			}
			return nil, err
		}
		return []models.Computer{*c}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidTargetType, task.TargetType)
	}
}
