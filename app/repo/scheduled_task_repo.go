package repo

import (
	"time"

	"labfleet/app/models"

	"gorm.io/gorm"
)

type ScheduledTaskRepository struct{ db *gorm.DB }

func NewScheduledTaskRepository(db *gorm.DB) *ScheduledTaskRepository {
	return &ScheduledTaskRepository{db: db}
}

func (r *ScheduledTaskRepository) Create(task *models.ScheduledTask) error {
	if err := task.Validate(); err != nil {
		return err
	}
	return r.db.Create(task).Error
}

func (r *ScheduledTaskRepository) FindByID(id uint) (*models.ScheduledTask, error) {
	var t models.ScheduledTask
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListActive returns active tasks in id order, the engine's iteration order.
func (r *ScheduledTaskRepository) ListActive() ([]models.ScheduledTask, error) {
	var tasks []models.ScheduledTask
	if err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// RecordRun writes the execution history fields in a single update. The
// deactivate flag is persisted here, together with the outcome, so a once
// task is never disabled before its outcome is known.
func (r *ScheduledTaskRepository) RecordRun(id uint, runAt time.Time, status, output string, deactivate bool) error {
	values := map[string]any{
		"last_run_at":     runAt,
		"last_run_status": status,
		"last_run_output": output,
	}
	if deactivate {
		values["is_active"] = false
	}
	return r.db.Model(&models.ScheduledTask{}).Where("id = ?", id).Updates(values).Error
}
