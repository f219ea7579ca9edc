package repo

import (
	"time"

	"labfleet/app/models"

	"gorm.io/gorm"
)

const expiredOutput = "Comando expirado: o computador não ficou online a tempo."

type ComputerCommandRepository struct{ db *gorm.DB }

func NewComputerCommandRepository(db *gorm.DB) *ComputerCommandRepository {
	return &ComputerCommandRepository{db: db}
}

func (r *ComputerCommandRepository) Create(cmd *models.ComputerCommand) error {
	return r.db.Create(cmd).Error
}

// ExpirePending marks pending commands past their validity window as failed,
// so the agent never executes a stale shutdown hours later.
func (r *ComputerCommandRepository) ExpirePending(now time.Time) (int64, error) {
	res := r.db.Model(&models.ComputerCommand{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.CommandStatusPending, now).
		Updates(map[string]any{
			"status":      models.CommandStatusFailed,
			"output":      expiredOutput,
			"executed_at": now,
		})
	return res.RowsAffected, res.Error
}

// ListByComputer returns the command queue for one computer in creation order.
func (r *ComputerCommandRepository) ListByComputer(computerID uint) ([]models.ComputerCommand, error) {
	var cmds []models.ComputerCommand
	if err := r.db.Where("computer_id = ?", computerID).Order("id ASC").Find(&cmds).Error; err != nil {
		return nil, err
	}
	return cmds, nil
}
