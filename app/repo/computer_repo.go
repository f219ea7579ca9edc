package repo

import (
	"time"

	"labfleet/app/models"

	"gorm.io/gorm"
)

type ComputerRepository struct{ db *gorm.DB }

func NewComputerRepository(db *gorm.DB) *ComputerRepository { return &ComputerRepository{db: db} }

func (r *ComputerRepository) FindByID(id uint) (*models.Computer, error) {
	var c models.Computer
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComputerRepository) ListByLab(labID uint) ([]models.Computer, error) {
	var computers []models.Computer
	if err := r.db.Where("lab_id = ?", labID).Order("id ASC").Find(&computers).Error; err != nil {
		return nil, err
	}
	return computers, nil
}

// FindOnlineProxy returns the first labmate of the excluded computer whose
// heartbeat is at or after since. Natural id order, no preference beyond that.
func (r *ComputerRepository) FindOnlineProxy(labID, excludeID uint, since time.Time) (*models.Computer, error) {
	var c models.Computer
	err := r.db.Where("lab_id = ? AND id <> ? AND updated_at >= ?", labID, excludeID, since).
		Order("id ASC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Heartbeat bumps updated_at; called by the agent ingest path.
func (r *ComputerRepository) Heartbeat(id uint, at time.Time) error {
	return r.db.Model(&models.Computer{}).Where("id = ?", id).
		Update("updated_at", at).Error
}
