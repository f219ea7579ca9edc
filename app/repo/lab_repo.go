package repo

import (
	"labfleet/app/models"

	"gorm.io/gorm"
)

type LabRepository struct{ db *gorm.DB }

func NewLabRepository(db *gorm.DB) *LabRepository { return &LabRepository{db: db} }

func (r *LabRepository) FindByID(id uint) (*models.Lab, error) {
	var lab models.Lab
	if err := r.db.First(&lab, id).Error; err != nil {
		return nil, err
	}
	return &lab, nil
}
