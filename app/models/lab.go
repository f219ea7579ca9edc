package models

import "time"

type Lab struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Room      string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
