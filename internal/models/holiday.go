package models

import "time"

type Holiday struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null"`
	Date      time.Time `gorm:"type:date;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
