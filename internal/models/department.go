package models

import "time"

type Department struct {
	ID       uint `gorm:"primaryKey"`
	BlockID  uint `gorm:"index;not null"`
	Block    Block
	ParentID *uint       `gorm:"index"` // Üst departman (alt departmanlar için)
	Parent   *Department `gorm:"foreignKey:ParentID"`
	Name     string      `gorm:"size:100;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Children  []Department `gorm:"foreignKey:ParentID"`
	Employees []Employee
}
