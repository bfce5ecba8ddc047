package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type EmploymentStatus string

const (
	StatusProbation EmploymentStatus = "probation"
	StatusActive    EmploymentStatus = "active"
	StatusOnLeave   EmploymentStatus = "on_leave"
	StatusResigned  EmploymentStatus = "resigned"
)

type Employee struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"size:20;uniqueIndex"` // Otomatik üretilir: NV00001
	BranchID     uint   `gorm:"index;not null"`
	Branch       Branch
	DepartmentID *uint `gorm:"index"`
	Department   *Department
	FullName     string `gorm:"size:150;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	Phone        string `gorm:"size:50"`
	Gender       string `gorm:"size:10"`
	BirthDate    *time.Time
	HireDate     time.Time        `gorm:"index;not null"`
	Position     string           `gorm:"size:100"`
	Status       EmploymentStatus `gorm:"size:20;not null;default:probation"`
	ResignedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// AfterCreate: Personel kodu ID üzerinden otomatik üretilir (NV00001 formatı).
// Kod bir kez atanır, asla yeniden kullanılmaz.
func (e *Employee) AfterCreate(tx *gorm.DB) error {
	if e.Code != "" {
		return nil
	}
	e.Code = fmt.Sprintf("NV%05d", e.ID)
	return tx.Model(e).Update("code", e.Code).Error
}
