package models

import "time"

type KPIAssessment struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint `gorm:"index;not null;uniqueIndex:idx_kpi_employee_period"`
	Employee   Employee
	BranchID   uint   `gorm:"index;not null"`
	Year       int    `gorm:"not null;uniqueIndex:idx_kpi_employee_period"`
	Month      int    `gorm:"not null;uniqueIndex:idx_kpi_employee_period"`
	Score      int    `gorm:"not null"` // 0-100
	Grade      string `gorm:"size:1;not null"`
	ReviewerID uint   `gorm:"not null"`
	Comment    string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GradeForScore: Puan -> not dönüşümü. Bordro primi bu nota göre hesaplanır.
func GradeForScore(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}
