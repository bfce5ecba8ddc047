package models

import "time"

// StaffGrowthReport: Aylık personel hareketi (işe giriş/çıkış ve ay sonu mevcut).
// Şube + dönem başına tek satır, rapor tekrar çalıştırılırsa üzerine yazılır.
type StaffGrowthReport struct {
	ID       uint `gorm:"primaryKey"`
	BranchID uint `gorm:"index;not null;uniqueIndex:idx_growth_branch_period"`
	Branch   Branch
	Year     int `gorm:"not null;uniqueIndex:idx_growth_branch_period"`
	Month    int `gorm:"not null;uniqueIndex:idx_growth_branch_period"`

	HiredCount    int `gorm:"not null"`
	ResignedCount int `gorm:"not null"`
	Headcount     int `gorm:"not null"` // Ay sonu aktif personel sayısı

	GeneratedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EmployeeStatusBreakdownReport: Ay sonu personel durum dağılımı.
type EmployeeStatusBreakdownReport struct {
	ID       uint `gorm:"primaryKey"`
	BranchID uint `gorm:"index;not null;uniqueIndex:idx_breakdown_branch_period"`
	Branch   Branch
	Year     int `gorm:"not null;uniqueIndex:idx_breakdown_branch_period"`
	Month    int `gorm:"not null;uniqueIndex:idx_breakdown_branch_period"`

	ProbationCount int `gorm:"not null"`
	ActiveCount    int `gorm:"not null"`
	OnLeaveCount   int `gorm:"not null"`
	ResignedCount  int `gorm:"not null"`

	GeneratedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecruitmentSourceReport: Kaynak bazlı aday ve işe alım sayıları.
type RecruitmentSourceReport struct {
	ID       uint `gorm:"primaryKey"`
	SourceID uint `gorm:"index;not null;uniqueIndex:idx_source_report_period"`
	Source   RecruitmentSource
	Year     int `gorm:"not null;uniqueIndex:idx_source_report_period"`
	Month    int `gorm:"not null;uniqueIndex:idx_source_report_period"`

	CandidateCount int `gorm:"not null"`
	HiredCount     int `gorm:"not null"`

	GeneratedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
