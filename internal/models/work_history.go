package models

import "time"

type WorkEvent string

const (
	WorkEventHired         WorkEvent = "hired"
	WorkEventTransferred   WorkEvent = "transferred"
	WorkEventStatusChanged WorkEvent = "status_changed"
	WorkEventResigned      WorkEvent = "resigned"
)

// WorkHistory: Personelin işe giriş/çıkış ve transfer olayları.
// Aylık büyüme raporları bu tablodan beslenir.
type WorkHistory struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint `gorm:"index;not null"`
	Employee   Employee
	BranchID   uint      `gorm:"index;not null"`
	Event      WorkEvent `gorm:"size:20;not null"`
	Detail     string    `gorm:"size:255"` // Örn: eski departman -> yeni departman
	OccurredAt time.Time `gorm:"index;not null"`
	CreatedAt  time.Time
}
