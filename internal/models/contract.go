package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContractType string

const (
	ContractProbation  ContractType = "probation"
	ContractFixedTerm  ContractType = "fixed_term"
	ContractIndefinite ContractType = "indefinite"
)

type ContractStatus string

const (
	ContractDraft      ContractStatus = "draft"
	ContractActive     ContractStatus = "active"
	ContractExpired    ContractStatus = "expired"
	ContractTerminated ContractStatus = "terminated"
)

type Contract struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"size:20;uniqueIndex"` // Otomatik üretilir: HD00001
	EmployeeID uint   `gorm:"index;not null"`
	Employee   Employee
	Type       ContractType   `gorm:"size:20;not null"`
	Status     ContractStatus `gorm:"size:20;not null;default:draft"`
	StartDate  time.Time      `gorm:"index;not null"`
	EndDate    *time.Time     `gorm:"index"` // Belirsiz süreli sözleşmede boş
	BaseSalary decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Allowance  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Note       string          `gorm:"size:255"`

	TerminatedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ct *Contract) AfterCreate(tx *gorm.DB) error {
	if ct.Code != "" {
		return nil
	}
	ct.Code = fmt.Sprintf("HD%05d", ct.ID)
	return tx.Model(ct).Update("code", ct.Code).Error
}

// CanTransition: Sözleşme durum geçiş kuralları.
// draft -> active, active -> expired, active -> terminated. Diğer geçişler reddedilir.
func (ct *Contract) CanTransition(to ContractStatus) bool {
	switch ct.Status {
	case ContractDraft:
		return to == ContractActive
	case ContractActive:
		return to == ContractExpired || to == ContractTerminated
	default:
		return false
	}
}
