package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayrollStatus string

const (
	PayrollDraft    PayrollStatus = "draft"
	PayrollApproved PayrollStatus = "approved"
	PayrollPaid     PayrollStatus = "paid"
)

// PayrollSlip: Aylık maaş bordrosu. Personel + dönem başına tek kayıt.
type PayrollSlip struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint `gorm:"index;not null;uniqueIndex:idx_payroll_employee_period"`
	Employee   Employee
	BranchID   uint `gorm:"index;not null"`
	Year       int  `gorm:"not null;uniqueIndex:idx_payroll_employee_period"`
	Month      int  `gorm:"not null;uniqueIndex:idx_payroll_employee_period"` // 1-12

	WorkingDays int `gorm:"not null"` // Aydaki çalışma günü sayısı (hafta sonu/tatil hariç)
	WorkedDays  int `gorm:"not null"`
	PaidLeave   int `gorm:"not null"`
	UnpaidLeave int `gorm:"not null"`
	LateDays    int `gorm:"not null"`

	BaseSalary     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Allowance      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	OvertimePay    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	LeaveDeduction decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	KPIBonus       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	NetPay         decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Status     PayrollStatus `gorm:"size:10;not null;default:draft"`
	ApprovedBy *uint
	PaidAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
