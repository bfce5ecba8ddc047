package models

import "time"

type LeaveType string

const (
	LeaveAnnual LeaveType = "annual"
	LeaveSick   LeaveType = "sick"
	LeaveUnpaid LeaveType = "unpaid"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint `gorm:"index;not null"`
	Employee   Employee
	BranchID   uint      `gorm:"index;not null"`
	Type       LeaveType `gorm:"size:10;not null"`
	StartDate  time.Time `gorm:"index;not null"`
	EndDate    time.Time `gorm:"index;not null"`
	Reason     string    `gorm:"size:255"`

	Status     LeaveStatus `gorm:"size:10;not null;default:pending"`
	ApprovedBy *uint       // Onaylayan/reddeden kullanıcı
	DecidedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
