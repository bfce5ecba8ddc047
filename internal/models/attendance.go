package models

import "time"

// AttendanceDevice: Şubeye bağlı kart okuyucu / parmak izi cihazı.
// Cihazlar kayıt sırasında üretilen API anahtarı ile veri gönderir.
type AttendanceDevice struct {
	ID        uint `gorm:"primaryKey"`
	BranchID  uint `gorm:"index;not null"`
	Branch    Branch
	Name      string `gorm:"size:100;not null"`
	APIKey    string `gorm:"size:64;uniqueIndex;not null"`
	Active    bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AttendanceSource string

const (
	AttendanceSourceDevice AttendanceSource = "device"
	AttendanceSourceManual AttendanceSource = "manual"
)

type AttendanceRecord struct {
	ID         uint `gorm:"primaryKey"`
	EmployeeID uint `gorm:"index;not null"`
	Employee   Employee
	BranchID   uint      `gorm:"index;not null"`
	Date       time.Time `gorm:"index;not null"` // Gün (saat bilgisi CheckIn/CheckOut'ta)
	CheckIn    time.Time `gorm:"not null"`
	CheckOut   *time.Time
	Source     AttendanceSource `gorm:"size:10;not null"`
	DeviceID   *uint            `gorm:"index"`
	Device     *AttendanceDevice
	CreatedAt  time.Time
}
