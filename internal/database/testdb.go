package database

import (
	"fmt"

	"personel-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTest: Testler için bellek içi SQLite veritabanı açar, şemayı kurar ve
// global DB'yi bu bağlantıya ayarlar. Her çağrı temiz bir veritabanı verir.
func OpenTest() error {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("test veritabanı açılamadı: %w", err)
	}

	// :memory: veritabanı bağlantı başına ayrıdır; havuzu tek bağlantıya sabitle
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Branch{},
		&models.Block{},
		&models.Department{},
		&models.User{},
		&models.Employee{},
		&models.WorkHistory{},
		&models.Contract{},
		&models.AttendanceDevice{},
		&models.AttendanceRecord{},
		&models.Holiday{},
		&models.LeaveRequest{},
		&models.RecruitmentSource{},
		&models.RecruitmentCandidate{},
		&models.PayrollSlip{},
		&models.KPIAssessment{},
		&models.StaffGrowthReport{},
		&models.EmployeeStatusBreakdownReport{},
		&models.RecruitmentSourceReport{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("test şeması kurulamadı: %w", err)
	}

	DB = db
	return nil
}
