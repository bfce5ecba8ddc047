package database

import (
	"log"

	"personel-backend/internal/config"
	"personel-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	// Employee migration: branch_id ekleniyor (AutoMigrate'ten ÖNCE)
	// Eski kurulumlarda personel sadece departmana bağlıydı; şube denormalize edildi
	if DB.Migrator().HasTable(&models.Employee{}) {
		if !DB.Migrator().HasColumn(&models.Employee{}, "branch_id") {
			log.Println("Employee.branch_id kolonu ekleniyor...")

			if err := DB.Exec("ALTER TABLE employees ADD COLUMN branch_id BIGINT").Error; err != nil {
				log.Printf("branch_id kolonu eklenirken hata (zaten var olabilir): %v", err)
			}

			// Mevcut kayıtları departman üzerinden doldur
			DB.Exec(`
				UPDATE employees SET branch_id = blocks.branch_id
				FROM departments
				JOIN blocks ON blocks.id = departments.block_id
				WHERE employees.department_id = departments.id AND employees.branch_id IS NULL
			`)

			// Departmanı olmayan kayıtlar ilk şubeye bağlanır
			var firstBranch models.Branch
			if err := DB.First(&firstBranch).Error; err == nil {
				DB.Exec("UPDATE employees SET branch_id = ? WHERE branch_id IS NULL", firstBranch.ID)
			}

			if err := DB.Exec("ALTER TABLE employees ALTER COLUMN branch_id SET NOT NULL").Error; err != nil {
				log.Printf("branch_id NOT NULL yapılırken hata: %v", err)
			}
			DB.Exec("CREATE INDEX IF NOT EXISTS idx_employees_branch_id ON employees(branch_id)")
			log.Println("Employee migration tamamlandı")
		}
	}

	err = DB.AutoMigrate(
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
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
