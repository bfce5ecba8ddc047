package contract

import (
	"fmt"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
)

// Activate: Sözleşmeyi aktifler. Bir personelin aynı anda tek aktif sözleşmesi
// olabilir; deneme süresindeki personel aktife çekilir.
func Activate(contractID uint) (*models.Contract, error) {
	var ct models.Contract
	if err := database.DB.First(&ct, "id = ?", contractID).Error; err != nil {
		return nil, fmt.Errorf("sözleşme bulunamadı: %w", err)
	}

	if !ct.CanTransition(models.ContractActive) {
		return nil, fmt.Errorf("sözleşme %s durumundan aktife geçemez", ct.Status)
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Tek aktif sözleşme kontrolü transaction içinde yapılır
	var activeCount int64
	if err := tx.Model(&models.Contract{}).
		Where("employee_id = ? AND status = ?", ct.EmployeeID, models.ContractActive).
		Count(&activeCount).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("aktif sözleşme kontrolü yapılamadı: %w", err)
	}
	if activeCount > 0 {
		tx.Rollback()
		return nil, fmt.Errorf("personelin zaten aktif bir sözleşmesi var")
	}

	ct.Status = models.ContractActive
	if err := tx.Save(&ct).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("sözleşme güncellenemedi: %w", err)
	}

	// Deneme süresindeki personeli aktife çek
	if err := tx.Model(&models.Employee{}).
		Where("id = ? AND status = ?", ct.EmployeeID, models.StatusProbation).
		Update("status", models.StatusActive).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("personel durumu güncellenemedi: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &ct, nil
}

// Terminate: Aktif sözleşmeyi fesheder.
func Terminate(contractID uint, now time.Time) (*models.Contract, error) {
	var ct models.Contract
	if err := database.DB.First(&ct, "id = ?", contractID).Error; err != nil {
		return nil, fmt.Errorf("sözleşme bulunamadı: %w", err)
	}

	if !ct.CanTransition(models.ContractTerminated) {
		return nil, fmt.Errorf("sözleşme %s durumundan feshedilemez", ct.Status)
	}

	ct.Status = models.ContractTerminated
	ct.TerminatedAt = &now
	if err := database.DB.Save(&ct).Error; err != nil {
		return nil, fmt.Errorf("sözleşme güncellenemedi: %w", err)
	}

	return &ct, nil
}

// ExpireDueContracts: Bitiş tarihi geçmiş aktif sözleşmeleri expired durumuna
// taşır. Belirsiz süreli (end_date boş) sözleşmelere dokunulmaz. Zamanlayıcı
// tarafından periyodik çağrılır; etkilenen kayıt sayısını döner.
func ExpireDueContracts(now time.Time) (int, error) {
	var due []models.Contract
	if err := database.DB.
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.ContractActive, now).
		Find(&due).Error; err != nil {
		return 0, fmt.Errorf("süresi dolan sözleşmeler sorgulanamadı: %w", err)
	}

	expired := 0
	for i := range due {
		ct := &due[i]
		if !ct.CanTransition(models.ContractExpired) {
			continue
		}
		ct.Status = models.ContractExpired
		if err := database.DB.Save(ct).Error; err != nil {
			return expired, fmt.Errorf("sözleşme %s güncellenemedi: %w", ct.Code, err)
		}
		expired++
	}

	return expired, nil
}
