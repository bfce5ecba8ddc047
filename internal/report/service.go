package report

import (
	"fmt"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
)

// periodRange: [ay başı, sonraki ay başı) aralığı.
func periodRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// RunMonthly: Dönemin üç raporunu tüm şubeler için üretir. Aynı dönem için
// tekrar çalıştırılırsa mevcut satırların üzerine yazar.
func RunMonthly(year, month int, now time.Time) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("geçersiz ay: %d", month)
	}

	var branches []models.Branch
	if err := database.DB.Find(&branches).Error; err != nil {
		return fmt.Errorf("şubeler sorgulanamadı: %w", err)
	}

	for _, branch := range branches {
		if err := runStaffGrowth(branch.ID, year, month, now); err != nil {
			return fmt.Errorf("personel hareketi raporu (şube %d): %w", branch.ID, err)
		}
		if err := runStatusBreakdown(branch.ID, year, month, now); err != nil {
			return fmt.Errorf("durum dağılımı raporu (şube %d): %w", branch.ID, err)
		}
	}

	if err := runRecruitmentSources(year, month, now); err != nil {
		return fmt.Errorf("aday kaynağı raporu: %w", err)
	}

	return nil
}

// runStaffGrowth: İş geçmişi olaylarından işe giriş/çıkış sayıları ve
// ay sonu mevcut personel sayısı.
func runStaffGrowth(branchID uint, year, month int, now time.Time) error {
	start, end := periodRange(year, month)

	var hired, resigned int64
	if err := database.DB.Model(&models.WorkHistory{}).
		Where("branch_id = ? AND event = ? AND occurred_at >= ? AND occurred_at < ?",
			branchID, models.WorkEventHired, start, end).
		Count(&hired).Error; err != nil {
		return err
	}
	if err := database.DB.Model(&models.WorkHistory{}).
		Where("branch_id = ? AND event = ? AND occurred_at >= ? AND occurred_at < ?",
			branchID, models.WorkEventResigned, start, end).
		Count(&resigned).Error; err != nil {
		return err
	}

	// Ay sonu mevcut: döneme kadar işe girmiş, dönem içinde ayrılmamış
	var headcount int64
	if err := database.DB.Model(&models.Employee{}).
		Where("branch_id = ? AND hire_date < ? AND (resigned_at IS NULL OR resigned_at >= ?)",
			branchID, end, end).
		Count(&headcount).Error; err != nil {
		return err
	}

	var rep models.StaffGrowthReport
	findErr := database.DB.Where("branch_id = ? AND year = ? AND month = ?", branchID, year, month).
		First(&rep).Error

	rep.BranchID = branchID
	rep.Year = year
	rep.Month = month
	rep.HiredCount = int(hired)
	rep.ResignedCount = int(resigned)
	rep.Headcount = int(headcount)
	rep.GeneratedAt = now

	if findErr != nil {
		return database.DB.Create(&rep).Error
	}
	return database.DB.Save(&rep).Error
}

// runStatusBreakdown: Mevcut personel durumlarının dağılımı.
func runStatusBreakdown(branchID uint, year, month int, now time.Time) error {
	type statusCount struct {
		Status models.EmploymentStatus
		Total  int64
	}

	var rows []statusCount
	if err := database.DB.Model(&models.Employee{}).
		Select("status, COUNT(*) AS total").
		Where("branch_id = ?", branchID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return err
	}

	var rep models.EmployeeStatusBreakdownReport
	findErr := database.DB.Where("branch_id = ? AND year = ? AND month = ?", branchID, year, month).
		First(&rep).Error

	rep.BranchID = branchID
	rep.Year = year
	rep.Month = month
	rep.ProbationCount = 0
	rep.ActiveCount = 0
	rep.OnLeaveCount = 0
	rep.ResignedCount = 0
	for _, row := range rows {
		switch row.Status {
		case models.StatusProbation:
			rep.ProbationCount = int(row.Total)
		case models.StatusActive:
			rep.ActiveCount = int(row.Total)
		case models.StatusOnLeave:
			rep.OnLeaveCount = int(row.Total)
		case models.StatusResigned:
			rep.ResignedCount = int(row.Total)
		}
	}
	rep.GeneratedAt = now

	if findErr != nil {
		return database.DB.Create(&rep).Error
	}
	return database.DB.Save(&rep).Error
}

// runRecruitmentSources: Kaynak bazında dönem içi başvuru ve işe alım sayıları.
// Kaynaklar şubeye bağlı olmadığı için rapor şube bazında tutulmaz.
func runRecruitmentSources(year, month int, now time.Time) error {
	start, end := periodRange(year, month)

	var sources []models.RecruitmentSource
	if err := database.DB.Find(&sources).Error; err != nil {
		return err
	}

	for _, source := range sources {
		var candidates, hired int64
		if err := database.DB.Model(&models.RecruitmentCandidate{}).
			Where("source_id = ? AND applied_at >= ? AND applied_at < ?", source.ID, start, end).
			Count(&candidates).Error; err != nil {
			return err
		}
		if err := database.DB.Model(&models.RecruitmentCandidate{}).
			Where("source_id = ? AND hired_at >= ? AND hired_at < ?", source.ID, start, end).
			Count(&hired).Error; err != nil {
			return err
		}

		var rep models.RecruitmentSourceReport
		findErr := database.DB.Where("source_id = ? AND year = ? AND month = ?", source.ID, year, month).
			First(&rep).Error

		rep.SourceID = source.ID
		rep.Year = year
		rep.Month = month
		rep.CandidateCount = int(candidates)
		rep.HiredCount = int(hired)
		rep.GeneratedAt = now

		if findErr != nil {
			if err := database.DB.Create(&rep).Error; err != nil {
				return err
			}
			continue
		}
		if err := database.DB.Save(&rep).Error; err != nil {
			return err
		}
	}

	return nil
}
