package payroll

import (
	"fmt"
	"time"

	"personel-backend/internal/attendance"
	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	bonusRateA = decimal.NewFromFloat(0.10)
	bonusRateB = decimal.NewFromFloat(0.05)

	overtimeMultiplier = decimal.NewFromFloat(1.5)
	hoursPerDay        = decimal.NewFromInt(8)
	minutesPerHour     = decimal.NewFromInt(60)
)

// ComputeAmounts: Puantaj + sözleşme + KPI notundan bordro kalemlerini hesaplar.
// Tüm tutarlar 2 haneye yuvarlanır.
//
//	kesinti  = maaş * (ücretsiz izin + devamsızlık) / çalışma günü
//	mesai    = saatlik ücret * fazla mesai saati * 1.5
//	prim     = A notu %10, B notu %5
//	net      = maaş + yan ödeme + mesai + prim - kesinti
func ComputeAmounts(ts *attendance.Timesheet, ct *models.Contract, kpiGrade string) (overtimePay, leaveDeduction, kpiBonus, netPay decimal.Decimal) {
	base := ct.BaseSalary

	if ts.WorkingDays > 0 {
		workingDays := decimal.NewFromInt(int64(ts.WorkingDays))

		missedDays := decimal.NewFromInt(int64(ts.UnpaidLeave + ts.AbsentDays))
		leaveDeduction = base.Mul(missedDays).Div(workingDays).Round(2)

		if ts.OvertimeMinutes > 0 {
			hourlyRate := base.Div(workingDays.Mul(hoursPerDay))
			overtimeHours := decimal.NewFromInt(int64(ts.OvertimeMinutes)).Div(minutesPerHour)
			overtimePay = hourlyRate.Mul(overtimeHours).Mul(overtimeMultiplier).Round(2)
		}
	}

	switch kpiGrade {
	case "A":
		kpiBonus = base.Mul(bonusRateA).Round(2)
	case "B":
		kpiBonus = base.Mul(bonusRateB).Round(2)
	}

	netPay = base.Add(ct.Allowance).Add(overtimePay).Add(kpiBonus).Sub(leaveDeduction).Round(2)
	return overtimePay, leaveDeduction, kpiBonus, netPay
}

// GenerateForBranch: Şubenin aktif sözleşmeli personeli için dönem bordrolarını
// üretir. Taslak bordrolar üzerine yazılır; onaylanmış/ödenmiş bordrolar atlanır.
func GenerateForBranch(branchID uint, year, month int, workdayStart string) (generated int, skipped []string, err error) {
	if month < 1 || month > 12 {
		return 0, nil, fmt.Errorf("geçersiz ay: %d", month)
	}

	var contracts []models.Contract
	if err := database.DB.Preload("Employee").
		Where("status = ? AND employee_id IN (?)", models.ContractActive,
			database.DB.Model(&models.Employee{}).Select("id").Where("branch_id = ?", branchID)).
		Find(&contracts).Error; err != nil {
		return 0, nil, fmt.Errorf("sözleşmeler sorgulanamadı: %w", err)
	}

	for _, ct := range contracts {
		emp := ct.Employee

		// Dönem için mevcut bordro kontrolü
		var existing models.PayrollSlip
		findErr := database.DB.Where("employee_id = ? AND year = ? AND month = ?", emp.ID, year, month).
			First(&existing).Error
		if findErr == nil && existing.Status != models.PayrollDraft {
			skipped = append(skipped, fmt.Sprintf("%s: bordro %s durumunda", emp.Code, existing.Status))
			continue
		}

		ts, tsErr := attendance.ComputeTimesheet(emp.ID, year, month, workdayStart)
		if tsErr != nil {
			skipped = append(skipped, fmt.Sprintf("%s: puantaj hesaplanamadı", emp.Code))
			continue
		}

		grade := ""
		var kpi models.KPIAssessment
		if err := database.DB.Where("employee_id = ? AND year = ? AND month = ?", emp.ID, year, month).
			First(&kpi).Error; err == nil {
			grade = kpi.Grade
		}

		overtimePay, leaveDeduction, kpiBonus, netPay := ComputeAmounts(ts, &ct, grade)

		slip := models.PayrollSlip{
			EmployeeID:     emp.ID,
			BranchID:       branchID,
			Year:           year,
			Month:          month,
			WorkingDays:    ts.WorkingDays,
			WorkedDays:     ts.WorkedDays,
			PaidLeave:      ts.PaidLeave,
			UnpaidLeave:    ts.UnpaidLeave,
			LateDays:       ts.LateDays,
			BaseSalary:     ct.BaseSalary,
			Allowance:      ct.Allowance,
			OvertimePay:    overtimePay,
			LeaveDeduction: leaveDeduction,
			KPIBonus:       kpiBonus,
			NetPay:         netPay,
			Status:         models.PayrollDraft,
		}

		if findErr == nil {
			slip.ID = existing.ID
			slip.CreatedAt = existing.CreatedAt
		}

		if err := database.DB.Save(&slip).Error; err != nil {
			skipped = append(skipped, fmt.Sprintf("%s: bordro kaydedilemedi", emp.Code))
			continue
		}

		generated++
	}

	return generated, skipped, nil
}

// Approve: Taslak bordroyu onaylar. Onaylı bordro değiştirilemez.
func Approve(slipID uint, approverID uint) (*models.PayrollSlip, error) {
	var slip models.PayrollSlip
	if err := database.DB.First(&slip, "id = ?", slipID).Error; err != nil {
		return nil, fmt.Errorf("bordro bulunamadı: %w", err)
	}

	if slip.Status != models.PayrollDraft {
		return nil, fmt.Errorf("sadece taslak bordro onaylanabilir")
	}

	slip.Status = models.PayrollApproved
	slip.ApprovedBy = &approverID

	if err := database.DB.Save(&slip).Error; err != nil {
		return nil, fmt.Errorf("bordro güncellenemedi: %w", err)
	}
	return &slip, nil
}

// MarkPaid: Onaylı bordroyu ödendi olarak işaretler.
func MarkPaid(slipID uint, now time.Time) (*models.PayrollSlip, error) {
	var slip models.PayrollSlip
	if err := database.DB.First(&slip, "id = ?", slipID).Error; err != nil {
		return nil, fmt.Errorf("bordro bulunamadı: %w", err)
	}

	if slip.Status != models.PayrollApproved {
		return nil, fmt.Errorf("sadece onaylı bordro ödenebilir")
	}

	slip.Status = models.PayrollPaid
	slip.PaidAt = &now

	if err := database.DB.Save(&slip).Error; err != nil {
		return nil, fmt.Errorf("bordro güncellenemedi: %w", err)
	}
	return &slip, nil
}
