package payroll

import (
	"testing"
	"time"

	"personel-backend/internal/attendance"
	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedStaff(t *testing.T) (models.Branch, models.Employee, models.Contract) {
	t.Helper()

	branch := models.Branch{Name: "Merkez"}
	require.NoError(t, database.DB.Create(&branch).Error)

	emp := models.Employee{
		BranchID: branch.ID,
		FullName: "Test Personel",
		Email:    "test@example.com",
		HireDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&emp).Error)

	ct := models.Contract{
		EmployeeID: emp.ID,
		Type:       models.ContractIndefinite,
		Status:     models.ContractActive,
		StartDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		BaseSalary: decimal.NewFromInt(30000),
		Allowance:  decimal.NewFromInt(2000),
	}
	require.NoError(t, database.DB.Create(&ct).Error)

	return branch, emp, ct
}

func TestComputeAmounts(t *testing.T) {
	ct := &models.Contract{
		BaseSalary: decimal.NewFromInt(20000),
		Allowance:  decimal.NewFromInt(1000),
	}
	ts := &attendance.Timesheet{
		WorkingDays:     20,
		WorkedDays:      16,
		PaidLeave:       2,
		UnpaidLeave:     1,
		AbsentDays:      1,
		OvertimeMinutes: 120,
	}

	// Kesinti: 20000 * 2/20 = 2000. Mesai: (20000/160) * 2 * 1.5 = 375.
	overtime, deduction, bonus, net := ComputeAmounts(ts, ct, "A")
	require.Equal(t, "375.00", overtime.StringFixed(2))
	require.Equal(t, "2000.00", deduction.StringFixed(2))
	require.Equal(t, "2000.00", bonus.StringFixed(2))
	require.Equal(t, "21375.00", net.StringFixed(2))

	_, _, bonus, net = ComputeAmounts(ts, ct, "B")
	require.Equal(t, "1000.00", bonus.StringFixed(2))
	require.Equal(t, "20375.00", net.StringFixed(2))

	_, _, bonus, net = ComputeAmounts(ts, ct, "C")
	require.True(t, bonus.IsZero())
	require.Equal(t, "19375.00", net.StringFixed(2))
}

func TestComputeAmountsZeroWorkingDays(t *testing.T) {
	ct := &models.Contract{
		BaseSalary: decimal.NewFromInt(20000),
		Allowance:  decimal.NewFromInt(1000),
	}
	ts := &attendance.Timesheet{}

	overtime, deduction, bonus, net := ComputeAmounts(ts, ct, "")
	require.True(t, overtime.IsZero())
	require.True(t, deduction.IsZero())
	require.True(t, bonus.IsZero())
	require.Equal(t, "21000.00", net.StringFixed(2))
}

func TestGenerateForBranch(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch, emp, _ := seedStaff(t)

	generated, skipped, err := GenerateForBranch(branch.ID, 2026, 8, "08:30")
	require.NoError(t, err)
	require.Equal(t, 1, generated)
	require.Empty(t, skipped)

	var slip models.PayrollSlip
	require.NoError(t, database.DB.First(&slip, "employee_id = ? AND year = ? AND month = ?", emp.ID, 2026, 8).Error)
	require.Equal(t, models.PayrollDraft, slip.Status)
	require.Equal(t, 21, slip.WorkingDays)
	// Hiç yoklama kaydı yok: tüm ay devamsız, maaşın tamamı kesilir
	require.Equal(t, "30000.00", slip.LeaveDeduction.StringFixed(2))
	require.Equal(t, "2000.00", slip.NetPay.StringFixed(2))

	// Taslak üzerine yazılır, yeni satır açılmaz
	generated, _, err = GenerateForBranch(branch.ID, 2026, 8, "08:30")
	require.NoError(t, err)
	require.Equal(t, 1, generated)

	var count int64
	require.NoError(t, database.DB.Model(&models.PayrollSlip{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGenerateForBranchAppliesKPIBonus(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch, emp, _ := seedStaff(t)

	require.NoError(t, database.DB.Create(&models.KPIAssessment{
		EmployeeID: emp.ID,
		BranchID:   branch.ID,
		Year:       2026,
		Month:      8,
		Score:      95,
		Grade:      models.GradeForScore(95),
		ReviewerID: 1,
	}).Error)

	_, _, err := GenerateForBranch(branch.ID, 2026, 8, "08:30")
	require.NoError(t, err)

	var slip models.PayrollSlip
	require.NoError(t, database.DB.First(&slip, "employee_id = ?", emp.ID).Error)
	// A notu: %10 prim
	require.Equal(t, "3000.00", slip.KPIBonus.StringFixed(2))
}

func TestGenerateForBranchSkipsApproved(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch, emp, _ := seedStaff(t)

	user := models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleSuperAdmin}
	require.NoError(t, database.DB.Create(&user).Error)

	_, _, err := GenerateForBranch(branch.ID, 2026, 8, "08:30")
	require.NoError(t, err)

	var slip models.PayrollSlip
	require.NoError(t, database.DB.First(&slip, "employee_id = ?", emp.ID).Error)

	_, err = Approve(slip.ID, user.ID)
	require.NoError(t, err)

	generated, skipped, err := GenerateForBranch(branch.ID, 2026, 8, "08:30")
	require.NoError(t, err)
	require.Equal(t, 0, generated)
	require.Len(t, skipped, 1)
}

func TestPayrollStateMachine(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch, emp, _ := seedStaff(t)

	user := models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: models.RoleSuperAdmin}
	require.NoError(t, database.DB.Create(&user).Error)

	_, _, err := GenerateForBranch(branch.ID, 2026, 8, "08:30")
	require.NoError(t, err)

	var slip models.PayrollSlip
	require.NoError(t, database.DB.First(&slip, "employee_id = ?", emp.ID).Error)

	// Taslak ödenemez
	_, err = MarkPaid(slip.ID, time.Now())
	require.Error(t, err)

	approved, err := Approve(slip.ID, user.ID)
	require.NoError(t, err)
	require.Equal(t, models.PayrollApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)

	// Onaylı tekrar onaylanamaz
	_, err = Approve(slip.ID, user.ID)
	require.Error(t, err)

	paid, err := MarkPaid(slip.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, models.PayrollPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
}
