package attendance

import (
	"testing"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func localDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func localTime(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func seedEmployee(t *testing.T) models.Employee {
	t.Helper()

	branch := models.Branch{Name: "Merkez"}
	require.NoError(t, database.DB.Create(&branch).Error)

	emp := models.Employee{
		BranchID: branch.ID,
		FullName: "Test Personel",
		Email:    "test@example.com",
		HireDate: localDay(2025, time.January, 1),
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&emp).Error)
	return emp
}

func addRecord(t *testing.T, emp models.Employee, date, checkIn time.Time, checkOut *time.Time) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.AttendanceRecord{
		EmployeeID: emp.ID,
		BranchID:   emp.BranchID,
		Date:       date,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Source:     models.AttendanceSourceManual,
	}).Error)
}

// Ağustos 2026: 1'i cumartesi, 21 hafta içi günü var.
func TestComputeTimesheet(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t)

	// 3 Ağustos tatil: çalışma günü 21 -> 20
	require.NoError(t, database.DB.Create(&models.Holiday{
		Name: "Kurum Günü",
		Date: localDay(2026, time.August, 3),
	}).Error)

	// 4 Ağustos: 08:00 - 17:30 -> geç değil, 90 dk fazla mesai
	out1 := localTime(2026, time.August, 4, 17, 30)
	addRecord(t, emp, localDay(2026, time.August, 4), localTime(2026, time.August, 4, 8, 0), &out1)

	// 5 Ağustos: 09:00 - 16:00 -> geç, fazla mesai yok
	out2 := localTime(2026, time.August, 5, 16, 0)
	addRecord(t, emp, localDay(2026, time.August, 5), localTime(2026, time.August, 5, 9, 0), &out2)

	// 6-7 Ağustos ücretsiz izin, 10-11 Ağustos yıllık izin
	require.NoError(t, database.DB.Create(&models.LeaveRequest{
		EmployeeID: emp.ID,
		BranchID:   emp.BranchID,
		Type:       models.LeaveUnpaid,
		StartDate:  localDay(2026, time.August, 6),
		EndDate:    localDay(2026, time.August, 7),
		Status:     models.LeaveApproved,
	}).Error)
	require.NoError(t, database.DB.Create(&models.LeaveRequest{
		EmployeeID: emp.ID,
		BranchID:   emp.BranchID,
		Type:       models.LeaveAnnual,
		StartDate:  localDay(2026, time.August, 10),
		EndDate:    localDay(2026, time.August, 11),
		Status:     models.LeaveApproved,
	}).Error)

	ts, err := ComputeTimesheet(emp.ID, 2026, 8, "08:30")
	require.NoError(t, err)

	require.Equal(t, 20, ts.WorkingDays)
	require.Equal(t, 2, ts.WorkedDays)
	require.Equal(t, 1, ts.LateDays)
	require.Equal(t, 2, ts.UnpaidLeave)
	require.Equal(t, 2, ts.PaidLeave)
	require.Equal(t, 14, ts.AbsentDays)
	require.Equal(t, 90, ts.OvertimeMinutes)
}

// Aynı güne düşen birden fazla kayıt ilk giriş / son çıkış olarak birleşir.
func TestComputeTimesheetMergesPunches(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t)

	day := localDay(2026, time.August, 12)
	out1 := localTime(2026, time.August, 12, 12, 0)
	addRecord(t, emp, day, localTime(2026, time.August, 12, 8, 15), &out1)
	out2 := localTime(2026, time.August, 12, 18, 0)
	addRecord(t, emp, day, localTime(2026, time.August, 12, 13, 0), &out2)

	ts, err := ComputeTimesheet(emp.ID, 2026, 8, "08:30")
	require.NoError(t, err)

	require.Equal(t, 1, ts.WorkedDays)
	require.Equal(t, 0, ts.LateDays)
	// 08:15 - 18:00 = 585 dk, 480 üstü 105 dk mesai
	require.Equal(t, 105, ts.OvertimeMinutes)
}

func TestComputeTimesheetPendingLeaveIgnored(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t)

	// Onaylanmamış izin devamsızlık olarak kalır
	require.NoError(t, database.DB.Create(&models.LeaveRequest{
		EmployeeID: emp.ID,
		BranchID:   emp.BranchID,
		Type:       models.LeaveAnnual,
		StartDate:  localDay(2026, time.August, 4),
		EndDate:    localDay(2026, time.August, 5),
		Status:     models.LeavePending,
	}).Error)

	ts, err := ComputeTimesheet(emp.ID, 2026, 8, "08:30")
	require.NoError(t, err)

	require.Equal(t, 0, ts.PaidLeave)
	require.Equal(t, 21, ts.AbsentDays)
}

func TestComputeTimesheetInvalidInput(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t)

	_, err := ComputeTimesheet(emp.ID, 2026, 13, "08:30")
	require.Error(t, err)

	_, err = ComputeTimesheet(emp.ID, 2026, 8, "sekiz otuz")
	require.Error(t, err)

	_, err = ComputeTimesheet(99999, 2026, 8, "08:30")
	require.Error(t, err)
}
