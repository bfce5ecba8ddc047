package audit

import (
	"testing"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func seedEmployee(t *testing.T) models.Employee {
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
	return emp
}

func TestUndoEmployeeDeleteRestoresRow(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t)

	require.NoError(t, WriteLog(LogOptions{
		BranchID:    &emp.BranchID,
		UserID:      1,
		UserName:    "Admin",
		EntityType:  "employee",
		EntityID:    emp.ID,
		Action:      models.AuditActionDelete,
		Description: "Personel silindi: " + emp.Code,
		Before:      emp,
		After:       emp,
	}))
	require.NoError(t, database.DB.Delete(&models.Employee{}, "id = ?", emp.ID).Error)

	var log models.AuditLog
	require.NoError(t, database.DB.
		First(&log, "entity_type = ? AND action = ?", "employee", models.AuditActionDelete).Error)

	require.NoError(t, UndoLog(log.ID, 1, "Admin"))

	// Soft delete geri alınınca aynı satır aynı ID ve kodla döner; unique
	// kod/e-posta indekslerine takılmaz, yeni kayıt açılmaz
	var restored models.Employee
	require.NoError(t, database.DB.First(&restored, "id = ?", emp.ID).Error)
	require.Equal(t, emp.Code, restored.Code)
	require.Equal(t, emp.Email, restored.Email)

	var count int64
	require.NoError(t, database.DB.Model(&models.Employee{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	require.NoError(t, database.DB.First(&log, "id = ?", log.ID).Error)
	require.True(t, log.IsUndone)

	// Aynı log ikinci kez geri alınamaz
	require.Error(t, UndoLog(log.ID, 1, "Admin"))
}

func TestUndoHolidayDeleteRecreates(t *testing.T) {
	require.NoError(t, database.OpenTest())

	holiday := models.Holiday{Name: "Kurban Bayramı", Date: time.Date(2026, 5, 27, 0, 0, 0, 0, time.Local)}
	require.NoError(t, database.DB.Create(&holiday).Error)

	require.NoError(t, WriteLog(LogOptions{
		UserID:      1,
		UserName:    "Admin",
		EntityType:  "holiday",
		EntityID:    holiday.ID,
		Action:      models.AuditActionDelete,
		Description: "Tatil silindi",
		Before:      holiday,
		After:       holiday,
	}))
	require.NoError(t, database.DB.Delete(&models.Holiday{}, "id = ?", holiday.ID).Error)

	var log models.AuditLog
	require.NoError(t, database.DB.
		First(&log, "entity_type = ? AND action = ?", "holiday", models.AuditActionDelete).Error)
	require.NoError(t, UndoLog(log.ID, 1, "Admin"))

	// Tatil hard delete olduğundan yeni satır açılır
	var restored models.Holiday
	require.NoError(t, database.DB.First(&restored, "name = ?", "Kurban Bayramı").Error)
}
