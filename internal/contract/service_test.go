package contract

import (
	"testing"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seedEmployee(t *testing.T, status models.EmploymentStatus) models.Employee {
	t.Helper()

	branch := models.Branch{Name: "Merkez"}
	require.NoError(t, database.DB.Create(&branch).Error)

	emp := models.Employee{
		BranchID: branch.ID,
		FullName: "Test Personel",
		Email:    "test@example.com",
		HireDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		Status:   status,
	}
	require.NoError(t, database.DB.Create(&emp).Error)
	return emp
}

func seedContract(t *testing.T, empID uint, status models.ContractStatus, endDate *time.Time) models.Contract {
	t.Helper()

	ct := models.Contract{
		EmployeeID: empID,
		Type:       models.ContractFixedTerm,
		Status:     status,
		StartDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		EndDate:    endDate,
		BaseSalary: decimal.NewFromInt(30000),
		Allowance:  decimal.NewFromInt(2000),
	}
	require.NoError(t, database.DB.Create(&ct).Error)
	return ct
}

func TestActivatePromotesProbationEmployee(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t, models.StatusProbation)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	ct := seedContract(t, emp.ID, models.ContractDraft, &end)

	updated, err := Activate(ct.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContractActive, updated.Status)

	var reloaded models.Employee
	require.NoError(t, database.DB.First(&reloaded, "id = ?", emp.ID).Error)
	require.Equal(t, models.StatusActive, reloaded.Status)
}

func TestActivateRejectsSecondActiveContract(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t, models.StatusActive)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	seedContract(t, emp.ID, models.ContractActive, &end)
	second := seedContract(t, emp.ID, models.ContractDraft, &end)

	_, err := Activate(second.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "aktif bir sözleşmesi var")
}

func TestActivateRejectsNonDraft(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t, models.StatusActive)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.Local)
	ct := seedContract(t, emp.ID, models.ContractExpired, &end)

	_, err := Activate(ct.ID)
	require.Error(t, err)
}

func TestTerminate(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t, models.StatusActive)
	ct := seedContract(t, emp.ID, models.ContractActive, nil)

	now := time.Now()
	updated, err := Terminate(ct.ID, now)
	require.NoError(t, err)
	require.Equal(t, models.ContractTerminated, updated.Status)
	require.NotNil(t, updated.TerminatedAt)

	// Feshedilen sözleşme tekrar feshedilemez
	_, err = Terminate(ct.ID, now)
	require.Error(t, err)
}

func TestActivateConcurrentSingleWinner(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t, models.StatusActive)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	first := seedContract(t, emp.ID, models.ContractDraft, &end)
	second := seedContract(t, emp.ID, models.ContractDraft, &end)

	// Aktif sözleşme kontrolü transaction içinde yapıldığından eş zamanlı iki
	// aktivasyondan yalnızca biri kazanır
	errs := make(chan error, 2)
	for _, id := range []uint{first.ID, second.ID} {
		go func(cid uint) {
			_, err := Activate(cid)
			errs <- err
		}(id)
	}

	okCount := 0
	for i := 0; i < 2; i++ {
		if err := <-errs; err == nil {
			okCount++
		}
	}
	require.Equal(t, 1, okCount)

	var active int64
	require.NoError(t, database.DB.Model(&models.Contract{}).
		Where("employee_id = ? AND status = ?", emp.ID, models.ContractActive).
		Count(&active).Error)
	require.EqualValues(t, 1, active)
}

func TestExpireDueContracts(t *testing.T) {
	require.NoError(t, database.OpenTest())
	emp := seedEmployee(t, models.StatusActive)

	past := time.Date(2026, 3, 31, 0, 0, 0, 0, time.Local)
	future := time.Date(2027, 3, 31, 0, 0, 0, 0, time.Local)

	due := seedContract(t, emp.ID, models.ContractActive, &past)

	emp2 := models.Employee{
		BranchID: emp.BranchID,
		FullName: "İkinci Personel",
		Email:    "ikinci@example.com",
		HireDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&emp2).Error)
	notDue := seedContract(t, emp2.ID, models.ContractActive, &future)
	indefinite := seedContract(t, emp2.ID, models.ContractDraft, nil)

	count, err := ExpireDueContracts(time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.Equal(t, 1, count)

	var reloadedDue models.Contract
	require.NoError(t, database.DB.First(&reloadedDue, "id = ?", due.ID).Error)
	require.Equal(t, models.ContractExpired, reloadedDue.Status)

	var reloadedNotDue models.Contract
	require.NoError(t, database.DB.First(&reloadedNotDue, "id = ?", notDue.ID).Error)
	require.Equal(t, models.ContractActive, reloadedNotDue.Status)

	var reloadedIndefinite models.Contract
	require.NoError(t, database.DB.First(&reloadedIndefinite, "id = ?", indefinite.ID).Error)
	require.Equal(t, models.ContractDraft, reloadedIndefinite.Status)
}
