package report

import (
	"testing"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func seedReportData(t *testing.T) models.Branch {
	t.Helper()

	branch := models.Branch{Name: "Merkez"}
	require.NoError(t, database.DB.Create(&branch).Error)

	// 2025'ten beri çalışan aktif personel
	veteran := models.Employee{
		BranchID: branch.ID,
		FullName: "Eski Personel",
		Email:    "eski@example.com",
		HireDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&veteran).Error)

	// Ağustos 2026'da işe giren personel (deneme süresinde)
	newcomer := models.Employee{
		BranchID: branch.ID,
		FullName: "Yeni Personel",
		Email:    "yeni@example.com",
		HireDate: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		Status:   models.StatusProbation,
	}
	require.NoError(t, database.DB.Create(&newcomer).Error)
	require.NoError(t, database.DB.Create(&models.WorkHistory{
		EmployeeID: newcomer.ID,
		BranchID:   branch.ID,
		Event:      models.WorkEventHired,
		OccurredAt: newcomer.HireDate,
	}).Error)

	// Ağustos 2026'da ayrılan personel
	resignedAt := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	leaver := models.Employee{
		BranchID:   branch.ID,
		FullName:   "Ayrılan Personel",
		Email:      "ayrilan@example.com",
		HireDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:     models.StatusResigned,
		ResignedAt: &resignedAt,
	}
	require.NoError(t, database.DB.Create(&leaver).Error)
	require.NoError(t, database.DB.Create(&models.WorkHistory{
		EmployeeID: leaver.ID,
		BranchID:   branch.ID,
		Event:      models.WorkEventResigned,
		OccurredAt: resignedAt,
	}).Error)

	return branch
}

func TestRunMonthlyStaffGrowth(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch := seedReportData(t)

	require.NoError(t, RunMonthly(2026, 8, time.Now()))

	var rep models.StaffGrowthReport
	require.NoError(t, database.DB.First(&rep, "branch_id = ? AND year = ? AND month = ?", branch.ID, 2026, 8).Error)
	require.Equal(t, 1, rep.HiredCount)
	require.Equal(t, 1, rep.ResignedCount)
	// Ay sonu mevcut: eski + yeni personel, ayrılan hariç
	require.Equal(t, 2, rep.Headcount)
}

func TestRunMonthlyStatusBreakdown(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch := seedReportData(t)

	require.NoError(t, RunMonthly(2026, 8, time.Now()))

	var rep models.EmployeeStatusBreakdownReport
	require.NoError(t, database.DB.First(&rep, "branch_id = ? AND year = ? AND month = ?", branch.ID, 2026, 8).Error)
	require.Equal(t, 1, rep.ProbationCount)
	require.Equal(t, 1, rep.ActiveCount)
	require.Equal(t, 0, rep.OnLeaveCount)
	require.Equal(t, 1, rep.ResignedCount)
}

func TestRunMonthlyRecruitmentSources(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch := seedReportData(t)

	source := models.RecruitmentSource{Name: "Referans"}
	require.NoError(t, database.DB.Create(&source).Error)

	hiredAt := time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC)
	candidates := []models.RecruitmentCandidate{
		{
			FullName:  "Aday Bir",
			Email:     "aday1@example.com",
			SourceID:  source.ID,
			BranchID:  branch.ID,
			Position:  "Uzman",
			Status:    models.CandidateHired,
			AppliedAt: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
			HiredAt:   &hiredAt,
		},
		{
			FullName:  "Aday İki",
			Email:     "aday2@example.com",
			SourceID:  source.ID,
			BranchID:  branch.ID,
			Position:  "Uzman",
			Status:    models.CandidateScreening,
			AppliedAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			// Temmuz başvurusu Ağustos raporuna girmez
			FullName:  "Aday Üç",
			Email:     "aday3@example.com",
			SourceID:  source.ID,
			BranchID:  branch.ID,
			Position:  "Uzman",
			Status:    models.CandidateApplied,
			AppliedAt: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range candidates {
		require.NoError(t, database.DB.Create(&candidates[i]).Error)
	}

	require.NoError(t, RunMonthly(2026, 8, time.Now()))

	var rep models.RecruitmentSourceReport
	require.NoError(t, database.DB.First(&rep, "source_id = ? AND year = ? AND month = ?", source.ID, 2026, 8).Error)
	require.Equal(t, 2, rep.CandidateCount)
	require.Equal(t, 1, rep.HiredCount)
}

func TestRunMonthlyIsIdempotent(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch := seedReportData(t)

	require.NoError(t, RunMonthly(2026, 8, time.Now()))
	require.NoError(t, RunMonthly(2026, 8, time.Now()))

	var growthCount, breakdownCount int64
	require.NoError(t, database.DB.Model(&models.StaffGrowthReport{}).
		Where("branch_id = ?", branch.ID).Count(&growthCount).Error)
	require.NoError(t, database.DB.Model(&models.EmployeeStatusBreakdownReport{}).
		Where("branch_id = ?", branch.ID).Count(&breakdownCount).Error)
	require.EqualValues(t, 1, growthCount)
	require.EqualValues(t, 1, breakdownCount)
}

func TestRunMonthlyRejectsInvalidMonth(t *testing.T) {
	require.NoError(t, database.OpenTest())

	require.Error(t, RunMonthly(2026, 0, time.Now()))
	require.Error(t, RunMonthly(2026, 13, time.Now()))
}
