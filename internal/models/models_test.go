package models_test

import (
	"fmt"
	"testing"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func seedBranch(t *testing.T) models.Branch {
	t.Helper()
	branch := models.Branch{Name: "Merkez"}
	require.NoError(t, database.DB.Create(&branch).Error)
	return branch
}

func TestEmployeeCodeGenerated(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch := seedBranch(t)

	for i := 1; i <= 3; i++ {
		emp := models.Employee{
			BranchID: branch.ID,
			FullName: fmt.Sprintf("Personel %d", i),
			Email:    fmt.Sprintf("p%d@example.com", i),
			HireDate: time.Now(),
			Status:   models.StatusProbation,
		}
		require.NoError(t, database.DB.Create(&emp).Error)
		require.Equal(t, fmt.Sprintf("NV%05d", emp.ID), emp.Code)
	}
}

func TestEmployeeCodePreservedWhenSet(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch := seedBranch(t)

	emp := models.Employee{
		BranchID: branch.ID,
		Code:     "NV99999",
		FullName: "Kod Verilmiş",
		Email:    "kod@example.com",
		HireDate: time.Now(),
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&emp).Error)
	require.Equal(t, "NV99999", emp.Code)
}

func TestContractAndCandidateCodesGenerated(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch := seedBranch(t)

	emp := models.Employee{
		BranchID: branch.ID,
		FullName: "Personel",
		Email:    "p@example.com",
		HireDate: time.Now(),
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&emp).Error)

	ct := models.Contract{
		EmployeeID: emp.ID,
		Type:       models.ContractIndefinite,
		Status:     models.ContractDraft,
		StartDate:  time.Now(),
	}
	require.NoError(t, database.DB.Create(&ct).Error)
	require.Equal(t, fmt.Sprintf("HD%05d", ct.ID), ct.Code)

	source := models.RecruitmentSource{Name: "Referans"}
	require.NoError(t, database.DB.Create(&source).Error)

	cand := models.RecruitmentCandidate{
		FullName:  "Aday",
		Email:     "aday@example.com",
		SourceID:  source.ID,
		BranchID:  branch.ID,
		Position:  "Uzman",
		Status:    models.CandidateApplied,
		AppliedAt: time.Now(),
	}
	require.NoError(t, database.DB.Create(&cand).Error)
	require.Equal(t, fmt.Sprintf("UV%05d", cand.ID), cand.Code)
}

func TestGradeForScore(t *testing.T) {
	cases := []struct {
		score int
		grade string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {75, "B"}, {74, "C"}, {60, "C"}, {59, "D"}, {0, "D"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.grade, models.GradeForScore(tc.score), "score %d", tc.score)
	}
}

func TestCandidateTransitions(t *testing.T) {
	cand := &models.RecruitmentCandidate{Status: models.CandidateApplied}

	require.True(t, cand.CanTransition(models.CandidateScreening))
	require.True(t, cand.CanTransition(models.CandidateRejected))
	require.False(t, cand.CanTransition(models.CandidateHired))
	require.False(t, cand.CanTransition(models.CandidateOffered))

	cand.Status = models.CandidateOffered
	require.True(t, cand.CanTransition(models.CandidateHired))
	require.True(t, cand.CanTransition(models.CandidateRejected))
	require.False(t, cand.CanTransition(models.CandidateScreening))

	// Nihai durumlardan çıkış yok
	cand.Status = models.CandidateHired
	require.False(t, cand.CanTransition(models.CandidateRejected))
	cand.Status = models.CandidateRejected
	require.False(t, cand.CanTransition(models.CandidateApplied))
}

func TestContractTransitions(t *testing.T) {
	ct := &models.Contract{Status: models.ContractDraft}
	require.True(t, ct.CanTransition(models.ContractActive))
	require.False(t, ct.CanTransition(models.ContractExpired))
	require.False(t, ct.CanTransition(models.ContractTerminated))

	ct.Status = models.ContractActive
	require.True(t, ct.CanTransition(models.ContractExpired))
	require.True(t, ct.CanTransition(models.ContractTerminated))
	require.False(t, ct.CanTransition(models.ContractDraft))

	ct.Status = models.ContractExpired
	require.False(t, ct.CanTransition(models.ContractActive))
}
