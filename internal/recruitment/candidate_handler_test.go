package recruitment

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"personel-backend/internal/auth"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// newTestApp: JWT yerine locals'ı doğrudan dolduran test uygulaması.
func newTestApp(t *testing.T, user models.User) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return response.Fail(c, e.Code, e.Message)
			}
			return response.Fail(c, fiber.StatusInternalServerError, err.Error())
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, user.ID)
		c.Locals(auth.CtxUserRoleKey, user.Role)
		c.Locals(auth.CtxBranchIDKey, user.BranchID)
		return c.Next()
	})
	app.Post("/api/candidates/:id/hire", HireCandidateHandler())
	return app
}

func seedCandidate(t *testing.T, status models.CandidateStatus) (models.Branch, models.RecruitmentCandidate, models.User) {
	t.Helper()

	branch := models.Branch{Name: "Merkez"}
	require.NoError(t, database.DB.Create(&branch).Error)

	user := models.User{
		BranchID:     &branch.ID,
		Name:         "İK Yöneticisi",
		Email:        "ik@example.com",
		PasswordHash: "x",
		Role:         models.RoleHRAdmin,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	source := models.RecruitmentSource{Name: "Referans"}
	require.NoError(t, database.DB.Create(&source).Error)

	cand := models.RecruitmentCandidate{
		FullName:  "Aday Bir",
		Email:     "aday@example.com",
		SourceID:  source.ID,
		BranchID:  branch.ID,
		Position:  "Uzman",
		Status:    status,
		AppliedAt: time.Now(),
	}
	require.NoError(t, database.DB.Create(&cand).Error)

	return branch, cand, user
}

func TestHireCandidateCreatesEmployee(t *testing.T) {
	require.NoError(t, database.OpenTest())
	branch, cand, user := seedCandidate(t, models.CandidateOffered)
	app := newTestApp(t, user)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/candidates/%d/hire", cand.ID), nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			EmployeeID   uint   `json:"employee_id"`
			EmployeeCode string `json:"employee_code"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	require.NotZero(t, envelope.Data.EmployeeID)
	require.Contains(t, envelope.Data.EmployeeCode, "NV")

	var reloaded models.RecruitmentCandidate
	require.NoError(t, database.DB.First(&reloaded, "id = ?", cand.ID).Error)
	require.Equal(t, models.CandidateHired, reloaded.Status)
	require.NotNil(t, reloaded.HiredAt)

	var emp models.Employee
	require.NoError(t, database.DB.First(&emp, "id = ?", envelope.Data.EmployeeID).Error)
	require.Equal(t, branch.ID, emp.BranchID)
	require.Equal(t, models.StatusProbation, emp.Status)

	var history models.WorkHistory
	require.NoError(t, database.DB.First(&history, "employee_id = ?", emp.ID).Error)
	require.Equal(t, models.WorkEventHired, history.Event)
}

func TestHireCandidateRejectsWrongStage(t *testing.T) {
	require.NoError(t, database.OpenTest())
	_, cand, user := seedCandidate(t, models.CandidateScreening)
	app := newTestApp(t, user)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/candidates/%d/hire", cand.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHireCandidateBlockedForOtherBranch(t *testing.T) {
	require.NoError(t, database.OpenTest())
	_, cand, _ := seedCandidate(t, models.CandidateOffered)

	other := models.Branch{Name: "Diğer Şube"}
	require.NoError(t, database.DB.Create(&other).Error)
	outsider := models.User{
		BranchID:     &other.ID,
		Name:         "Diğer İK",
		Email:        "diger@example.com",
		PasswordHash: "x",
		Role:         models.RoleHRAdmin,
	}
	require.NoError(t, database.DB.Create(&outsider).Error)

	app := newTestApp(t, outsider)
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/candidates/%d/hire", cand.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
