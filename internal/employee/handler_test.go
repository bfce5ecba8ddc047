package employee

import (
	"bytes"
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
	app.Put("/api/employees/:id", UpdateEmployeeHandler())
	return app
}

func seedEmployees(t *testing.T) (models.Employee, models.Employee, models.User) {
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

	first := models.Employee{
		BranchID: branch.ID,
		FullName: "Birinci Personel",
		Email:    "birinci@example.com",
		HireDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local),
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&first).Error)

	second := models.Employee{
		BranchID: branch.ID,
		FullName: "İkinci Personel",
		Email:    "ikinci@example.com",
		HireDate: time.Date(2026, 2, 2, 0, 0, 0, 0, time.Local),
		Status:   models.StatusActive,
	}
	require.NoError(t, database.DB.Create(&second).Error)

	return first, second, user
}

func putEmployee(t *testing.T, app *fiber.App, id uint, body string) int {
	t.Helper()

	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/employees/%d", id), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestUpdateEmployeeResignWritesHistory(t *testing.T) {
	require.NoError(t, database.OpenTest())
	first, _, user := seedEmployees(t)
	app := newTestApp(t, user)

	status := putEmployee(t, app, first.ID, `{"status":"resigned"}`)
	require.Equal(t, fiber.StatusOK, status)

	var reloaded models.Employee
	require.NoError(t, database.DB.First(&reloaded, "id = ?", first.ID).Error)
	require.Equal(t, models.StatusResigned, reloaded.Status)
	require.NotNil(t, reloaded.ResignedAt)

	var history models.WorkHistory
	require.NoError(t, database.DB.First(&history, "employee_id = ?", first.ID).Error)
	require.Equal(t, models.WorkEventResigned, history.Event)
}

func TestUpdateEmployeeFailureWritesNoHistory(t *testing.T) {
	require.NoError(t, database.OpenTest())
	first, second, user := seedEmployees(t)
	app := newTestApp(t, user)

	// E-posta unique olduğundan kayıt başarısız olur; work history olayı da
	// aynı transaction'da geri alınmalı
	body := fmt.Sprintf(`{"email":%q,"status":"resigned"}`, first.Email)
	status := putEmployee(t, app, second.ID, body)
	require.Equal(t, fiber.StatusInternalServerError, status)

	var reloaded models.Employee
	require.NoError(t, database.DB.First(&reloaded, "id = ?", second.ID).Error)
	require.Equal(t, models.StatusActive, reloaded.Status)
	require.Nil(t, reloaded.ResignedAt)

	var count int64
	require.NoError(t, database.DB.Model(&models.WorkHistory{}).
		Where("employee_id = ?", second.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}
