package attendance

import (
	"personel-backend/internal/auth"
	"personel-backend/internal/config"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

// GET /api/timesheet?employee_id=1&year=2026&month=7
func GetTimesheetHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employeeID := uint(c.QueryInt("employee_id"))
		year := c.QueryInt("year")
		month := c.QueryInt("month")

		if employeeID == 0 || year < 2000 || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "employee_id, year ve month zorunlu")
		}

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", employeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, emp.BranchID); err != nil {
			return err
		}

		ts, err := ComputeTimesheet(employeeID, year, month, cfg.WorkdayStart)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Puantaj hesaplanamadı")
		}

		return response.OK(c, ts)
	}
}
