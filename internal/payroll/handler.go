package payroll

import (
	"fmt"
	"strconv"
	"time"

	"personel-backend/internal/audit"
	"personel-backend/internal/auth"
	"personel-backend/internal/config"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type PayrollSlipResponse struct {
	ID           uint   `json:"id"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`

	WorkingDays int `json:"working_days"`
	WorkedDays  int `json:"worked_days"`
	PaidLeave   int `json:"paid_leave"`
	UnpaidLeave int `json:"unpaid_leave"`
	LateDays    int `json:"late_days"`

	BaseSalary     string `json:"base_salary"`
	Allowance      string `json:"allowance"`
	OvertimePay    string `json:"overtime_pay"`
	LeaveDeduction string `json:"leave_deduction"`
	KPIBonus       string `json:"kpi_bonus"`
	NetPay         string `json:"net_pay"`

	Status    string `json:"status"`
	PaidAt    string `json:"paid_at,omitempty"`
	CreatedAt string `json:"created_at"`
}

type GeneratePayrollRequest struct {
	BranchID *uint `json:"branch_id"`
	Year     int   `json:"year"`
	Month    int   `json:"month"`
}

func toSlipResponse(slip *models.PayrollSlip) PayrollSlipResponse {
	res := PayrollSlipResponse{
		ID:             slip.ID,
		EmployeeID:     slip.EmployeeID,
		EmployeeCode:   slip.Employee.Code,
		EmployeeName:   slip.Employee.FullName,
		Year:           slip.Year,
		Month:          slip.Month,
		WorkingDays:    slip.WorkingDays,
		WorkedDays:     slip.WorkedDays,
		PaidLeave:      slip.PaidLeave,
		UnpaidLeave:    slip.UnpaidLeave,
		LateDays:       slip.LateDays,
		BaseSalary:     slip.BaseSalary.StringFixed(2),
		Allowance:      slip.Allowance.StringFixed(2),
		OvertimePay:    slip.OvertimePay.StringFixed(2),
		LeaveDeduction: slip.LeaveDeduction.StringFixed(2),
		KPIBonus:       slip.KPIBonus.StringFixed(2),
		NetPay:         slip.NetPay.StringFixed(2),
		Status:         string(slip.Status),
		CreatedAt:      slip.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if slip.PaidAt != nil {
		res.PaidAt = slip.PaidAt.Format("2006-01-02 15:04:05")
	}
	return res
}

// POST /api/payroll/generate
func GeneratePayrollHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GeneratePayrollRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		if body.Year < 2000 || body.Month < 1 || body.Month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz dönem (year/month)")
		}

		generated, skipped, err := GenerateForBranch(branchID, body.Year, body.Month, cfg.WorkdayStart)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bordro üretimi başarısız")
		}

		if user, uerr := auth.CurrentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &branchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "payroll_slip",
				EntityID:    0,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Bordro üretildi: %d/%02d, %d adet", body.Year, body.Month, generated),
			})
		}

		return response.OK(c, fiber.Map{
			"generated": generated,
			"skipped":   skipped,
		})
	}
}

// GET /api/payroll?year=2026&month=8&employee_id=1&status=draft
func ListPayrollHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.PayrollSlip{}).Preload("Employee").
			Where("branch_id = ?", branchID)

		if year := c.Query("year"); year != "" {
			dbq = dbq.Where("year = ?", year)
		}
		if month := c.Query("month"); month != "" {
			dbq = dbq.Where("month = ?", month)
		}
		if empID := c.Query("employee_id"); empID != "" {
			dbq = dbq.Where("employee_id = ?", empID)
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var slips []models.PayrollSlip
		if err := dbq.Order("year DESC, month DESC, employee_id ASC").Find(&slips).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bordrolar listelenemedi")
		}

		res := make([]PayrollSlipResponse, 0, len(slips))
		for i := range slips {
			res = append(res, toSlipResponse(&slips[i]))
		}

		return response.OK(c, res)
	}
}

// GET /api/payroll/:id
func GetPayrollHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var slip models.PayrollSlip
		if err := database.DB.Preload("Employee").First(&slip, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bordro bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, slip.BranchID); err != nil {
			return err
		}

		return response.OK(c, toSlipResponse(&slip))
	}
}

// POST /api/payroll/:id/approve
func ApprovePayrollHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz bordro ID")
		}

		var slip models.PayrollSlip
		if err := database.DB.Preload("Employee").First(&slip, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bordro bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, slip.BranchID); err != nil {
			return err
		}

		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		before := slip
		updated, err := Approve(slip.ID, user.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		updated.Employee = slip.Employee

		_ = audit.WriteLog(audit.LogOptions{
			BranchID:    &slip.BranchID,
			UserID:      user.ID,
			UserName:    user.Name,
			EntityType:  "payroll_slip",
			EntityID:    updated.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Bordro onaylandı: %s %d/%02d", slip.Employee.Code, slip.Year, slip.Month),
			Before:      before,
			After:       updated,
		})

		return response.OK(c, toSlipResponse(updated))
	}
}

// POST /api/payroll/:id/pay
func PayPayrollHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var slip models.PayrollSlip
		if err := database.DB.Preload("Employee").First(&slip, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Bordro bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, slip.BranchID); err != nil {
			return err
		}

		before := slip
		updated, err := MarkPaid(slip.ID, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		updated.Employee = slip.Employee

		if user, uerr := auth.CurrentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &slip.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "payroll_slip",
				EntityID:    updated.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Bordro ödendi: %s %d/%02d", slip.Employee.Code, slip.Year, slip.Month),
				Before:      before,
				After:       updated,
			})
		}

		return response.OK(c, toSlipResponse(updated))
	}
}
