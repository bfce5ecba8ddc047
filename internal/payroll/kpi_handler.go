package payroll

import (
	"fmt"

	"personel-backend/internal/audit"
	"personel-backend/internal/auth"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type KPIResponse struct {
	ID           uint   `json:"id"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Score        int    `json:"score"`
	Grade        string `json:"grade"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"created_at"`
}

type UpsertKPIRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Score      int    `json:"score"`
	Comment    string `json:"comment"`
}

func toKPIResponse(kpi *models.KPIAssessment) KPIResponse {
	return KPIResponse{
		ID:           kpi.ID,
		EmployeeID:   kpi.EmployeeID,
		EmployeeCode: kpi.Employee.Code,
		EmployeeName: kpi.Employee.FullName,
		Year:         kpi.Year,
		Month:        kpi.Month,
		Score:        kpi.Score,
		Grade:        kpi.Grade,
		Comment:      kpi.Comment,
		CreatedAt:    kpi.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/kpi - Personel + dönem için değerlendirme oluşturur veya günceller.
// Dönemin bordrosu onaylandıysa değerlendirme değiştirilemez.
func UpsertKPIHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertKPIRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Score < 0 || body.Score > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "Puan 0-100 arasında olmalı")
		}
		if body.Year < 2000 || body.Month < 1 || body.Month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz dönem (year/month)")
		}

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, emp.BranchID); err != nil {
			return err
		}

		// Onaylanmış bordro varsa KPI kilitlenir
		var slip models.PayrollSlip
		if err := database.DB.Where("employee_id = ? AND year = ? AND month = ? AND status <> ?",
			emp.ID, body.Year, body.Month, models.PayrollDraft).First(&slip).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu dönemin bordrosu onaylandı, değerlendirme değiştirilemez")
		}

		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var kpi models.KPIAssessment
		findErr := database.DB.Where("employee_id = ? AND year = ? AND month = ?",
			emp.ID, body.Year, body.Month).First(&kpi).Error

		before := kpi
		kpi.EmployeeID = emp.ID
		kpi.BranchID = emp.BranchID
		kpi.Year = body.Year
		kpi.Month = body.Month
		kpi.Score = body.Score
		kpi.Grade = models.GradeForScore(body.Score)
		kpi.ReviewerID = user.ID
		kpi.Comment = body.Comment

		if err := database.DB.Save(&kpi).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Değerlendirme kaydedilemedi")
		}
		kpi.Employee = emp

		action := models.AuditActionCreate
		var beforePayload any
		if findErr == nil {
			action = models.AuditActionUpdate
			beforePayload = before
		}
		_ = audit.WriteLog(audit.LogOptions{
			BranchID:    &emp.BranchID,
			UserID:      user.ID,
			UserName:    user.Name,
			EntityType:  "kpi_assessment",
			EntityID:    kpi.ID,
			Action:      action,
			Description: fmt.Sprintf("KPI değerlendirmesi: %s %d/%02d, not %s", emp.Code, kpi.Year, kpi.Month, kpi.Grade),
			Before:      beforePayload,
			After:       kpi,
		})

		if findErr != nil {
			return response.Created(c, toKPIResponse(&kpi))
		}
		return response.OK(c, toKPIResponse(&kpi))
	}
}

// GET /api/kpi?year=2026&month=8&employee_id=1
func ListKPIHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.KPIAssessment{}).Preload("Employee").
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

		var items []models.KPIAssessment
		if err := dbq.Order("year DESC, month DESC, employee_id ASC").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Değerlendirmeler listelenemedi")
		}

		res := make([]KPIResponse, 0, len(items))
		for i := range items {
			res = append(res, toKPIResponse(&items[i]))
		}

		return response.OK(c, res)
	}
}

// DELETE /api/kpi/:id
func DeleteKPIHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var kpi models.KPIAssessment
		if err := database.DB.Preload("Employee").First(&kpi, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Değerlendirme bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, kpi.BranchID); err != nil {
			return err
		}

		var slip models.PayrollSlip
		if err := database.DB.Where("employee_id = ? AND year = ? AND month = ? AND status <> ?",
			kpi.EmployeeID, kpi.Year, kpi.Month, models.PayrollDraft).First(&slip).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Bu dönemin bordrosu onaylandı, değerlendirme silinemez")
		}

		if err := database.DB.Delete(&kpi).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Değerlendirme silinemedi")
		}

		if user, uerr := auth.CurrentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &kpi.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "kpi_assessment",
				EntityID:    kpi.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("KPI değerlendirmesi silindi: %s %d/%02d", kpi.Employee.Code, kpi.Year, kpi.Month),
				Before:      kpi,
			})
		}

		return response.NoContent(c)
	}
}
