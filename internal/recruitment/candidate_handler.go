package recruitment

import (
	"fmt"
	"strings"
	"time"

	"personel-backend/internal/audit"
	"personel-backend/internal/auth"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type CandidateResponse struct {
	ID           uint   `json:"id"`
	Code         string `json:"code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	SourceID     uint   `json:"source_id"`
	BranchID     uint   `json:"branch_id"`
	DepartmentID *uint  `json:"department_id"`
	Position     string `json:"position"`
	Status       string `json:"status"`
	AppliedAt    string `json:"applied_at"`
	HiredAt      string `json:"hired_at"`
}

type CreateCandidateRequest struct {
	BranchID     *uint  `json:"branch_id"` // super_admin için
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	SourceID     uint   `json:"source_id"`
	DepartmentID *uint  `json:"department_id"`
	Position     string `json:"position"`
	AppliedAt    string `json:"applied_at"` // "2006-01-02", boşsa bugün
}

type UpdateCandidateStatusRequest struct {
	Status string `json:"status"`
}

func toCandidateResponse(rc *models.RecruitmentCandidate) CandidateResponse {
	res := CandidateResponse{
		ID:           rc.ID,
		Code:         rc.Code,
		FullName:     rc.FullName,
		Email:        rc.Email,
		Phone:        rc.Phone,
		SourceID:     rc.SourceID,
		BranchID:     rc.BranchID,
		DepartmentID: rc.DepartmentID,
		Position:     rc.Position,
		Status:       string(rc.Status),
		AppliedAt:    rc.AppliedAt.Format("2006-01-02"),
	}
	if rc.HiredAt != nil {
		res.HiredAt = rc.HiredAt.Format("2006-01-02")
	}
	return res
}

// POST /api/candidates
func CreateCandidateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCandidateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.FullName = strings.TrimSpace(body.FullName)
		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Position = strings.TrimSpace(body.Position)

		if body.FullName == "" || body.Email == "" || body.Position == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve pozisyon zorunlu")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		var source models.RecruitmentSource
		if err := database.DB.First(&source, "id = ?", body.SourceID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aday kaynağı bulunamadı")
		}

		appliedAt := time.Now()
		if body.AppliedAt != "" {
			appliedAt, err = time.Parse("2006-01-02", body.AppliedAt)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz başvuru tarihi (YYYY-MM-DD olmalı)")
			}
		}

		candidate := models.RecruitmentCandidate{
			FullName:     body.FullName,
			Email:        body.Email,
			Phone:        strings.TrimSpace(body.Phone),
			SourceID:     source.ID,
			BranchID:     branchID,
			DepartmentID: body.DepartmentID,
			Position:     body.Position,
			Status:       models.CandidateApplied,
			AppliedAt:    appliedAt,
		}

		if err := database.DB.Create(&candidate).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aday oluşturulamadı")
		}

		return response.Created(c, toCandidateResponse(&candidate))
	}
}

// GET /api/candidates?status=interview&source_id=2&q=ali
func ListCandidatesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.RecruitmentCandidate{}).Where("branch_id = ?", branchID)

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}
		if sourceID := c.Query("source_id"); sourceID != "" {
			dbq = dbq.Where("source_id = ?", sourceID)
		}
		if q := c.Query("q"); q != "" {
			like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
			dbq = dbq.Where("LOWER(full_name) LIKE ? OR LOWER(code) LIKE ?", like, like)
		}

		var candidates []models.RecruitmentCandidate
		if err := dbq.Order("applied_at DESC").Find(&candidates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Adaylar listelenemedi")
		}

		res := make([]CandidateResponse, 0, len(candidates))
		for i := range candidates {
			res = append(res, toCandidateResponse(&candidates[i]))
		}

		return response.OK(c, res)
	}
}

// GET /api/candidates/:id
func GetCandidateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var candidate models.RecruitmentCandidate
		if err := database.DB.First(&candidate, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aday bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, candidate.BranchID); err != nil {
			return err
		}

		return response.OK(c, toCandidateResponse(&candidate))
	}
}

// PUT /api/candidates/:id/status
func UpdateCandidateStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var candidate models.RecruitmentCandidate
		if err := database.DB.First(&candidate, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aday bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, candidate.BranchID); err != nil {
			return err
		}

		var body UpdateCandidateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		newStatus := models.CandidateStatus(body.Status)
		if newStatus == models.CandidateHired {
			return fiber.NewError(fiber.StatusBadRequest, "İşe alım için /hire endpoint'ini kullanın")
		}

		if !candidate.CanTransition(newStatus) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Aday %s durumundan %s durumuna geçemez", candidate.Status, newStatus))
		}

		candidate.Status = newStatus
		if err := database.DB.Save(&candidate).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Aday güncellenemedi")
		}

		return response.OK(c, toCandidateResponse(&candidate))
	}
}

// POST /api/candidates/:id/hire
// Teklif aşamasındaki adayı işe alır: aday hired olur, deneme süresinde yeni
// personel kaydı açılır ve işe giriş olayı yazılır.
func HireCandidateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var candidate models.RecruitmentCandidate
		if err := database.DB.First(&candidate, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aday bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, candidate.BranchID); err != nil {
			return err
		}

		if !candidate.CanTransition(models.CandidateHired) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Aday %s durumundan işe alınamaz", candidate.Status))
		}

		now := time.Now()

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		candidate.Status = models.CandidateHired
		candidate.HiredAt = &now
		if err := tx.Save(&candidate).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Aday güncellenemedi")
		}

		emp := models.Employee{
			BranchID:     candidate.BranchID,
			DepartmentID: candidate.DepartmentID,
			FullName:     candidate.FullName,
			Email:        candidate.Email,
			Phone:        candidate.Phone,
			HireDate:     now,
			Position:     candidate.Position,
			Status:       models.StatusProbation,
		}
		if err := tx.Create(&emp).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusBadRequest, "Personel oluşturulamadı (email kayıtlı olabilir)")
		}

		if err := tx.Create(&models.WorkHistory{
			EmployeeID: emp.ID,
			BranchID:   emp.BranchID,
			Event:      models.WorkEventHired,
			Detail:     fmt.Sprintf("aday %s işe alındı", candidate.Code),
			OccurredAt: now,
		}).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "İşe giriş olayı yazılamadı")
		}

		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İşe alım tamamlanamadı")
		}

		if user, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &candidate.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "candidate",
				EntityID:    candidate.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Aday işe alındı: %s -> personel %s", candidate.Code, emp.Code),
				After:       candidate,
			})
		}

		return response.OK(c, fiber.Map{
			"candidate": toCandidateResponse(&candidate),
			"employee_id": emp.ID,
			"employee_code": emp.Code,
		})
	}
}
