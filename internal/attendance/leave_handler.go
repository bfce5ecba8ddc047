package attendance

import (
	"fmt"
	"time"

	"personel-backend/internal/audit"
	"personel-backend/internal/auth"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type LeaveResponse struct {
	ID         uint   `json:"id"`
	EmployeeID uint   `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	ApprovedBy *uint  `json:"approved_by"`
	DecidedAt  string `json:"decided_at"`
}

type CreateLeaveRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func toLeaveResponse(lr *models.LeaveRequest) LeaveResponse {
	res := LeaveResponse{
		ID:         lr.ID,
		EmployeeID: lr.EmployeeID,
		Type:       string(lr.Type),
		StartDate:  lr.StartDate.Format("2006-01-02"),
		EndDate:    lr.EndDate.Format("2006-01-02"),
		Reason:     lr.Reason,
		Status:     string(lr.Status),
		ApprovedBy: lr.ApprovedBy,
	}
	if lr.DecidedAt != nil {
		res.DecidedAt = lr.DecidedAt.Format("2006-01-02 15:04:05")
	}
	return res
}

// POST /api/leave-requests
func CreateLeaveRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLeaveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, emp.BranchID); err != nil {
			return err
		}

		ltype := models.LeaveType(body.Type)
		switch ltype {
		case models.LeaveAnnual, models.LeaveSick, models.LeaveUnpaid:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz izin tipi")
		}

		startDate, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz başlangıç tarihi (YYYY-MM-DD olmalı)")
		}
		endDate, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz bitiş tarihi (YYYY-MM-DD olmalı)")
		}
		if endDate.Before(startDate) {
			return fiber.NewError(fiber.StatusBadRequest, "Bitiş tarihi başlangıçtan önce olamaz")
		}

		// Çakışan onaylı/bekleyen izin var mı?
		var overlapping int64
		database.DB.Model(&models.LeaveRequest{}).
			Where("employee_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
				emp.ID, []models.LeaveStatus{models.LeavePending, models.LeaveApproved}, endDate, startDate).
			Count(&overlapping)
		if overlapping > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu tarihlerle çakışan izin talebi var")
		}

		lr := models.LeaveRequest{
			EmployeeID: emp.ID,
			BranchID:   emp.BranchID,
			Type:       ltype,
			StartDate:  startDate,
			EndDate:    endDate,
			Reason:     body.Reason,
			Status:     models.LeavePending,
		}

		if err := database.DB.Create(&lr).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi oluşturulamadı")
		}

		if user, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &emp.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "leave_request",
				EntityID:    lr.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("İzin talebi oluşturuldu: %s (%s - %s)", emp.Code, body.StartDate, body.EndDate),
				After:       lr,
			})
		}

		return response.Created(c, toLeaveResponse(&lr))
	}
}

// GET /api/leave-requests?employee_id=1&status=pending
func ListLeaveRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.LeaveRequest{}).Where("branch_id = ?", branchID)

		if empID := c.Query("employee_id"); empID != "" {
			dbq = dbq.Where("employee_id = ?", empID)
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var requests []models.LeaveRequest
		if err := dbq.Order("created_at DESC").Find(&requests).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talepleri listelenemedi")
		}

		res := make([]LeaveResponse, 0, len(requests))
		for i := range requests {
			res = append(res, toLeaveResponse(&requests[i]))
		}

		return response.OK(c, res)
	}
}

func decideLeaveRequest(c *fiber.Ctx, newStatus models.LeaveStatus) error {
	id := c.Params("id")

	var lr models.LeaveRequest
	if err := database.DB.First(&lr, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "İzin talebi bulunamadı")
	}

	if err := auth.RequireBranchAccess(c, lr.BranchID); err != nil {
		return err
	}

	if lr.Status != models.LeavePending {
		return fiber.NewError(fiber.StatusBadRequest, "Sadece bekleyen talepler karara bağlanabilir")
	}

	user, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	before := lr
	now := time.Now()
	lr.Status = newStatus
	lr.ApprovedBy = &user.ID
	lr.DecidedAt = &now

	if err := database.DB.Save(&lr).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi güncellenemedi")
	}

	_ = audit.WriteLog(audit.LogOptions{
		BranchID:    &lr.BranchID,
		UserID:      user.ID,
		UserName:    user.Name,
		EntityType:  "leave_request",
		EntityID:    lr.ID,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("İzin talebi %s: #%d", newStatus, lr.ID),
		Before:      before,
		After:       lr,
	})

	return response.OK(c, toLeaveResponse(&lr))
}

// POST /api/leave-requests/:id/approve
func ApproveLeaveRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return decideLeaveRequest(c, models.LeaveApproved)
	}
}

// POST /api/leave-requests/:id/reject
func RejectLeaveRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return decideLeaveRequest(c, models.LeaveRejected)
	}
}
