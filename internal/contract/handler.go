package contract

import (
	"fmt"
	"time"

	"personel-backend/internal/audit"
	"personel-backend/internal/auth"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ContractResponse struct {
	ID         uint   `json:"id"`
	Code       string `json:"code"`
	EmployeeID uint   `json:"employee_id"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	BaseSalary string `json:"base_salary"`
	Allowance  string `json:"allowance"`
	Note       string `json:"note"`
	CreatedAt  string `json:"created_at"`
}

type CreateContractRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"` // Belirsiz süreli için boş
	BaseSalary string `json:"base_salary"`
	Allowance  string `json:"allowance"`
	Note       string `json:"note"`
}

func toContractResponse(ct *models.Contract) ContractResponse {
	res := ContractResponse{
		ID:         ct.ID,
		Code:       ct.Code,
		EmployeeID: ct.EmployeeID,
		Type:       string(ct.Type),
		Status:     string(ct.Status),
		StartDate:  ct.StartDate.Format("2006-01-02"),
		BaseSalary: ct.BaseSalary.StringFixed(2),
		Allowance:  ct.Allowance.StringFixed(2),
		Note:       ct.Note,
		CreatedAt:  ct.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if ct.EndDate != nil {
		res.EndDate = ct.EndDate.Format("2006-01-02")
	}
	return res
}

// POST /api/contracts
func CreateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateContractRequest
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

		ctype := models.ContractType(body.Type)
		switch ctype {
		case models.ContractProbation, models.ContractFixedTerm, models.ContractIndefinite:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz sözleşme tipi")
		}

		startDate, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz başlangıç tarihi (YYYY-MM-DD olmalı)")
		}

		var endDate *time.Time
		if body.EndDate != "" {
			ed, err := time.Parse("2006-01-02", body.EndDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz bitiş tarihi (YYYY-MM-DD olmalı)")
			}
			if !ed.After(startDate) {
				return fiber.NewError(fiber.StatusBadRequest, "Bitiş tarihi başlangıçtan sonra olmalı")
			}
			endDate = &ed
		}

		// Belirsiz süreli dışındaki sözleşmelerde bitiş tarihi zorunlu
		if ctype != models.ContractIndefinite && endDate == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu sözleşme tipi için bitiş tarihi zorunlu")
		}

		baseSalary, err := decimal.NewFromString(body.BaseSalary)
		if err != nil || baseSalary.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz maaş tutarı")
		}

		allowance := decimal.Zero
		if body.Allowance != "" {
			allowance, err = decimal.NewFromString(body.Allowance)
			if err != nil || allowance.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz yan ödeme tutarı")
			}
		}

		ct := models.Contract{
			EmployeeID: emp.ID,
			Type:       ctype,
			Status:     models.ContractDraft,
			StartDate:  startDate,
			EndDate:    endDate,
			BaseSalary: baseSalary,
			Allowance:  allowance,
			Note:       body.Note,
		}

		if err := database.DB.Create(&ct).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sözleşme oluşturulamadı")
		}

		if user, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &emp.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "contract",
				EntityID:    ct.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Sözleşme oluşturuldu: %s (%s)", ct.Code, emp.Code),
				After:       ct,
			})
		}

		return response.Created(c, toContractResponse(&ct))
	}
}

// GET /api/contracts?employee_id=1&status=active
func ListContractsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Contract{}).
			Where("employee_id IN (?)",
				database.DB.Model(&models.Employee{}).Select("id").Where("branch_id = ?", branchID))

		if empID := c.Query("employee_id"); empID != "" {
			dbq = dbq.Where("employee_id = ?", empID)
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var contracts []models.Contract
		if err := dbq.Order("created_at DESC").Find(&contracts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sözleşmeler listelenemedi")
		}

		res := make([]ContractResponse, 0, len(contracts))
		for i := range contracts {
			res = append(res, toContractResponse(&contracts[i]))
		}

		return response.OK(c, res)
	}
}

// GET /api/contracts/:id
func GetContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ct models.Contract
		if err := database.DB.Preload("Employee").First(&ct, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sözleşme bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, ct.Employee.BranchID); err != nil {
			return err
		}

		return response.OK(c, toContractResponse(&ct))
	}
}

// POST /api/contracts/:id/activate
func ActivateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ct models.Contract
		if err := database.DB.Preload("Employee").First(&ct, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sözleşme bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, ct.Employee.BranchID); err != nil {
			return err
		}

		before := ct
		updated, err := Activate(ct.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if user, uerr := auth.CurrentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &ct.Employee.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "contract",
				EntityID:    updated.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Sözleşme aktifleştirildi: %s", updated.Code),
				Before:      before,
				After:       updated,
			})
		}

		return response.OK(c, toContractResponse(updated))
	}
}

// POST /api/contracts/:id/terminate
func TerminateContractHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var ct models.Contract
		if err := database.DB.Preload("Employee").First(&ct, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sözleşme bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, ct.Employee.BranchID); err != nil {
			return err
		}

		before := ct
		updated, err := Terminate(ct.ID, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if user, uerr := auth.CurrentUser(c); uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &ct.Employee.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "contract",
				EntityID:    updated.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Sözleşme feshedildi: %s", updated.Code),
				Before:      before,
				After:       updated,
			})
		}

		return response.OK(c, toContractResponse(updated))
	}
}
