package employee

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

type EmployeeResponse struct {
	ID           uint   `json:"id"`
	Code         string `json:"code"`
	BranchID     uint   `json:"branch_id"`
	DepartmentID *uint  `json:"department_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	BirthDate    string `json:"birth_date"`
	HireDate     string `json:"hire_date"`
	Position     string `json:"position"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type CreateEmployeeRequest struct {
	BranchID     *uint  `json:"branch_id"` // super_admin için
	DepartmentID *uint  `json:"department_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	BirthDate    string `json:"birth_date"` // "2006-01-02"
	HireDate     string `json:"hire_date"`
	Position     string `json:"position"`
}

type UpdateEmployeeRequest struct {
	DepartmentID *uint   `json:"department_id"`
	FullName     *string `json:"full_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Gender       *string `json:"gender"`
	BirthDate    *string `json:"birth_date"`
	Position     *string `json:"position"`
	Status       *string `json:"status"`
}

func toEmployeeResponse(e *models.Employee) EmployeeResponse {
	res := EmployeeResponse{
		ID:           e.ID,
		Code:         e.Code,
		BranchID:     e.BranchID,
		DepartmentID: e.DepartmentID,
		FullName:     e.FullName,
		Email:        e.Email,
		Phone:        e.Phone,
		Gender:       e.Gender,
		HireDate:     e.HireDate.Format("2006-01-02"),
		Position:     e.Position,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.BirthDate != nil {
		res.BirthDate = e.BirthDate.Format("2006-01-02")
	}
	return res
}

// checkDepartment: Departmanın verilen şubeye ait olduğunu doğrular.
func checkDepartment(departmentID, branchID uint) error {
	var dept models.Department
	if err := database.DB.Preload("Block").First(&dept, "id = ?", departmentID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Departman bulunamadı")
	}
	if dept.Block.BranchID != branchID {
		return fiber.NewError(fiber.StatusBadRequest, "Departman bu şubeye ait değil")
	}
	return nil
}

// POST /api/employees
func CreateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.FullName = strings.TrimSpace(body.FullName)
		body.Email = strings.ToLower(strings.TrimSpace(body.Email))

		if body.FullName == "" || body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim ve email zorunlu")
		}

		branchID, err := auth.ResolveBranchID(c, body.BranchID)
		if err != nil {
			return err
		}

		if body.DepartmentID != nil {
			if err := checkDepartment(*body.DepartmentID, branchID); err != nil {
				return err
			}
		}

		hireDate := time.Now()
		if body.HireDate != "" {
			hireDate, err = time.Parse("2006-01-02", body.HireDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz işe giriş tarihi (YYYY-MM-DD olmalı)")
			}
		}

		var birthDate *time.Time
		if body.BirthDate != "" {
			bd, err := time.Parse("2006-01-02", body.BirthDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz doğum tarihi (YYYY-MM-DD olmalı)")
			}
			birthDate = &bd
		}

		emp := models.Employee{
			BranchID:     branchID,
			DepartmentID: body.DepartmentID,
			FullName:     body.FullName,
			Email:        body.Email,
			Phone:        strings.TrimSpace(body.Phone),
			Gender:       body.Gender,
			BirthDate:    birthDate,
			HireDate:     hireDate,
			Position:     strings.TrimSpace(body.Position),
			Status:       models.StatusProbation,
		}

		if err := database.DB.Create(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Personel oluşturulamadı (email kayıtlı olabilir)")
		}

		// İşe giriş olayı
		database.DB.Create(&models.WorkHistory{
			EmployeeID: emp.ID,
			BranchID:   branchID,
			Event:      models.WorkEventHired,
			OccurredAt: hireDate,
		})

		if user, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &branchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "employee",
				EntityID:    emp.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Personel oluşturuldu: %s (%s)", emp.FullName, emp.Code),
				After:       emp,
			})
		}

		return response.Created(c, toEmployeeResponse(&emp))
	}
}

// GET /api/employees?status=active&department_id=3&block_id=2&q=ahmet
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Employee{}).Where("branch_id = ?", branchID)

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}
		if deptID := c.Query("department_id"); deptID != "" {
			dbq = dbq.Where("department_id = ?", deptID)
		}
		if blockID := c.Query("block_id"); blockID != "" {
			dbq = dbq.Where("department_id IN (?)",
				database.DB.Model(&models.Department{}).Select("id").Where("block_id = ?", blockID))
		}
		if q := c.Query("q"); q != "" {
			like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
			dbq = dbq.Where("LOWER(full_name) LIKE ? OR LOWER(code) LIKE ?", like, like)
		}

		var employees []models.Employee
		if err := dbq.Order("code").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel listelenemedi")
		}

		res := make([]EmployeeResponse, 0, len(employees))
		for i := range employees {
			res = append(res, toEmployeeResponse(&employees[i]))
		}

		return response.OK(c, res)
	}
}

// GET /api/employees/:id
func GetEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, emp.BranchID); err != nil {
			return err
		}

		return response.OK(c, toEmployeeResponse(&emp))
	}
}

// PUT /api/employees/:id
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, emp.BranchID); err != nil {
			return err
		}

		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := emp

		if body.FullName != nil {
			name := strings.TrimSpace(*body.FullName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "İsim boş olamaz")
			}
			emp.FullName = name
		}
		if body.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*body.Email))
			if email == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Email boş olamaz")
			}
			emp.Email = email
		}
		if body.Phone != nil {
			emp.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Gender != nil {
			emp.Gender = *body.Gender
		}
		if body.BirthDate != nil {
			bd, err := time.Parse("2006-01-02", *body.BirthDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz doğum tarihi (YYYY-MM-DD olmalı)")
			}
			emp.BirthDate = &bd
		}
		if body.Position != nil {
			emp.Position = strings.TrimSpace(*body.Position)
		}

		// Departman transferi ve durum değişikliği work history olayı üretir;
		// olaylar kayıt ile aynı transaction'da yazılır
		var events []models.WorkHistory

		if body.DepartmentID != nil && (emp.DepartmentID == nil || *body.DepartmentID != *emp.DepartmentID) {
			if err := checkDepartment(*body.DepartmentID, emp.BranchID); err != nil {
				return err
			}
			oldDept := uint(0)
			if emp.DepartmentID != nil {
				oldDept = *emp.DepartmentID
			}
			emp.DepartmentID = body.DepartmentID

			events = append(events, models.WorkHistory{
				EmployeeID: emp.ID,
				BranchID:   emp.BranchID,
				Event:      models.WorkEventTransferred,
				Detail:     fmt.Sprintf("departman %d -> %d", oldDept, *body.DepartmentID),
				OccurredAt: time.Now(),
			})
		}

		if body.Status != nil && models.EmploymentStatus(*body.Status) != emp.Status {
			newStatus := models.EmploymentStatus(*body.Status)
			switch newStatus {
			case models.StatusProbation, models.StatusActive, models.StatusOnLeave, models.StatusResigned:
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz personel durumu")
			}

			event := models.WorkEventStatusChanged
			if newStatus == models.StatusResigned {
				event = models.WorkEventResigned
				now := time.Now()
				emp.ResignedAt = &now
			}

			events = append(events, models.WorkHistory{
				EmployeeID: emp.ID,
				BranchID:   emp.BranchID,
				Event:      event,
				Detail:     fmt.Sprintf("%s -> %s", emp.Status, newStatus),
				OccurredAt: time.Now(),
			})

			emp.Status = newStatus
		}

		tx := database.DB.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(&emp).Error; err != nil {
			tx.Rollback()
			return fiber.NewError(fiber.StatusInternalServerError, "Personel güncellenemedi")
		}
		for i := range events {
			if err := tx.Create(&events[i]).Error; err != nil {
				tx.Rollback()
				return fiber.NewError(fiber.StatusInternalServerError, "Work history kaydedilemedi")
			}
		}
		if err := tx.Commit().Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel güncellenemedi")
		}

		if user, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &emp.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "employee",
				EntityID:    emp.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Personel güncellendi: %s", emp.Code),
				Before:      before,
				After:       emp,
			})
		}

		return response.OK(c, toEmployeeResponse(&emp))
	}
}

// DELETE /api/employees/:id (soft delete)
func DeleteEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, emp.BranchID); err != nil {
			return err
		}

		if err := database.DB.Delete(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel silinemedi")
		}

		if user, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &emp.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "employee",
				EntityID:    emp.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Personel silindi: %s (%s)", emp.FullName, emp.Code),
				Before:      emp,
				After:       emp,
			})
		}

		return response.NoContent(c)
	}
}

// GET /api/employees/:id/work-history
func ListWorkHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var emp models.Employee
		if err := database.DB.First(&emp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bulunamadı")
		}

		if err := auth.RequireBranchAccess(c, emp.BranchID); err != nil {
			return err
		}

		var events []models.WorkHistory
		if err := database.DB.Where("employee_id = ?", emp.ID).
			Order("occurred_at").Find(&events).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Geçmiş listelenemedi")
		}

		type workHistoryResponse struct {
			ID         uint   `json:"id"`
			Event      string `json:"event"`
			Detail     string `json:"detail"`
			OccurredAt string `json:"occurred_at"`
		}

		res := make([]workHistoryResponse, 0, len(events))
		for _, e := range events {
			res = append(res, workHistoryResponse{
				ID:         e.ID,
				Event:      string(e.Event),
				Detail:     e.Detail,
				OccurredAt: e.OccurredAt.Format("2006-01-02 15:04:05"),
			})
		}

		return response.OK(c, res)
	}
}
