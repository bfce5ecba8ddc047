package organization

import (
	"strings"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type DepartmentResponse struct {
	ID        uint   `json:"id"`
	BlockID   uint   `json:"block_id"`
	ParentID  *uint  `json:"parent_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type CreateDepartmentRequest struct {
	BlockID  uint   `json:"block_id"`
	ParentID *uint  `json:"parent_id"`
	Name     string `json:"name"`
}

type UpdateDepartmentRequest struct {
	Name     *string `json:"name"`
	ParentID *uint   `json:"parent_id"`
}

func CreateDepartmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateDepartmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Departman adı boş olamaz")
		}

		var block models.Block
		if err := database.DB.First(&block, "id = ?", body.BlockID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Blok bulunamadı")
		}

		// Hiyerarşi tutarlılığı: üst departman aynı blokta olmalı
		if body.ParentID != nil {
			var parent models.Department
			if err := database.DB.First(&parent, "id = ?", *body.ParentID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Üst departman bulunamadı")
			}
			if parent.BlockID != block.ID {
				return fiber.NewError(fiber.StatusBadRequest, "Üst departman aynı blokta olmalı")
			}
		}

		dept := models.Department{
			BlockID:  block.ID,
			ParentID: body.ParentID,
			Name:     body.Name,
		}

		if err := database.DB.Create(&dept).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Departman oluşturulamadı")
		}

		return response.Created(c, DepartmentResponse{
			ID:        dept.ID,
			BlockID:   dept.BlockID,
			ParentID:  dept.ParentID,
			Name:      dept.Name,
			CreatedAt: dept.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/departments?block_id=1&branch_id=1
func ListDepartmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Department{})

		if blockID := c.Query("block_id"); blockID != "" {
			dbq = dbq.Where("block_id = ?", blockID)
		}
		if branchID := c.Query("branch_id"); branchID != "" {
			dbq = dbq.Where("block_id IN (?)",
				database.DB.Model(&models.Block{}).Select("id").Where("branch_id = ?", branchID))
		}

		var departments []models.Department
		if err := dbq.Order("block_id, name").Find(&departments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Departmanlar listelenemedi")
		}

		res := make([]DepartmentResponse, 0, len(departments))
		for _, d := range departments {
			res = append(res, DepartmentResponse{
				ID:        d.ID,
				BlockID:   d.BlockID,
				ParentID:  d.ParentID,
				Name:      d.Name,
				CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return response.OK(c, res)
	}
}

func UpdateDepartmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var dept models.Department
		if err := database.DB.First(&dept, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Departman bulunamadı")
		}

		var body UpdateDepartmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Departman adı boş olamaz")
			}
			dept.Name = name
		}

		if body.ParentID != nil {
			if *body.ParentID == dept.ID {
				return fiber.NewError(fiber.StatusBadRequest, "Departman kendisinin üstü olamaz")
			}
			var parent models.Department
			if err := database.DB.First(&parent, "id = ?", *body.ParentID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Üst departman bulunamadı")
			}
			if parent.BlockID != dept.BlockID {
				return fiber.NewError(fiber.StatusBadRequest, "Üst departman aynı blokta olmalı")
			}
			dept.ParentID = body.ParentID
		}

		if err := database.DB.Save(&dept).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Departman güncellenemedi")
		}

		return response.OK(c, DepartmentResponse{
			ID:        dept.ID,
			BlockID:   dept.BlockID,
			ParentID:  dept.ParentID,
			Name:      dept.Name,
			CreatedAt: dept.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeleteDepartmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		// Personeli veya alt departmanı olan departman silinemez
		var employeeCount int64
		database.DB.Model(&models.Employee{}).Where("department_id = ?", id).Count(&employeeCount)
		if employeeCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Personeli olan departman silinemez")
		}

		var childCount int64
		database.DB.Model(&models.Department{}).Where("parent_id = ?", id).Count(&childCount)
		if childCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Alt departmanı olan departman silinemez")
		}

		if err := database.DB.Delete(&models.Department{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Departman silinemedi")
		}

		return response.NoContent(c)
	}
}
