package organization

import (
	"strings"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type BlockResponse struct {
	ID        uint   `json:"id"`
	BranchID  uint   `json:"branch_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type CreateBlockRequest struct {
	BranchID uint   `json:"branch_id"`
	Name     string `json:"name"`
}

type UpdateBlockRequest struct {
	Name *string `json:"name"`
}

func CreateBlockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBlockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Blok adı boş olamaz")
		}

		// Şube kontrolü
		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", body.BranchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şube bulunamadı")
		}

		block := models.Block{
			BranchID: branch.ID,
			Name:     body.Name,
		}

		if err := database.DB.Create(&block).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Blok oluşturulamadı (aynı şubede aynı isim olabilir)")
		}

		return response.Created(c, BlockResponse{
			ID:        block.ID,
			BranchID:  block.BranchID,
			Name:      block.Name,
			CreatedAt: block.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/blocks?branch_id=1
func ListBlocksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Block{})

		if bid := c.Query("branch_id"); bid != "" {
			dbq = dbq.Where("branch_id = ?", bid)
		}

		var blocks []models.Block
		if err := dbq.Order("branch_id, name").Find(&blocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bloklar listelenemedi")
		}

		res := make([]BlockResponse, 0, len(blocks))
		for _, b := range blocks {
			res = append(res, BlockResponse{
				ID:        b.ID,
				BranchID:  b.BranchID,
				Name:      b.Name,
				CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return response.OK(c, res)
	}
}

func UpdateBlockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var block models.Block
		if err := database.DB.First(&block, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Blok bulunamadı")
		}

		var body UpdateBlockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Blok adı boş olamaz")
			}
			block.Name = name
		}

		if err := database.DB.Save(&block).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Blok güncellenemedi")
		}

		return response.OK(c, BlockResponse{
			ID:        block.ID,
			BranchID:  block.BranchID,
			Name:      block.Name,
			CreatedAt: block.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeleteBlockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		// Departmanı olan blok silinemez
		var count int64
		database.DB.Model(&models.Department{}).Where("block_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Departmanı olan blok silinemez")
		}

		if err := database.DB.Delete(&models.Block{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Blok silinemedi")
		}

		return response.NoContent(c)
	}
}
