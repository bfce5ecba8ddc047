package recruitment

import (
	"strings"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type SourceResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateSourceRequest struct {
	Name string `json:"name"`
}

// POST /api/recruitment-sources
func CreateSourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSourceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kaynak adı boş olamaz")
		}

		source := models.RecruitmentSource{Name: body.Name}
		if err := database.DB.Create(&source).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Kaynak oluşturulamadı (aynı isim kayıtlı olabilir)")
		}

		return response.Created(c, SourceResponse{ID: source.ID, Name: source.Name})
	}
}

// GET /api/recruitment-sources
func ListSourcesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sources []models.RecruitmentSource
		if err := database.DB.Order("name").Find(&sources).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kaynaklar listelenemedi")
		}

		res := make([]SourceResponse, 0, len(sources))
		for _, s := range sources {
			res = append(res, SourceResponse{ID: s.ID, Name: s.Name})
		}

		return response.OK(c, res)
	}
}

// DELETE /api/recruitment-sources/:id
func DeleteSourceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		// Adayı olan kaynak silinemez
		var count int64
		database.DB.Model(&models.RecruitmentCandidate{}).Where("source_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Adayı olan kaynak silinemez")
		}

		if err := database.DB.Delete(&models.RecruitmentSource{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kaynak silinemedi")
		}

		return response.NoContent(c)
	}
}
