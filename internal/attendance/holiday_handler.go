package attendance

import (
	"strings"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type HolidayResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

type CreateHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"` // "2006-01-02"
}

// POST /api/holidays
func CreateHolidayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateHolidayRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tatil adı boş olamaz")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih (YYYY-MM-DD olmalı)")
		}

		holiday := models.Holiday{
			Name: body.Name,
			Date: date,
		}

		if err := database.DB.Create(&holiday).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tatil oluşturulamadı (aynı tarih kayıtlı olabilir)")
		}

		return response.Created(c, HolidayResponse{
			ID:   holiday.ID,
			Name: holiday.Name,
			Date: holiday.Date.Format("2006-01-02"),
		})
	}
}

// GET /api/holidays?year=2026
func ListHolidaysHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Holiday{})

		if year := c.QueryInt("year"); year > 0 {
			start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
			end := start.AddDate(1, 0, 0)
			dbq = dbq.Where("date >= ? AND date < ?", start, end)
		}

		var holidays []models.Holiday
		if err := dbq.Order("date").Find(&holidays).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tatiller listelenemedi")
		}

		res := make([]HolidayResponse, 0, len(holidays))
		for _, h := range holidays {
			res = append(res, HolidayResponse{
				ID:   h.ID,
				Name: h.Name,
				Date: h.Date.Format("2006-01-02"),
			})
		}

		return response.OK(c, res)
	}
}

// DELETE /api/holidays/:id
func DeleteHolidayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Holiday{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tatil silinemedi")
		}

		return response.NoContent(c)
	}
}
