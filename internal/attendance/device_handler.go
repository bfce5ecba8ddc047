package attendance

import (
	"strings"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DeviceResponse struct {
	ID        uint   `json:"id"`
	BranchID  uint   `json:"branch_id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

type RegisterDeviceRequest struct {
	BranchID uint   `json:"branch_id"`
	Name     string `json:"name"`
}

// POST /api/attendance-devices
// Cihaz kaydı: API anahtarı sadece bu yanıtta bir kez döner.
func RegisterDeviceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterDeviceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Cihaz adı boş olamaz")
		}

		var branch models.Branch
		if err := database.DB.First(&branch, "id = ?", body.BranchID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Şube bulunamadı")
		}

		device := models.AttendanceDevice{
			BranchID: branch.ID,
			Name:     body.Name,
			APIKey:   uuid.NewString(),
			Active:   true,
		}

		if err := database.DB.Create(&device).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cihaz kaydedilemedi")
		}

		return response.Created(c, fiber.Map{
			"id":        device.ID,
			"branch_id": device.BranchID,
			"name":      device.Name,
			"api_key":   device.APIKey, // Sadece kayıt sırasında (bir kez)
		})
	}
}

// GET /api/attendance-devices?branch_id=1
func ListDevicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AttendanceDevice{})
		if bid := c.Query("branch_id"); bid != "" {
			dbq = dbq.Where("branch_id = ?", bid)
		}

		var devices []models.AttendanceDevice
		if err := dbq.Order("branch_id, name").Find(&devices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cihazlar listelenemedi")
		}

		res := make([]DeviceResponse, 0, len(devices))
		for _, d := range devices {
			res = append(res, DeviceResponse{
				ID:        d.ID,
				BranchID:  d.BranchID,
				Name:      d.Name,
				Active:    d.Active,
				CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return response.OK(c, res)
	}
}

// POST /api/attendance-devices/:id/revoke
func RevokeDeviceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var device models.AttendanceDevice
		if err := database.DB.First(&device, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cihaz bulunamadı")
		}

		device.Active = false
		if err := database.DB.Save(&device).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cihaz iptal edilemedi")
		}

		return response.OK(c, fiber.Map{
			"message": "Cihaz anahtarı iptal edildi",
		})
	}
}
