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

type RecordResponse struct {
	ID         uint   `json:"id"`
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Source     string `json:"source"`
	DeviceID   *uint  `json:"device_id"`
}

type PushRecordRequest struct {
	EmployeeCode string `json:"employee_code"`
	Timestamp    string `json:"timestamp"` // RFC3339
}

type CreateRecordRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`      // "2006-01-02"
	CheckIn    string `json:"check_in"`  // "15:04"
	CheckOut   string `json:"check_out"` // "15:04", opsiyonel
}

func toRecordResponse(r *models.AttendanceRecord) RecordResponse {
	res := RecordResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       r.Date.Format("2006-01-02"),
		CheckIn:    r.CheckIn.Format("2006-01-02 15:04:05"),
		Source:     string(r.Source),
		DeviceID:   r.DeviceID,
	}
	if r.CheckOut != nil {
		res.CheckOut = r.CheckOut.Format("2006-01-02 15:04:05")
	}
	return res
}

// POST /api/device/attendance-records (cihaz kimlik doğrulaması ile)
// Cihaz her kart okutmada personel kodu + zaman gönderir. Gün içindeki ilk
// okutma giriş, sonrakiler çıkış olarak işlenir.
func PushRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		deviceIDVal := c.Locals(auth.CtxDeviceIDKey)
		deviceID, ok := deviceIDVal.(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Cihaz bilgisi alınamadı")
		}

		var device models.AttendanceDevice
		if err := database.DB.First(&device, "id = ?", deviceID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Cihaz bulunamadı")
		}

		var body PushRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.EmployeeCode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Personel kodu zorunlu")
		}

		ts := time.Now()
		if body.Timestamp != "" {
			parsed, err := time.Parse(time.RFC3339, body.Timestamp)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz zaman damgası (RFC3339 olmalı)")
			}
			ts = parsed
		}

		var emp models.Employee
		if err := database.DB.Where("code = ? AND branch_id = ?", body.EmployeeCode, device.BranchID).
			First(&emp).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Personel bu şubede bulunamadı")
		}

		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())

		// Gün içinde cihazdan gelen kayıt var mı? Varsa çıkış olarak güncelle
		var existing models.AttendanceRecord
		err := database.DB.Where("employee_id = ? AND date = ? AND source = ?",
			emp.ID, day, models.AttendanceSourceDevice).First(&existing).Error
		if err == nil {
			if existing.CheckOut == nil || ts.After(*existing.CheckOut) {
				existing.CheckOut = &ts
				if err := database.DB.Save(&existing).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Kayıt güncellenemedi")
				}
			}
			return response.OK(c, toRecordResponse(&existing))
		}

		record := models.AttendanceRecord{
			EmployeeID: emp.ID,
			BranchID:   device.BranchID,
			Date:       day,
			CheckIn:    ts,
			Source:     models.AttendanceSourceDevice,
			DeviceID:   &device.ID,
		}

		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}

		return response.Created(c, toRecordResponse(&record))
	}
}

// POST /api/attendance-records (manuel giriş)
func CreateRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRecordRequest
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

		day, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz tarih (YYYY-MM-DD olmalı)")
		}

		checkIn, err := time.Parse("15:04", body.CheckIn)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz giriş saati (HH:MM olmalı)")
		}
		checkInAt := time.Date(day.Year(), day.Month(), day.Day(), checkIn.Hour(), checkIn.Minute(), 0, 0, day.Location())

		var checkOutAt *time.Time
		if body.CheckOut != "" {
			checkOut, err := time.Parse("15:04", body.CheckOut)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz çıkış saati (HH:MM olmalı)")
			}
			co := time.Date(day.Year(), day.Month(), day.Day(), checkOut.Hour(), checkOut.Minute(), 0, 0, day.Location())
			if !co.After(checkInAt) {
				return fiber.NewError(fiber.StatusBadRequest, "Çıkış saati girişten sonra olmalı")
			}
			checkOutAt = &co
		}

		record := models.AttendanceRecord{
			EmployeeID: emp.ID,
			BranchID:   emp.BranchID,
			Date:       day,
			CheckIn:    checkInAt,
			CheckOut:   checkOutAt,
			Source:     models.AttendanceSourceManual,
		}

		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}

		if user, err := auth.CurrentUser(c); err == nil {
			_ = audit.WriteLog(audit.LogOptions{
				BranchID:    &emp.BranchID,
				UserID:      user.ID,
				UserName:    user.Name,
				EntityType:  "attendance_record",
				EntityID:    record.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Manuel yoklama girildi: %s %s", emp.Code, body.Date),
				After:       record,
			})
		}

		return response.Created(c, toRecordResponse(&record))
	}
}

// GET /api/attendance-records?employee_id=1&from=2026-01-01&to=2026-01-31
func ListRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.AttendanceRecord{}).Where("branch_id = ?", branchID)

		if empID := c.Query("employee_id"); empID != "" {
			dbq = dbq.Where("employee_id = ?", empID)
		}
		if from := c.Query("from"); from != "" {
			if fromDate, err := time.Parse("2006-01-02", from); err == nil {
				dbq = dbq.Where("date >= ?", fromDate)
			}
		}
		if to := c.Query("to"); to != "" {
			if toDate, err := time.Parse("2006-01-02", to); err == nil {
				dbq = dbq.Where("date <= ?", toDate)
			}
		}

		var records []models.AttendanceRecord
		if err := dbq.Order("date DESC, check_in DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		res := make([]RecordResponse, 0, len(records))
		for i := range records {
			res = append(res, toRecordResponse(&records[i]))
		}

		return response.OK(c, res)
	}
}
