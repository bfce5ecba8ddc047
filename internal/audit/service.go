package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"personel-backend/internal/database"
	"personel-backend/internal/models"
)

type LogOptions struct {
	BranchID    *uint
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		BranchID:    opts.BranchID,
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}

// UndoLog - Bir audit log'u geri al. Sözleşme ve bordro kayıtları durum
// makinesine bağlı olduğu için geri alınamaz; liste deleteEntity'de tutulur.
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log bulunamadı: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("bu işlem zaten geri alınmış")
	}

	switch log.Action {
	case models.AuditActionCreate:
		// Create ise entity'yi sil
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("entity silinemedi: %w", err)
		}

	case models.AuditActionUpdate:
		// Update ise önceki haline geri döndür
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("entity geri yüklenemedi: %w", err)
		}

	case models.AuditActionDelete:
		// Delete ise entity'yi geri oluştur
		if err := recreateEntity(log.EntityType, log.EntityID, log.AfterData); err != nil {
			return fmt.Errorf("entity geri oluşturulamadı: %w", err)
		}

	default:
		return fmt.Errorf("bu işlem türü geri alınamaz")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("log güncellenemedi: %w", err)
	}

	// Undo işlemi için yeni bir log oluştur
	undoLog := models.AuditLog{
		BranchID:    log.BranchID,
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Geri alındı: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("undo log kaydedilemedi: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "employee":
		return database.DB.Delete(&models.Employee{}, "id = ?", entityID).Error
	case "attendance_record":
		return database.DB.Delete(&models.AttendanceRecord{}, "id = ?", entityID).Error
	case "holiday":
		return database.DB.Delete(&models.Holiday{}, "id = ?", entityID).Error
	case "leave_request":
		return database.DB.Delete(&models.LeaveRequest{}, "id = ?", entityID).Error
	case "kpi_assessment":
		return database.DB.Delete(&models.KPIAssessment{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// recreateEntity - Silinen entity'yi geri oluştur
func recreateEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "employee":
		// Personel soft delete ile silinir; silinen satır kod ve e-posta unique
		// indekslerini hala tuttuğundan yeni kayıt açılamaz. Satır geri diriltilir,
		// böylece mevcut sözleşme ve work history FK'leri de korunur.
		res := database.DB.Unscoped().Model(&models.Employee{}).
			Where("id = ?", entityID).Update("deleted_at", nil)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("silinmiş personel bulunamadı: %d", entityID)
		}
		return nil

	case "attendance_record":
		var record models.AttendanceRecord
		if err := json.Unmarshal([]byte(dataJSON), &record); err != nil {
			return err
		}
		record.ID = 0
		return database.DB.Create(&record).Error

	case "holiday":
		var holiday models.Holiday
		if err := json.Unmarshal([]byte(dataJSON), &holiday); err != nil {
			return err
		}
		holiday.ID = 0
		return database.DB.Create(&holiday).Error

	case "leave_request":
		var request models.LeaveRequest
		if err := json.Unmarshal([]byte(dataJSON), &request); err != nil {
			return err
		}
		request.ID = 0
		return database.DB.Create(&request).Error

	case "kpi_assessment":
		var assessment models.KPIAssessment
		if err := json.Unmarshal([]byte(dataJSON), &assessment); err != nil {
			return err
		}
		assessment.ID = 0
		return database.DB.Create(&assessment).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}

// restoreEntity - Entity'yi önceki haline geri yükle (update)
func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "employee":
		var employee models.Employee
		if err := json.Unmarshal([]byte(dataJSON), &employee); err != nil {
			return err
		}
		return database.DB.Model(&models.Employee{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"branch_id":     employee.BranchID,
			"department_id": employee.DepartmentID,
			"full_name":     employee.FullName,
			"email":         employee.Email,
			"phone":         employee.Phone,
			"gender":        employee.Gender,
			"birth_date":    employee.BirthDate,
			"hire_date":     employee.HireDate,
			"position":      employee.Position,
			"status":        employee.Status,
			"resigned_at":   employee.ResignedAt,
		}).Error

	case "attendance_record":
		var record models.AttendanceRecord
		if err := json.Unmarshal([]byte(dataJSON), &record); err != nil {
			return err
		}
		return database.DB.Model(&models.AttendanceRecord{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"employee_id": record.EmployeeID,
			"branch_id":   record.BranchID,
			"date":        record.Date,
			"check_in":    record.CheckIn,
			"check_out":   record.CheckOut,
			"source":      record.Source,
			"device_id":   record.DeviceID,
		}).Error

	case "holiday":
		var holiday models.Holiday
		if err := json.Unmarshal([]byte(dataJSON), &holiday); err != nil {
			return err
		}
		return database.DB.Model(&models.Holiday{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name": holiday.Name,
			"date": holiday.Date,
		}).Error

	case "leave_request":
		var request models.LeaveRequest
		if err := json.Unmarshal([]byte(dataJSON), &request); err != nil {
			return err
		}
		return database.DB.Model(&models.LeaveRequest{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"employee_id": request.EmployeeID,
			"branch_id":   request.BranchID,
			"type":        request.Type,
			"start_date":  request.StartDate,
			"end_date":    request.EndDate,
			"reason":      request.Reason,
			"status":      request.Status,
			"approved_by": request.ApprovedBy,
			"decided_at":  request.DecidedAt,
		}).Error

	case "kpi_assessment":
		var assessment models.KPIAssessment
		if err := json.Unmarshal([]byte(dataJSON), &assessment); err != nil {
			return err
		}
		return database.DB.Model(&models.KPIAssessment{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"employee_id": assessment.EmployeeID,
			"branch_id":   assessment.BranchID,
			"year":        assessment.Year,
			"month":       assessment.Month,
			"score":       assessment.Score,
			"grade":       assessment.Grade,
			"reviewer_id": assessment.ReviewerID,
			"comment":     assessment.Comment,
		}).Error

	default:
		return fmt.Errorf("bilinmeyen entity tipi: %s", entityType)
	}
}
