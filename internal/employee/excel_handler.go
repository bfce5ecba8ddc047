package employee

import (
	"fmt"
	"strings"
	"time"

	"personel-backend/internal/auth"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Kod", "Ad Soyad", "Email", "Telefon", "Departman", "Pozisyon", "Durum", "İşe Giriş"}

// GET /api/employees/export
// Şubenin personel listesini XLSX olarak indirir.
func ExportEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		var employees []models.Employee
		if err := database.DB.Preload("Department").
			Where("branch_id = ?", branchID).
			Order("code").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personel listelenemedi")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		for col, header := range exportHeaders {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, header)
		}

		for i, emp := range employees {
			deptName := ""
			if emp.Department != nil {
				deptName = emp.Department.Name
			}
			values := []interface{}{
				emp.Code,
				emp.FullName,
				emp.Email,
				emp.Phone,
				deptName,
				emp.Position,
				string(emp.Status),
				emp.HireDate.Format("2006-01-02"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		filename := fmt.Sprintf("personel-%d-%s.xlsx", branchID, time.Now().Format("2006-01-02"))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}

// POST /api/employees/import
// XLSX dosyasından toplu personel yükler. Kolon sırası:
// Ad Soyad | Email | Telefon | Departman | Pozisyon | İşe Giriş (YYYY-MM-DD)
func ImportEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}

		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		// Başlık satırı kontrolü
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "AD") || strings.Contains(firstCell, "NAME") {
				startIndex = 1
			}
		}

		// Departman adlarını bir kez çek (isim -> id)
		var departments []models.Department
		database.DB.
			Where("block_id IN (?)",
				database.DB.Model(&models.Block{}).Select("id").Where("branch_id = ?", branchID)).
			Find(&departments)
		deptByName := make(map[string]uint, len(departments))
		for _, d := range departments {
			deptByName[strings.ToLower(strings.TrimSpace(d.Name))] = d.ID
		}

		createdCount := 0
		failedRows := make([]string, 0)

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) < 2 {
				continue
			}

			cell := func(idx int) string {
				if idx < len(row) {
					return strings.TrimSpace(row[idx])
				}
				return ""
			}

			fullName := cell(0)
			email := strings.ToLower(cell(1))
			if fullName == "" || email == "" {
				continue
			}

			hireDate := time.Now()
			if hd := cell(5); hd != "" {
				if parsed, err := time.Parse("2006-01-02", hd); err == nil {
					hireDate = parsed
				}
			}

			var departmentID *uint
			if deptName := cell(3); deptName != "" {
				if id, ok := deptByName[strings.ToLower(deptName)]; ok {
					departmentID = &id
				} else {
					failedRows = append(failedRows, fmt.Sprintf("satır %d: departman bulunamadı (%s)", i+1, deptName))
					continue
				}
			}

			emp := models.Employee{
				BranchID:     branchID,
				DepartmentID: departmentID,
				FullName:     fullName,
				Email:        email,
				Phone:        cell(2),
				HireDate:     hireDate,
				Position:     cell(4),
				Status:       models.StatusProbation,
			}

			if err := database.DB.Create(&emp).Error; err != nil {
				failedRows = append(failedRows, fmt.Sprintf("satır %d: kayıt oluşturulamadı (%s)", i+1, email))
				continue
			}

			database.DB.Create(&models.WorkHistory{
				EmployeeID: emp.ID,
				BranchID:   branchID,
				Event:      models.WorkEventHired,
				OccurredAt: hireDate,
			})

			createdCount++
		}

		return response.OK(c, fiber.Map{
			"created_count": createdCount,
			"failed_rows":   failedRows,
			"message":       fmt.Sprintf("%d personel yüklendi, %d satır atlandı.", createdCount, len(failedRows)),
		})
	}
}
