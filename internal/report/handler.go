package report

import (
	"time"

	"personel-backend/internal/auth"
	"personel-backend/internal/database"
	"personel-backend/internal/models"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

type StaffGrowthResponse struct {
	ID            uint   `json:"id"`
	BranchID      uint   `json:"branch_id"`
	BranchName    string `json:"branch_name"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	HiredCount    int    `json:"hired_count"`
	ResignedCount int    `json:"resigned_count"`
	Headcount     int    `json:"headcount"`
	GeneratedAt   string `json:"generated_at"`
}

type StatusBreakdownResponse struct {
	ID             uint   `json:"id"`
	BranchID       uint   `json:"branch_id"`
	BranchName     string `json:"branch_name"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	ProbationCount int    `json:"probation_count"`
	ActiveCount    int    `json:"active_count"`
	OnLeaveCount   int    `json:"on_leave_count"`
	ResignedCount  int    `json:"resigned_count"`
	GeneratedAt    string `json:"generated_at"`
}

type SourceReportResponse struct {
	ID             uint   `json:"id"`
	SourceID       uint   `json:"source_id"`
	SourceName     string `json:"source_name"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	CandidateCount int    `json:"candidate_count"`
	HiredCount     int    `json:"hired_count"`
	GeneratedAt    string `json:"generated_at"`
}

type RunReportsRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// GET /api/reports/staff-growth?year=2026&month=8
func ListStaffGrowthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.StaffGrowthReport{}).Preload("Branch").
			Where("branch_id = ?", branchID)
		if year := c.Query("year"); year != "" {
			dbq = dbq.Where("year = ?", year)
		}
		if month := c.Query("month"); month != "" {
			dbq = dbq.Where("month = ?", month)
		}

		var reports []models.StaffGrowthReport
		if err := dbq.Order("year DESC, month DESC").Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		res := make([]StaffGrowthResponse, 0, len(reports))
		for _, rep := range reports {
			res = append(res, StaffGrowthResponse{
				ID:            rep.ID,
				BranchID:      rep.BranchID,
				BranchName:    rep.Branch.Name,
				Year:          rep.Year,
				Month:         rep.Month,
				HiredCount:    rep.HiredCount,
				ResignedCount: rep.ResignedCount,
				Headcount:     rep.Headcount,
				GeneratedAt:   rep.GeneratedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return response.OK(c, res)
	}
}

// GET /api/reports/status-breakdown?year=2026&month=8
func ListStatusBreakdownHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		branchID, err := auth.ResolveBranchID(c, nil)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.EmployeeStatusBreakdownReport{}).Preload("Branch").
			Where("branch_id = ?", branchID)
		if year := c.Query("year"); year != "" {
			dbq = dbq.Where("year = ?", year)
		}
		if month := c.Query("month"); month != "" {
			dbq = dbq.Where("month = ?", month)
		}

		var reports []models.EmployeeStatusBreakdownReport
		if err := dbq.Order("year DESC, month DESC").Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		res := make([]StatusBreakdownResponse, 0, len(reports))
		for _, rep := range reports {
			res = append(res, StatusBreakdownResponse{
				ID:             rep.ID,
				BranchID:       rep.BranchID,
				BranchName:     rep.Branch.Name,
				Year:           rep.Year,
				Month:          rep.Month,
				ProbationCount: rep.ProbationCount,
				ActiveCount:    rep.ActiveCount,
				OnLeaveCount:   rep.OnLeaveCount,
				ResignedCount:  rep.ResignedCount,
				GeneratedAt:    rep.GeneratedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return response.OK(c, res)
	}
}

// GET /api/reports/recruitment-sources?year=2026&month=8
func ListSourceReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.RecruitmentSourceReport{}).Preload("Source")
		if year := c.Query("year"); year != "" {
			dbq = dbq.Where("year = ?", year)
		}
		if month := c.Query("month"); month != "" {
			dbq = dbq.Where("month = ?", month)
		}
		if sourceID := c.Query("source_id"); sourceID != "" {
			dbq = dbq.Where("source_id = ?", sourceID)
		}

		var reports []models.RecruitmentSourceReport
		if err := dbq.Order("year DESC, month DESC").Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Raporlar listelenemedi")
		}

		res := make([]SourceReportResponse, 0, len(reports))
		for _, rep := range reports {
			res = append(res, SourceReportResponse{
				ID:             rep.ID,
				SourceID:       rep.SourceID,
				SourceName:     rep.Source.Name,
				Year:           rep.Year,
				Month:          rep.Month,
				CandidateCount: rep.CandidateCount,
				HiredCount:     rep.HiredCount,
				GeneratedAt:    rep.GeneratedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return response.OK(c, res)
	}
}

// POST /api/admin/reports/run - Raporları elle tetikler. Dönem verilmezse
// bir önceki ay çalıştırılır.
func RunReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RunReportsRequest
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		now := time.Now()
		year, month := body.Year, body.Month
		if year == 0 && month == 0 {
			// Ay sonlarında AddDate kayması olmasın diye ay başından geri gidilir
			prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
			year, month = prev.Year(), int(prev.Month())
		}
		if year < 2000 || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz dönem (year/month)")
		}

		if err := RunMonthly(year, month, now); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor üretimi başarısız: "+err.Error())
		}

		return response.OK(c, fiber.Map{
			"year":  year,
			"month": month,
		})
	}
}
