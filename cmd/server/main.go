package main

import (
	"log"
	"strings"

	"personel-backend/internal/attendance"
	"personel-backend/internal/audit"
	"personel-backend/internal/auth"
	"personel-backend/internal/config"
	"personel-backend/internal/contract"
	"personel-backend/internal/database"
	"personel-backend/internal/employee"
	"personel-backend/internal/models"
	"personel-backend/internal/organization"
	"personel-backend/internal/payroll"
	"personel-backend/internal/recruitment"
	"personel-backend/internal/report"
	"personel-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return response.Fail(c, e.Code, e.Message)
			}
			log.Println("Unexpected error:", err)
			return response.Fail(c, fiber.StatusInternalServerError, "Beklenmeyen sunucu hatası")
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Device-Key",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Cihaz kanalı: PDKS cihazları JWT değil API anahtarı ile gelir
	device := api.Group("/device")
	device.Use(auth.DeviceAuthMiddleware())
	device.Post("/attendance-records", attendance.PushRecordHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Şube yönetimi
	adminRoutes.Post("/branches", organization.CreateBranchHandler())
	adminRoutes.Get("/branches", organization.ListBranchesHandler())
	adminRoutes.Get("/branches/:id", organization.GetBranchHandler())
	adminRoutes.Put("/branches/:id", organization.UpdateBranchHandler())
	adminRoutes.Delete("/branches/:id", organization.DeleteBranchHandler())
	adminRoutes.Post("/branches/:id/admin", organization.CreateHRAdminHandler())
	adminRoutes.Get("/branches/:id/admins", organization.ListHRAdminsHandler())

	// Rapor tetikleme
	adminRoutes.Post("/reports/run", report.RunReportsHandler())

	// Organizasyon yapısı (blok + departman)
	protected.Post("/blocks", organization.CreateBlockHandler())
	protected.Get("/blocks", organization.ListBlocksHandler())
	protected.Put("/blocks/:id", organization.UpdateBlockHandler())
	protected.Delete("/blocks/:id", organization.DeleteBlockHandler())

	protected.Post("/departments", organization.CreateDepartmentHandler())
	protected.Get("/departments", organization.ListDepartmentsHandler())
	protected.Put("/departments/:id", organization.UpdateDepartmentHandler())
	protected.Delete("/departments/:id", organization.DeleteDepartmentHandler())

	// Personel yönetimi
	protected.Post("/employees", employee.CreateEmployeeHandler())
	protected.Get("/employees", employee.ListEmployeesHandler())
	protected.Get("/employees/export", employee.ExportEmployeesHandler())
	protected.Post("/employees/import", employee.ImportEmployeesHandler())
	protected.Get("/employees/:id", employee.GetEmployeeHandler())
	protected.Put("/employees/:id", employee.UpdateEmployeeHandler())
	protected.Delete("/employees/:id", employee.DeleteEmployeeHandler())
	protected.Get("/employees/:id/work-history", employee.ListWorkHistoryHandler())

	// Sözleşmeler
	protected.Post("/contracts", contract.CreateContractHandler())
	protected.Get("/contracts", contract.ListContractsHandler())
	protected.Get("/contracts/:id", contract.GetContractHandler())
	protected.Post("/contracts/:id/activate", contract.ActivateContractHandler())
	protected.Post("/contracts/:id/terminate", contract.TerminateContractHandler())

	// PDKS cihazları
	protected.Post("/attendance-devices", attendance.RegisterDeviceHandler())
	protected.Get("/attendance-devices", attendance.ListDevicesHandler())
	protected.Post("/attendance-devices/:id/revoke", attendance.RevokeDeviceHandler())

	// Giriş/çıkış kayıtları ve puantaj
	protected.Post("/attendance-records", attendance.CreateRecordHandler())
	protected.Get("/attendance-records", attendance.ListRecordsHandler())
	protected.Get("/timesheet", attendance.GetTimesheetHandler(cfg))

	// Resmi tatiller
	protected.Post("/holidays", attendance.CreateHolidayHandler())
	protected.Get("/holidays", attendance.ListHolidaysHandler())
	protected.Delete("/holidays/:id", attendance.DeleteHolidayHandler())

	// İzin talepleri
	protected.Post("/leave-requests", attendance.CreateLeaveRequestHandler())
	protected.Get("/leave-requests", attendance.ListLeaveRequestsHandler())
	protected.Post("/leave-requests/:id/approve", attendance.ApproveLeaveRequestHandler())
	protected.Post("/leave-requests/:id/reject", attendance.RejectLeaveRequestHandler())

	// İşe alım
	protected.Post("/recruitment-sources", recruitment.CreateSourceHandler())
	protected.Get("/recruitment-sources", recruitment.ListSourcesHandler())
	protected.Delete("/recruitment-sources/:id", recruitment.DeleteSourceHandler())

	protected.Post("/candidates", recruitment.CreateCandidateHandler())
	protected.Get("/candidates", recruitment.ListCandidatesHandler())
	protected.Get("/candidates/:id", recruitment.GetCandidateHandler())
	protected.Put("/candidates/:id/status", recruitment.UpdateCandidateStatusHandler())
	protected.Post("/candidates/:id/hire", recruitment.HireCandidateHandler())

	// Bordro ve KPI
	protected.Post("/payroll/generate", payroll.GeneratePayrollHandler(cfg))
	protected.Get("/payroll", payroll.ListPayrollHandler())
	protected.Get("/payroll/:id", payroll.GetPayrollHandler())
	protected.Post("/payroll/:id/approve", payroll.ApprovePayrollHandler())
	protected.Post("/payroll/:id/pay", payroll.PayPayrollHandler())

	protected.Post("/kpi", payroll.UpsertKPIHandler())
	protected.Get("/kpi", payroll.ListKPIHandler())
	protected.Delete("/kpi/:id", payroll.DeleteKPIHandler())

	// Aylık raporlar
	protected.Get("/reports/staff-growth", report.ListStaffGrowthHandler())
	protected.Get("/reports/status-breakdown", report.ListStatusBreakdownHandler())
	protected.Get("/reports/recruitment-sources", report.ListSourceReportsHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	if cfg.SchedulerEnable {
		scheduler := report.NewScheduler()
		scheduler.Start()
		defer scheduler.Stop()
	}

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
