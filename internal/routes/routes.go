package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
	ucLeave "github.com/BruksfildServices01/salon-scheduler/internal/usecase/leave"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Metrics *metrics.Metrics
	Revoked auth.RevocationStore
	Audit   *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(),
	)
	if d.Config.MetricsEnabled {
		r.Use(middleware.Metrics(d.Metrics))
		r.GET(d.Config.MetricsPath, gin.WrapH(d.Metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	leaveRepo := infraRepo.NewLeaveGormRepository(d.DB)
	holidayRepo := infraRepo.NewHolidayGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	issuer := auth.NewIssuer(d.Config.JWTSecret, d.Config.JWTTTL)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAvailability.NewGetAvailability(
		ucAvailability.Repositories{
			Stylists:     catalogRepo,
			Services:     catalogRepo,
			Branches:     catalogRepo,
			Appointments: appointmentRepo,
			Leave:        leaveRepo,
			Holidays:     holidayRepo,
		},
		ucAvailability.Options{
			Granularity: d.Config.BookingGranularity,
			Buffer:      d.Config.BookingBuffer,
		},
		d.Log,
		d.Metrics,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, availabilityUC, d.Config.BookingBuffer, d.Audit, d.Metrics)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit, d.Metrics)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Metrics)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit, d.Metrics)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)

	requestLeaveUC := ucLeave.NewRequestLeave(leaveRepo, d.Audit)
	decideLeaveUC := ucLeave.NewDecideLeave(leaveRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, issuer, d.Revoked, validators.DNSLookup, d.Log)
	meHandler := handlers.NewMeHandler(userRepo, d.Log)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, d.Log)
	branchHandler := handlers.NewBranchHandler(catalogRepo, d.Audit, d.Log)
	holidayHandler := handlers.NewHolidayHandler(holidayRepo, d.Audit, d.Log)
	leaveHandler := handlers.NewLeaveHandler(requestLeaveUC, decideLeaveUC, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsByDateUC,
		d.Log,
	)

	can := middleware.RequireCapability

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/branches", branchHandler.ListBranches)
			publicAPI.GET("/branches/:id/stylists", branchHandler.ListStylists)
			publicAPI.GET("/branches/:id/services", branchHandler.ListServices)
			publicAPI.GET("/stylists/:id/availability", availabilityHandler.Get)
		}

		api.GET("/holidays", holidayHandler.List)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(issuer, d.Revoked, d.Log))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/appointments", can(auth.CapBookAppointment), appointmentHandler.Create)
			secured.GET("/appointments", can(auth.CapViewSchedule), appointmentHandler.ListByDate)
			secured.PATCH("/appointments/:id/confirm", can(auth.CapManageAppointments), appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", can(auth.CapManageAppointments), appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", can(auth.CapManageAppointments), appointmentHandler.Complete)

			secured.POST("/leave", can(auth.CapRequestLeave), leaveHandler.Create)
			secured.PATCH("/leave/:id/approve", can(auth.CapManageLeave), leaveHandler.Approve)
			secured.PATCH("/leave/:id/reject", can(auth.CapManageLeave), leaveHandler.Reject)

			secured.PUT("/branches/:id/schedule", can(auth.CapManageBranch), branchHandler.UpdateSchedule)

			secured.POST("/holidays", can(auth.CapManageHolidays), holidayHandler.Create)
			secured.DELETE("/holidays/:id", can(auth.CapManageHolidays), holidayHandler.Delete)

			secured.GET("/audit-logs", can(auth.CapViewAuditLogs), auditLogsHandler.List)
		}
	}
}
