package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tireshop/backoffice/internal/audit"
	"github.com/tireshop/backoffice/internal/config"
	"github.com/tireshop/backoffice/internal/domain/schedule"
	"github.com/tireshop/backoffice/internal/handlers"
	infraRepo "github.com/tireshop/backoffice/internal/infra/repository"
	"github.com/tireshop/backoffice/internal/metrics"
	"github.com/tireshop/backoffice/internal/middleware"
	"github.com/tireshop/backoffice/internal/notify"
	ucAppointment "github.com/tireshop/backoffice/internal/usecase/appointment"
	ucDeposit "github.com/tireshop/backoffice/internal/usecase/deposit"
)

// Deps are the process-wide singletons the routes are built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Clock    schedule.Clock
	Notifier notify.Notifier
	Audit    *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(d.Config.CORSAllowedOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	depositRepo := infraRepo.NewDepositGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCheckConflicts(appointmentRepo, d.Logger),
		ucAppointment.NewSaveAppointment(appointmentRepo, d.Audit, d.Clock, d.Logger),
		ucAppointment.NewChangeAppointmentStatus(appointmentRepo, d.Audit, d.Clock),
		ucAppointment.NewListAppointmentsByDate(appointmentRepo),
	)

	depositHandler := handlers.NewDepositHandler(
		ucDeposit.NewCreateDeposit(depositRepo, d.Audit, d.Clock),
		ucDeposit.NewGetDeposit(depositRepo, d.Clock, d.Logger),
		ucDeposit.NewListDeposits(depositRepo, d.Clock, d.Logger),
		ucDeposit.NewChangeDepositStatus(depositRepo, d.Audit),
		ucDeposit.NewReleaseDeposit(depositRepo, d.Audit, d.Notifier, d.Clock, d.Logger),
		ucDeposit.NewDepositSummary(depositRepo, d.Clock, d.Logger, d.Config.PickupWindowDays),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	clientHandler := handlers.NewClientHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.POST("/appointments/conflicts", appointmentHandler.CheckConflicts)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)

			// ------------------------------
			// DEPOSITS
			// ------------------------------
			secured.GET("/deposits", depositHandler.List)
			secured.GET("/deposits/summary", depositHandler.Summary)
			secured.POST("/deposits", depositHandler.Create)
			secured.GET("/deposits/:id", depositHandler.Get)
			secured.PATCH("/deposits/:id/status", depositHandler.ChangeStatus)
			secured.POST("/deposits/:id/release", depositHandler.Release)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
