package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/court-booking/internal/audit"
	"github.com/BruksfildServices01/court-booking/internal/auth"
	"github.com/BruksfildServices01/court-booking/internal/config"
	"github.com/BruksfildServices01/court-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/court-booking/internal/infra/repository"
	"github.com/BruksfildServices01/court-booking/internal/middleware"
	"github.com/BruksfildServices01/court-booking/internal/models"
	"github.com/BruksfildServices01/court-booking/internal/notification"
	"github.com/BruksfildServices01/court-booking/internal/timezone"
	ucCourt "github.com/BruksfildServices01/court-booking/internal/usecase/court"
	ucReservation "github.com/BruksfildServices01/court-booking/internal/usecase/reservation"
)

// RegisterRoutes wires the API onto r. The returned func drains the
// background audit and notification queues.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	courtCache ucCourt.Cache,
	notifier notification.Notifier,
) (shutdown func()) {

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)
	courtRepo := infraRepo.NewCourtGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	notifyDispatcher := notification.NewDispatcher(notifier, loc, cfg.NotifyQueueSize)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)

	// ======================================================
	// 🧠 USE CASES: COURTS
	// ======================================================
	createCourtUC := ucCourt.NewCreateCourt(courtRepo, courtCache, auditDispatcher)
	updateCourtUC := ucCourt.NewUpdateCourt(courtRepo, courtCache, auditDispatcher)
	toggleCourtUC := ucCourt.NewToggleCourt(courtRepo, courtCache, auditDispatcher)
	getCourtUC := ucCourt.NewGetCourt(courtRepo, courtCache)
	listCourtsUC := ucCourt.NewListCourts(courtRepo, courtCache)

	// ======================================================
	// 🧠 USE CASES: RESERVATIONS
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(reservationRepo, notifyDispatcher, auditDispatcher)
	updateReservationUC := ucReservation.NewUpdateReservation(reservationRepo, auditDispatcher)
	cancelReservationUC := ucReservation.NewCancelReservation(reservationRepo, notifyDispatcher, auditDispatcher)
	confirmReservationUC := ucReservation.NewConfirmReservation(reservationRepo, notifyDispatcher, auditDispatcher)
	markPaidUC := ucReservation.NewMarkReservationPaid(reservationRepo, auditDispatcher)
	getReservationUC := ucReservation.NewGetReservation(reservationRepo)
	listReservationsUC := ucReservation.NewListReservations(reservationRepo)
	listCourtReservationsUC := ucReservation.NewListCourtReservations(reservationRepo)
	quoteUC := ucReservation.NewQuoteReservation(reservationRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, notifyDispatcher, auditDispatcher, cfg.ValidateEmailHosts)
	meHandler := handlers.NewMeHandler(db, auditDispatcher)
	userHandler := handlers.NewUserHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)

	courtHandler := handlers.NewCourtHandler(
		createCourtUC,
		updateCourtUC,
		toggleCourtUC,
		getCourtUC,
		listCourtsUC,
		quoteUC,
		listCourtReservationsUC,
		loc,
	)

	reservationHandler := handlers.NewReservationHandler(
		createReservationUC,
		updateReservationUC,
		cancelReservationUC,
		confirmReservationUC,
		markPaidUC,
		getReservationUC,
		listReservationsUC,
		loc,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens, db))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// COURTS
			// ------------------------------
			secured.GET("/courts", courtHandler.List)
			secured.GET("/courts/:id", courtHandler.Get)
			secured.GET("/courts/:id/availability", courtHandler.Availability)
			secured.GET("/courts/:id/reservations", courtHandler.Reservations)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.GET("/reservations", reservationHandler.List)
			secured.POST("/reservations", reservationHandler.Create)
			secured.GET("/reservations/:id", reservationHandler.Get)
			secured.PATCH("/reservations/:id", reservationHandler.Update)
			secured.POST("/reservations/:id/cancel", reservationHandler.Cancel)
		}

		// ------------------------------
		// 🛡️ ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(middleware.AuthMiddleware(tokens, db), middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/courts", courtHandler.Create)
			admin.PATCH("/courts/:id", courtHandler.Update)
			admin.POST("/courts/:id/toggle", courtHandler.Toggle)

			admin.POST("/reservations/:id/confirm", reservationHandler.Confirm)
			admin.POST("/reservations/:id/payment/paid", reservationHandler.MarkPaid)

			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.GET("/users/:id", userHandler.Get)
			admin.DELETE("/users/:id", userHandler.Deactivate)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return func() {
		notifyDispatcher.Close()
		auditDispatcher.Close()
	}
}
