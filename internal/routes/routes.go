package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/health-portal/internal/audit"
	"github.com/BruksfildServices01/health-portal/internal/config"
	"github.com/BruksfildServices01/health-portal/internal/handlers"
	infraRepo "github.com/BruksfildServices01/health-portal/internal/infra/repository"
	"github.com/BruksfildServices01/health-portal/internal/middleware"
	"github.com/BruksfildServices01/health-portal/internal/models"
	ucAppointment "github.com/BruksfildServices01/health-portal/internal/usecase/appointment"
	ucAssistant "github.com/BruksfildServices01/health-portal/internal/usecase/assistant"
	ucFile "github.com/BruksfildServices01/health-portal/internal/usecase/file"
	ucPrescription "github.com/BruksfildServices01/health-portal/internal/usecase/prescription"
	ucProfile "github.com/BruksfildServices01/health-portal/internal/usecase/profile"
	ucRating "github.com/BruksfildServices01/health-portal/internal/usecase/rating"
	ucWellness "github.com/BruksfildServices01/health-portal/internal/usecase/wellness"
)

// Deps are the process-wide adapters built by cmd/api. Optional ones are
// left nil when their backend is not configured.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Audit  *audit.Dispatcher

	Blobs    ucFile.Blobs
	Renderer ucPrescription.Renderer
	Geocoder ucProfile.Geocoder
	Images   ucProfile.ImageEncoder
	Gateway  ucAppointment.PaymentGateway

	LLM     ucAssistant.TextGenerator
	Chats   ucAssistant.ChatStore
	Limiter ucAssistant.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// REPOSITORIES
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	prescriptionRepo := infraRepo.NewPrescriptionGormRepository(d.DB)
	ratingRepo := infraRepo.NewRatingGormRepository(d.DB)
	fileRepo := infraRepo.NewFileGormRepository(d.DB)
	profileRepo := infraRepo.NewProfileGormRepository(d.DB)
	wellnessRepo := infraRepo.NewWellnessGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	updatePaymentUC := ucAppointment.NewUpdatePayment(appointmentRepo, d.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewBookAppointment(appointmentRepo, d.Audit),
		ucAppointment.NewUpdateStatus(appointmentRepo, d.Audit),
		updatePaymentUC,
		ucAppointment.NewListAppointments(appointmentRepo),
		ucAppointment.NewCheckout(appointmentRepo, d.Gateway, cfg.ConsultationCurrency, d.Audit),
		ucAppointment.NewConfirmPayment(d.Gateway, updatePaymentUC),
	)

	prescriptionHandler := handlers.NewPrescriptionHandler(
		ucPrescription.NewCreatePrescription(prescriptionRepo, d.Audit),
		ucPrescription.NewUpdatePrescription(prescriptionRepo, d.Audit),
		ucPrescription.NewCancelPrescription(prescriptionRepo, d.Audit),
		ucPrescription.NewQueryPrescriptions(prescriptionRepo),
		ucPrescription.NewSharePrescription(prescriptionRepo, d.Renderer, d.Blobs, fileRepo, d.Audit),
	)

	ratingHandler := handlers.NewRatingHandler(
		ucRating.NewSubmitRating(ratingRepo, d.Audit),
		ucRating.NewGetRatings(ratingRepo),
	)

	fileHandler := handlers.NewFileHandler(ucFile.NewService(fileRepo, d.Blobs, d.Audit))

	profileHandler := handlers.NewProfileHandler(
		ucProfile.NewDoctors(profileRepo, d.Audit),
		ucProfile.NewHospitals(profileRepo, d.Geocoder, d.Images, d.Blobs, d.Audit),
	)

	assistantHandler := handlers.NewAssistantHandler(ucAssistant.NewService(d.LLM, d.Chats, d.Limiter))
	wellnessHandler := handlers.NewWellnessHandler(ucWellness.NewService(wellnessRepo))

	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	doctorOnly := middleware.RequireRole(models.RoleDoctor)
	hospitalOnly := middleware.RequireRole(models.RoleHospital)
	staffOnly := middleware.RequireRole(models.RoleDoctor, models.RoleHospital)
	patientOnly := middleware.RequireRole(models.RoleUser)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/doctors", profileHandler.ListDoctors)
		api.GET("/doctors/:id", profileHandler.GetDoctor)
		api.GET("/hospitals/search", profileHandler.SearchHospitals)
		api.GET("/hospitals/:id", profileHandler.GetHospital)
		api.GET("/ratings/get", ratingHandler.Get)

		api.POST("/payments/webhook", appointmentHandler.PaymentWebhook)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.GET("/audit-logs", auditLogsHandler.List)

			// profiles
			secured.GET("/doctor/profile", doctorOnly, profileHandler.MyDoctor)
			secured.POST("/doctor/profile", doctorOnly, profileHandler.SaveDoctor)
			secured.GET("/hospital/profile", hospitalOnly, profileHandler.MyHospital)
			secured.POST("/hospital/profile", hospitalOnly, profileHandler.SaveHospital)
			secured.POST("/hospital/images", hospitalOnly, profileHandler.UploadHospitalImages)
			secured.POST("/hospital/doctors/verify", hospitalOnly, profileHandler.VerifyDoctor)

			// appointments
			secured.POST("/appointment/book", appointmentHandler.Book)
			secured.POST("/appointment/update-status", staffOnly, appointmentHandler.UpdateStatus)
			secured.POST("/appointment/update-payment", appointmentHandler.UpdatePayment)
			secured.POST("/appointment/doctor-list", staffOnly, appointmentHandler.DoctorList)
			secured.POST("/appointment/user-list", appointmentHandler.UserList)
			secured.GET("/appointment/booked-slots", appointmentHandler.BookedSlots)
			secured.POST("/appointment/checkout", patientOnly, appointmentHandler.Checkout)
			secured.GET("/doctor/patients", doctorOnly, appointmentHandler.DoctorPatients)

			// prescriptions
			secured.POST("/prescriptions", doctorOnly, prescriptionHandler.Create)
			secured.GET("/prescriptions", prescriptionHandler.List)
			secured.GET("/prescriptions/check", prescriptionHandler.Check)
			secured.GET("/prescriptions/:id", prescriptionHandler.Get)
			secured.PUT("/prescriptions/:id", doctorOnly, prescriptionHandler.Update)
			secured.DELETE("/prescriptions/:id", doctorOnly, prescriptionHandler.Delete)
			secured.POST("/prescriptions/:id/share", doctorOnly, prescriptionHandler.Share)

			// ratings
			secured.POST("/ratings/submit", ratingHandler.Submit)

			// files
			secured.POST("/files/upload", fileHandler.Upload)
			secured.GET("/files", fileHandler.List)
			secured.POST("/files/share", fileHandler.Share)
			secured.GET("/file/download", fileHandler.Download)

			// assistant
			secured.POST("/chatbot", assistantHandler.Chat)
			secured.GET("/chatbot/history", assistantHandler.History)
			secured.DELETE("/chatbot/history", assistantHandler.ClearHistory)
			secured.POST("/symptom-checker", assistantHandler.CheckSymptoms)

			// wellness
			secured.POST("/journals", wellnessHandler.AddJournal)
			secured.GET("/journals", wellnessHandler.Journals)
			secured.DELETE("/journals/:id", wellnessHandler.DeleteJournal)
			secured.POST("/moods", wellnessHandler.LogMood)
			secured.GET("/moods", wellnessHandler.Moods)
		}
	}
}
