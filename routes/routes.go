package routes

import (
	"net/http"
	"time"

	"medicore/handlers"
	"medicore/middleware"
	"medicore/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPatientRoutes registers patient account and care endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.POST("/auth/register", hb.Patient.RegisterPatientHandler)
		api.POST("/auth/login", hb.Patient.AuthenticatePatientHandler)
		api.POST("/auth/forgot-password", hb.Patient.InitiatePatientPasswordResetHandler)
		api.POST("/auth/reset-password", hb.Patient.CompletePatientPasswordResetHandler)

		// Protected routes (require a patient token).
		api.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
		api.POST("/auth/logout", hb.Patient.RevokePatientTokenHandler)
		api.GET("/me", hb.Patient.GetPatientProfileHandler)
		api.PUT("/me", hb.Patient.UpdatePatientHandler)
		api.DELETE("/me", hb.Patient.DeletePatientHandler)
		api.PUT("/me/password", hb.Patient.UpdatePatientPasswordHandler)
		api.PUT("/me/fcm-token", hb.Patient.UpdatePatientFCMTokenHandler)

		api.POST("/me/appointments", hb.Appointment.BookAppointmentHandler)
		api.GET("/me/appointments", hb.Appointment.ListPatientAppointmentsHandler)
		api.DELETE("/me/appointments/:id", hb.Appointment.CancelAppointmentHandler)

		api.GET("/me/prescriptions", hb.Prescription.ListPatientPrescriptionsHandler)
		api.GET("/me/prescriptions/:id", hb.Prescription.GetPrescriptionHandler)

		api.GET("/me/bills", hb.Billing.ListPatientBillsHandler)
		api.GET("/me/bills/:id", hb.Billing.GetBillHandler)
		api.POST("/me/bills/:id/pay", hb.Billing.PayBillHandler)
	}
}

// RegisterDoctorRoutes registers doctor endpoints. The directory and slot
// listing are public so patients can browse before booking.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.POST("/auth/register", hb.Doctor.RegisterDoctorHandler)
		api.POST("/auth/login", hb.Doctor.AuthenticateDoctorHandler)
		api.POST("/auth/forgot-password", hb.Doctor.InitiateDoctorPasswordResetHandler)
		api.POST("/auth/reset-password", hb.Doctor.CompleteDoctorPasswordResetHandler)

		api.GET("", hb.Doctor.ListDoctorsHandler)
		api.GET("/id/:id", hb.Doctor.GetDoctorHandler)
		api.GET("/id/:id/slots", hb.Schedule.GetDoctorSlotsHandler)

		// Protected routes (require a doctor token).
		protected := api.Group("")
		protected.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		protected.POST("/auth/logout", hb.Doctor.RevokeDoctorTokenHandler)
		protected.GET("/me", hb.Doctor.GetDoctorProfileHandler)
		protected.PUT("/me", hb.Doctor.UpdateDoctorHandler)
		protected.PUT("/me/password", hb.Doctor.UpdateDoctorPasswordHandler)
		protected.PUT("/me/fcm-token", hb.Doctor.UpdateDoctorFCMTokenHandler)

		protected.GET("/me/schedule", hb.Schedule.GetScheduleHandler)
		protected.PUT("/me/availability", hb.Schedule.UpdateAvailabilityHandler)
		protected.POST("/me/slots/generate", hb.Schedule.GenerateSlotsHandler)
		protected.GET("/me/slots", hb.Schedule.GetOwnSlotsHandler)
		protected.DELETE("/me/slots/:slotId", hb.Schedule.DeleteSlotHandler)

		protected.GET("/me/appointments", hb.Appointment.ListDoctorAppointmentsHandler)
		protected.PUT("/me/appointments/:id/status", hb.Appointment.UpdateAppointmentStatusHandler)
		protected.DELETE("/me/appointments/:id", hb.Appointment.CancelAppointmentHandler)

		protected.POST("/me/prescriptions", hb.Prescription.CreatePrescriptionHandler)
		protected.GET("/me/prescriptions", hb.Prescription.ListDoctorPrescriptionsHandler)

		protected.POST("/me/bills", hb.Billing.CreateBillHandler)
		protected.GET("/me/bills", hb.Billing.ListDoctorBillsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for hospital administration.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/auth/login", hb.Admin.AdminLoginHandler)

		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/dashboard", hb.Admin.DashboardHandler)
		adminGroup.GET("/doctors", hb.Admin.ListAllDoctorsHandler)
		adminGroup.GET("/patients", hb.Admin.ListAllPatientsHandler)
		adminGroup.PUT("/doctors/:id/approve", hb.Admin.ApproveDoctorHandler)
		adminGroup.PUT("/doctors/:id/revoke", hb.Admin.RevokeDoctorApprovalHandler)
		adminGroup.DELETE("/doctors/:id", hb.Admin.DeleteDoctorHandler)
		adminGroup.DELETE("/patients/:id", hb.Admin.DeletePatientAccountHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint exposing the latest
// dependency snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "MediCore is up",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterPatientRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
