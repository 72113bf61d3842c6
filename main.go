package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicore/config"
	"medicore/cron"
	"medicore/database"
	"medicore/handlers"
	"medicore/routes"
	"medicore/services/admin"
	"medicore/services/appointment"
	"medicore/services/billing"
	"medicore/services/doctor"
	"medicore/services/notification"
	"medicore/services/patient"
	"medicore/services/prescription"
	"medicore/services/schedule"
	"medicore/utils"

	appointmentRepoPkg "medicore/database/repository/appointment"
	billingRepoPkg "medicore/database/repository/billing"
	doctorRepoPkg "medicore/database/repository/doctor"
	patientRepoPkg "medicore/database/repository/patient"
	prescriptionRepoPkg "medicore/database/repository/prescription"
	timeslotRepoPkg "medicore/database/repository/timeslot"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	if config.AppConfig.FirebaseCredentialsFile != "" {
		utils.FirebaseInit()
	} else {
		logger.Sugar().Warn("main: no Firebase credentials configured, push notifications disabled")
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	timeslotRepo := timeslotRepoPkg.NewMongoTimeSlotRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	prescriptionRepo := prescriptionRepoPkg.NewMongoPrescriptionRepo()
	billingRepo := billingRepoPkg.NewMongoBillingRepo()

	// asynq client for appointment reminders.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	// services.
	patientService := &patient.DefaultPatientService{Repo: patientRepo}
	doctorService := &doctor.DefaultDoctorService{Repo: doctorRepo}

	notificationService, err := notification.NewDefaultNotificationService(patientRepo, doctorRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	scheduleService := &schedule.DefaultScheduleService{
		Doctors: doctorRepo,
		Slots:   timeslotRepo,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Appointments: appointmentRepo,
		Slots:        timeslotRepo,
		Doctors:      doctorRepo,
		Notifier:     notificationService,
		AsynqClient:  asynqClient,
	}

	prescriptionService := &prescription.DefaultPrescriptionService{
		Prescriptions: prescriptionRepo,
		Appointments:  appointmentRepo,
		Notifier:      notificationService,
	}

	billingService := &billing.DefaultBillingService{
		Bills:        billingRepo,
		Appointments: appointmentRepo,
		Payments:     billing.NewPaymentHandler(logger),
		Notifier:     notificationService,
	}

	adminService := &admin.DefaultAdminService{
		Patients:     patientRepo,
		Doctors:      doctorRepo,
		Appointments: appointmentRepo,
		Bills:        billingRepo,
		Notifier:     notificationService,
	}

	// Background reminder worker.
	cron.InitReminderWorker(notificationService)

	// Periodic dependency health checks, surfaced on /health.
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetOTPCacheClient(),
	}, database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		PatientRepo: patientRepo,
		DoctorRepo:  doctorRepo,

		Patient:      &handlers.PatientHandler{PatientService: patientService},
		Doctor:       &handlers.DoctorHandler{DoctorService: doctorService},
		Schedule:     &handlers.ScheduleHandler{ScheduleService: scheduleService},
		Appointment:  &handlers.AppointmentHandler{AppointmentService: appointmentService},
		Prescription: &handlers.PrescriptionHandler{PrescriptionService: prescriptionService},
		Billing:      &handlers.BillingHandler{BillingService: billingService},
		Admin:        &handlers.AdminHandler{AdminService: adminService},
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
