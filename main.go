// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/cron"
	"medibook/database"
	appointmentRepo "medibook/database/repository/appointment"
	doctorRepoPkg "medibook/database/repository/doctor"
	labrecordRepo "medibook/database/repository/labrecord"
	patientRepoPkg "medibook/database/repository/patient"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/appointment"
	"medibook/services/doctor"
	"medibook/services/lab"
	"medibook/services/patient"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	docRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patRepo := patientRepoPkg.NewMongoPatientRepo()
	labRepo := labrecordRepo.NewMongoLabRecordRepo()

	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}
	if err := docRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure doctor indexes: %v", err)
	}
	if err := patRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure patient indexes: %v", err)
	}

	// Background worker for reminders and auto-completion.
	cron.InitReminderWorker(apptRepo)
	reminderQueue := cron.NewReminderQueue()

	// services.
	doctorService := &doctor.DefaultDoctorService{
		Repo: docRepo,
	}
	patientService := &patient.DefaultPatientService{
		Repo:    patRepo,
		LabRepo: labRepo,
	}
	labService := &lab.DefaultLabService{
		Repo: labRepo,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:       apptRepo,
		DoctorRepo: docRepo,
		Reminders:  reminderQueue,
	}

	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	labHandler := handlers.NewLabHandler(labService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		DoctorRepo:  docRepo,
		PatientRepo: patRepo,

		// Doctor endpoints.
		RegisterDoctorHandler:       doctorHandler.RegisterHandler,
		LoginDoctorHandler:          doctorHandler.LoginHandler,
		DoctorProfileHandler:        doctorHandler.ProfileHandler,
		UpdateDoctorProfileHandler:  doctorHandler.UpdateProfileHandler,
		ChangeDoctorPasswordHandler: doctorHandler.ChangePasswordHandler,
		SearchDoctorsHandler:        doctorHandler.SearchHandler,
		GetDoctorByIDHandler:        doctorHandler.GetByIDHandler,
		DoctorAvailabilityHandler:   appointmentHandler.DoctorAvailabilityHandler,
		CreateLabRequestHandler:     labHandler.CreateRequestHandler,

		// Patient endpoints.
		RegisterPatientHandler:       patientHandler.RegisterHandler,
		LoginPatientHandler:          patientHandler.LoginHandler,
		PatientProfileHandler:        patientHandler.ProfileHandler,
		UpdatePatientProfileHandler:  patientHandler.UpdateProfileHandler,
		ChangePatientPasswordHandler: patientHandler.ChangePasswordHandler,
		PatientLabRecordsHandler:     patientHandler.LabRecordsHandler,

		// Appointment endpoints.
		ScheduleHandler:     appointmentHandler.ScheduleHandler,
		GetAvailableHandler: appointmentHandler.GetAvailableHandler,
		GetConfirmedHandler: appointmentHandler.GetConfirmedHandler,
		DeleteSlotHandler:   appointmentHandler.DeleteHandler,
		CancelSlotHandler:   appointmentHandler.CancelHandler,
		BookHandler:         appointmentHandler.BookHandler,
		ConsultationHandler: appointmentHandler.ConsultationHandler,
		CompleteHandler:     appointmentHandler.CompleteHandler,

		// Lab assistant endpoints.
		LabLoginHandler:         labHandler.LoginHandler,
		ListLabRequestsHandler:  labHandler.ListRequestsHandler,
		UpdateLabRequestHandler: labHandler.UpdateRequestHandler,
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
