package routes

import (
	"medibook/handlers"
	"medibook/middleware"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDoctorRoutes registers doctor account and profile endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctor")
	{
		api.POST("/register", hb.RegisterDoctorHandler)
		api.POST("/login", hb.LoginDoctorHandler)
		api.GET("/search", hb.SearchDoctorsHandler)
		api.GET("/id/:id", hb.GetDoctorByIDHandler)
		api.GET("/:id/appointments", hb.DoctorAvailabilityHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		api.GET("/profile", hb.DoctorProfileHandler)
		api.PUT("/profile", hb.UpdateDoctorProfileHandler)
		api.PUT("/password", hb.ChangeDoctorPasswordHandler)
	}
}

// RegisterPatientRoutes registers patient account and profile endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patient")
	{
		api.POST("/register", hb.RegisterPatientHandler)
		api.POST("/login", hb.LoginPatientHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthPatientMiddleware(hb.PatientRepo))
		api.GET("/profile", hb.PatientProfileHandler)
		api.PUT("/profile", hb.UpdatePatientProfileHandler)
		api.PUT("/password", hb.ChangePatientPasswordHandler)
		api.GET("/lab-records", hb.PatientLabRecordsHandler)
	}
}

// RegisterAppointmentRoutes sets up the endpoints for the scheduling engine.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointment")
	{
		// Patient-side booking.
		api.POST("/book", middleware.JWTAuthPatientMiddleware(hb.PatientRepo), hb.BookHandler)

		// Doctor-side slot management.
		doctor := api.Group("")
		doctor.Use(middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo))
		doctor.POST("/schedule", hb.ScheduleHandler)
		doctor.GET("/available", hb.GetAvailableHandler)
		doctor.GET("/confirmed", hb.GetConfirmedHandler)
		doctor.DELETE("/:id", hb.DeleteSlotHandler)
		doctor.PUT("/:id/cancel", hb.CancelSlotHandler)
		doctor.PUT("/:id/consultation", hb.ConsultationHandler)
		doctor.PUT("/:id/complete", hb.CompleteHandler)
	}
}

// RegisterLabRoutes sets up endpoints for lab workflow operations.
func RegisterLabRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/lab")
	{
		api.POST("/login", hb.LabLoginHandler)

		// Doctors raise lab requests for their patients.
		api.POST("/requests", middleware.JWTAuthDoctorMiddleware(hb.DoctorRepo), hb.CreateLabRequestHandler)

		// Lab assistant workflow.
		assistant := api.Group("")
		assistant.Use(middleware.JWTAuthLabMiddleware())
		assistant.GET("/requests", hb.ListLabRequestsHandler)
		assistant.PUT("/requests/:id", hb.UpdateLabRequestHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Medibook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDoctorRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterLabRoutes(r, hb)
	RegisterHealthRoute(r)
}
