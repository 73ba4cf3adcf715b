package handlers

import (
	doctorRepo "medibook/database/repository/doctor"
	patientRepo "medibook/database/repository/patient"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers and the repositories the auth
// middleware needs, so route registration takes a single argument.
type HandlerBundle struct {
	DoctorRepo  doctorRepo.DoctorRepository
	PatientRepo patientRepo.PatientRepository

	// Doctor endpoints.
	RegisterDoctorHandler       gin.HandlerFunc
	LoginDoctorHandler          gin.HandlerFunc
	DoctorProfileHandler        gin.HandlerFunc
	UpdateDoctorProfileHandler  gin.HandlerFunc
	ChangeDoctorPasswordHandler gin.HandlerFunc
	SearchDoctorsHandler        gin.HandlerFunc
	GetDoctorByIDHandler        gin.HandlerFunc
	DoctorAvailabilityHandler   gin.HandlerFunc
	CreateLabRequestHandler     gin.HandlerFunc

	// Patient endpoints.
	RegisterPatientHandler       gin.HandlerFunc
	LoginPatientHandler          gin.HandlerFunc
	PatientProfileHandler        gin.HandlerFunc
	UpdatePatientProfileHandler  gin.HandlerFunc
	ChangePatientPasswordHandler gin.HandlerFunc
	PatientLabRecordsHandler     gin.HandlerFunc

	// Appointment endpoints.
	ScheduleHandler     gin.HandlerFunc
	GetAvailableHandler gin.HandlerFunc
	GetConfirmedHandler gin.HandlerFunc
	DeleteSlotHandler   gin.HandlerFunc
	CancelSlotHandler   gin.HandlerFunc
	BookHandler         gin.HandlerFunc
	ConsultationHandler gin.HandlerFunc
	CompleteHandler     gin.HandlerFunc

	// Lab assistant endpoints.
	LabLoginHandler         gin.HandlerFunc
	ListLabRequestsHandler  gin.HandlerFunc
	UpdateLabRequestHandler gin.HandlerFunc
}
