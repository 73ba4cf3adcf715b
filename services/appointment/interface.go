package appointment

import (
	"context"
	"time"

	appointmentRepo "medibook/database/repository/appointment"
	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
)

// AppointmentService owns slot generation and the slot lifecycle.
type AppointmentService interface {
	// GenerateSlots enumerates candidate slots for the doctor's working window
	// over the requested date range, skips ones that already exist, and
	// persists the rest as available.
	GenerateSlots(ctx context.Context, doctorID string, req models.ScheduleRequest) (*models.ScheduleResult, error)

	// Book transitions an available slot to confirmed for the patient,
	// validating the consultation type and fee against the doctor's published
	// pricing. Exactly one of two concurrent bookings for a slot succeeds.
	Book(ctx context.Context, appointmentID, doctorID, patientID, consultationType string, fee float64) (*models.Appointment, error)

	// Cancel transitions a booked slot to cancelled. The patient, type and
	// price remain on the record.
	Cancel(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error)

	// Delete permanently removes a slot that has never been booked.
	Delete(ctx context.Context, appointmentID, doctorID string) error

	// Complete transitions a confirmed slot to completed.
	Complete(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error)

	// AttachConsultation stores the doctor's consultation record on a booked slot.
	AttachConsultation(ctx context.Context, appointmentID, doctorID string, details models.ConsultationDetails) (*models.Appointment, error)

	ListAvailable(ctx context.Context, doctorID string, from time.Time, page, pageSize int) ([]models.Appointment, error)
	ListConfirmed(ctx context.Context, doctorID string, page, pageSize int) ([]models.Appointment, error)
	ListUpcoming(ctx context.Context, doctorID string, page, pageSize int) ([]models.Appointment, error)
}

// ReminderScheduler enqueues a reminder for a freshly confirmed appointment.
// Booking proceeds even when scheduling the reminder fails.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment) error
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo       appointmentRepo.AppointmentRepository
	DoctorRepo doctorRepo.DoctorRepository
	Reminders  ReminderScheduler
}
