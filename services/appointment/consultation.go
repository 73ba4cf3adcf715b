package appointment

import (
	"context"
	"errors"

	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AttachConsultation stores the doctor's notes and prescriptions on a booked
// appointment. The slot must have been confirmed (or already completed).
func (s *DefaultAppointmentService) AttachConsultation(ctx context.Context, appointmentID, doctorID string, details models.ConsultationDetails) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, appointmentID, doctorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newError(CodeNotFound, "appointment not found")
		}
		return nil, newError(CodeStorageError, "failed to load appointment: %v", err)
	}
	if appt.Status != models.StatusConfirmed && appt.Status != models.StatusCompleted {
		return nil, newError(CodeNotBooked, "consultation details require a booked appointment")
	}

	if err := s.Repo.SetConsultationDetails(ctx, appointmentID, doctorID, details); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newError(CodeNotFound, "appointment not found")
		}
		return nil, newError(CodeStorageError, "failed to save consultation details: %v", err)
	}

	appt.ConsultationDetails = &details
	return appt, nil
}
