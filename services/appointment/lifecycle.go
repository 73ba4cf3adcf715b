package appointment

import (
	"context"
	"errors"

	"medibook/models"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultAppointmentService) Book(ctx context.Context, appointmentID, doctorID, patientID, consultationType string, fee float64) (*models.Appointment, error) {
	logger := utils.GetLogger()

	doctor, err := s.DoctorRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, newError(CodeNotFound, "doctor not found")
		}
		return nil, newError(CodeStorageError, "failed to load doctor: %v", err)
	}

	published, ok := doctor.ConsultationFees.FeeFor(consultationType)
	if !ok {
		return nil, newError(CodeInvalidConsultationType, "unsupported consultation type %q", consultationType)
	}
	if fee != published {
		return nil, newError(CodeFeeMismatch, "provided fee does not match the doctor's published fee")
	}

	appt, err := s.Repo.ConfirmIfAvailable(ctx, appointmentID, doctorID, patientID, consultationType, published)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a missing slot from one another patient won.
			if _, lookupErr := s.Repo.GetByID(ctx, appointmentID, doctorID); errors.Is(lookupErr, mongo.ErrNoDocuments) {
				return nil, newError(CodeSlotUnavailable, "appointment slot not found")
			}
			return nil, newError(CodeSlotUnavailable, "appointment slot is no longer available")
		}
		return nil, newError(CodeStorageError, "failed to book appointment: %v", err)
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, *appt); err != nil {
			logger.Warn("failed to schedule appointment reminder",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}

	return appt, nil
}

func (s *DefaultAppointmentService) Cancel(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error) {
	// The status predicate lives in the update filter, so a slot the sweep
	// just completed cannot be flipped back to cancelled.
	appt, err := s.Repo.CancelIfConfirmed(ctx, appointmentID, doctorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, lookupErr := s.Repo.GetByID(ctx, appointmentID, doctorID); errors.Is(lookupErr, mongo.ErrNoDocuments) {
				return nil, newError(CodeNotFound, "appointment not found")
			}
			return nil, newError(CodeNotBooked, "only confirmed appointments can be cancelled")
		}
		return nil, newError(CodeStorageError, "failed to cancel appointment: %v", err)
	}

	// PatientID, type and price are intentionally left on the cancelled record.
	return appt, nil
}

func (s *DefaultAppointmentService) Delete(ctx context.Context, appointmentID, doctorID string) error {
	if err := s.Repo.DeleteIfAvailable(ctx, appointmentID, doctorID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, lookupErr := s.Repo.GetByID(ctx, appointmentID, doctorID); errors.Is(lookupErr, mongo.ErrNoDocuments) {
				return newError(CodeNotFound, "appointment not found")
			}
			return newError(CodeCannotDeleteBooked, "only available appointment slots can be deleted")
		}
		return newError(CodeStorageError, "failed to delete appointment: %v", err)
	}
	return nil
}

func (s *DefaultAppointmentService) Complete(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error) {
	appt, err := s.Repo.CompleteIfConfirmed(ctx, appointmentID, doctorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, lookupErr := s.Repo.GetByID(ctx, appointmentID, doctorID); errors.Is(lookupErr, mongo.ErrNoDocuments) {
				return nil, newError(CodeNotFound, "appointment not found")
			}
			return nil, newError(CodeNotBooked, "only confirmed appointments can be completed")
		}
		return nil, newError(CodeStorageError, "failed to complete appointment: %v", err)
	}
	return appt, nil
}
