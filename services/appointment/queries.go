package appointment

import (
	"context"
	"time"

	"medibook/models"
)

const defaultPageSize = 50

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// ListAvailable returns the doctor's open slots from the given date onward.
// Dates earlier than today are clamped so past slots never surface.
func (s *DefaultAppointmentService) ListAvailable(ctx context.Context, doctorID string, from time.Time, page, pageSize int) ([]models.Appointment, error) {
	page, pageSize = normalizePaging(page, pageSize)

	today := todayUTC()
	if from.Before(today) {
		from = today
	}

	appts, err := s.Repo.ListByStatus(ctx, doctorID, models.StatusAvailable, &from, page, pageSize)
	if err != nil {
		return nil, newError(CodeStorageError, "failed to list available appointments: %v", err)
	}
	return appts, nil
}

func (s *DefaultAppointmentService) ListConfirmed(ctx context.Context, doctorID string, page, pageSize int) ([]models.Appointment, error) {
	page, pageSize = normalizePaging(page, pageSize)

	appts, err := s.Repo.ListByStatus(ctx, doctorID, models.StatusConfirmed, nil, page, pageSize)
	if err != nil {
		return nil, newError(CodeStorageError, "failed to list confirmed appointments: %v", err)
	}
	return appts, nil
}

// ListUpcoming returns the doctor's confirmed appointments from today onward.
func (s *DefaultAppointmentService) ListUpcoming(ctx context.Context, doctorID string, page, pageSize int) ([]models.Appointment, error) {
	page, pageSize = normalizePaging(page, pageSize)

	from := todayUTC()
	appts, err := s.Repo.ListByStatus(ctx, doctorID, models.StatusConfirmed, &from, page, pageSize)
	if err != nil {
		return nil, newError(CodeStorageError, "failed to list upcoming appointments: %v", err)
	}
	return appts, nil
}
