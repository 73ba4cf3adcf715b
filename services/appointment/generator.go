package appointment

import (
	"context"
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// parseClock converts a 24-hour "HH:MM" string to an offset from midnight.
func parseClock(value string) (time.Duration, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func formatClock(offset time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(offset.Hours()), int(offset.Minutes())%60)
}

// todayUTC returns the current UTC calendar date at midnight. All slot dates
// are computed and compared in UTC so the grid is unambiguous across DST.
func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *DefaultAppointmentService) GenerateSlots(ctx context.Context, doctorID string, req models.ScheduleRequest) (*models.ScheduleResult, error) {
	logger := utils.GetLogger()

	startOffset, err := parseClock(req.DailyWorkingStartTime)
	if err != nil {
		return nil, newError(CodeInvalidConfig, "invalid dailyWorkingStartTime %q", req.DailyWorkingStartTime)
	}
	endOffset, err := parseClock(req.DailyWorkingEndTime)
	if err != nil {
		return nil, newError(CodeInvalidConfig, "invalid dailyWorkingEndTime %q", req.DailyWorkingEndTime)
	}
	if endOffset <= startOffset {
		return nil, newError(CodeInvalidConfig, "daily working end time must be after start time")
	}
	if req.NumberOfAppointments <= 0 {
		return nil, newError(CodeInvalidConfig, "numberOfAppointments must be positive")
	}
	if req.AverageAppointmentTime <= 0 {
		return nil, newError(CodeInvalidConfig, "averageAppointmentTime must be positive")
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, newError(CodeInvalidConfig, "invalid startDate %q", req.StartDate)
	}
	end, err := time.ParseInLocation(dateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, newError(CodeInvalidConfig, "invalid endDate %q", req.EndDate)
	}
	if start.After(end) {
		return nil, newError(CodeInvalidConfig, "startDate is after endDate")
	}
	if start.Before(todayUTC()) {
		return nil, newError(CodePastDate, "start date cannot be in the past")
	}

	slotDuration := time.Duration(req.AverageAppointmentTime * float64(time.Minute))
	// A tiny positive float can truncate to zero nanoseconds, which would
	// divide by zero below.
	if slotDuration <= 0 {
		return nil, newError(CodeInvalidConfig, "averageAppointmentTime is too small")
	}
	workingWindow := endOffset - startOffset

	// The requested count is a ceiling, further capped by how many
	// non-overlapping slots of the given duration fit in the working window.
	slotsPerDay := int(workingWindow / slotDuration)
	if req.NumberOfAppointments < slotsPerDay {
		slotsPerDay = req.NumberOfAppointments
	}
	if slotsPerDay <= 0 {
		return &models.ScheduleResult{}, nil
	}

	var staged []models.Appointment
	skipped := 0

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		existing, err := s.Repo.ExistingTimes(ctx, doctorID, day)
		if err != nil {
			return nil, newError(CodeStorageError, "failed to load existing slots: %v", err)
		}

		for i := 0; i < slotsPerDay; i++ {
			offset := startOffset + time.Duration(i)*slotDuration
			if offset > endOffset {
				break
			}
			candidate := formatClock(offset)
			if _, dup := existing[candidate]; dup {
				skipped++
				continue
			}
			staged = append(staged, models.Appointment{
				DoctorID: doctorID,
				Date:     day,
				Time:     candidate,
				Status:   models.StatusAvailable,
			})
		}
	}

	result := &models.ScheduleResult{SkippedDuplicates: skipped}
	if len(staged) > 0 {
		created, collided, err := s.Repo.CreateMany(ctx, staged)
		if err != nil {
			return nil, newError(CodeStorageError, "failed to persist appointment slots: %v", err)
		}
		result.Created = created
		result.SkippedDuplicates += collided
	}

	logger.Info("generated appointment slots",
		zap.String("doctorID", doctorID),
		zap.Int("created", len(result.Created)),
		zap.Int("skippedDuplicates", result.SkippedDuplicates),
	)
	return result, nil
}
