// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository is the persistence boundary for appointment slots.
// Not-found conditions surface as mongo.ErrNoDocuments; the service layer maps
// them onto its own error taxonomy.
type AppointmentRepository interface {
	// CreateMany batch-inserts staged slots. Inserts are unordered; rows that
	// collide with the unique (doctorId, date, time) index are dropped from the
	// returned slice and counted as duplicates instead of failing the batch.
	CreateMany(ctx context.Context, slots []models.Appointment) ([]models.Appointment, int, error)

	// ExistingTimes returns the set of "HH:MM" times already scheduled for the
	// doctor on the given day.
	ExistingTimes(ctx context.Context, doctorID string, date time.Time) (map[string]struct{}, error)

	GetByID(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error)

	// DeleteIfAvailable removes the slot only while it is still available, so
	// a booking that lands first is never deleted out from under the patient.
	DeleteIfAvailable(ctx context.Context, appointmentID, doctorID string) error

	// ConfirmIfAvailable atomically transitions the slot from available to
	// confirmed, setting the patient, type and price in the same update. It
	// returns mongo.ErrNoDocuments when the slot is missing or no longer
	// available, so two concurrent bookings cannot both succeed.
	ConfirmIfAvailable(ctx context.Context, appointmentID, doctorID, patientID, consultationType string, price float64) (*models.Appointment, error)

	// CompleteIfConfirmed atomically transitions confirmed -> completed.
	CompleteIfConfirmed(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error)

	// CancelIfConfirmed atomically transitions confirmed -> cancelled without
	// clearing the booking details.
	CancelIfConfirmed(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error)
	SetConsultationDetails(ctx context.Context, appointmentID, doctorID string, details models.ConsultationDetails) error

	// ListByStatus returns the doctor's slots with the given status, sorted by
	// date then time ascending. A non-nil from filters date >= from.
	ListByStatus(ctx context.Context, doctorID, status string, from *time.Time, page, pageSize int) ([]models.Appointment, error)

	// CompletePastConfirmed marks confirmed slots dated before cutoff as
	// completed and reports how many were swept.
	CompletePastConfirmed(ctx context.Context, cutoff time.Time) (int64, error)

	EnsureIndexes() error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}
