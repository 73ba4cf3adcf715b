// File: database/repository/appointment/crud.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/models"
)

func (r *mongoAppointmentRepo) CreateMany(ctx context.Context, slots []models.Appointment) ([]models.Appointment, int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	docs := make([]interface{}, len(slots))
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.New().String()
		}
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		docs[i] = slots[i]
	}

	// Unordered so a duplicate-key collision on the unique (doctorId, date,
	// time) index does not abort the remaining inserts. Collisions happen when
	// two generation requests race past the existence check; the index is the
	// correctness backstop and colliding rows are counted as skipped.
	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) && allDuplicateKey(bwe) {
			failed := make(map[int]struct{}, len(bwe.WriteErrors))
			for _, we := range bwe.WriteErrors {
				failed[we.Index] = struct{}{}
			}
			created := make([]models.Appointment, 0, len(slots)-len(failed))
			for i, slot := range slots {
				if _, dup := failed[i]; !dup {
					created = append(created, slot)
				}
			}
			return created, len(failed), nil
		}
		return nil, 0, err
	}
	return slots, 0, nil
}

func allDuplicateKey(bwe mongo.BulkWriteException) bool {
	if len(bwe.WriteErrors) == 0 {
		return false
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != 11000 {
			return false
		}
	}
	return true
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": appointmentID, "doctorId": doctorID}
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) DeleteIfAvailable(ctx context.Context, appointmentID, doctorID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The status predicate makes the delete race-safe against a concurrent
	// booking: a slot that just got confirmed no longer matches.
	filter := bson.M{
		"id":       appointmentID,
		"doctorId": doctorID,
		"status":   models.StatusAvailable,
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
