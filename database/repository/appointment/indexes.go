// File: database/repository/appointment/indexes.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments collection.
// The unique (doctorId, appointmentDate, appointmentTime) index is what keeps
// concurrent generation runs from creating duplicate slots.
func (r *mongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "doctorId", Value: 1},
				{Key: "appointmentDate", Value: 1},
				{Key: "appointmentTime", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("unique_doctor_date_time"),
		},
		{
			Keys: bson.D{
				{Key: "doctorId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "appointmentDate", Value: 1},
			},
			Options: options.Index().SetName("doctor_status_date_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
