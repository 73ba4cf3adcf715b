// File: database/repository/appointment/lifecycle.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/models"
)

func (r *mongoAppointmentRepo) ConfirmIfAvailable(ctx context.Context, appointmentID, doctorID, patientID, consultationType string, price float64) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The status predicate in the filter makes this a compare-and-swap: of two
	// racing bookings only one finds status=available, the other gets
	// ErrNoDocuments.
	filter := bson.M{
		"id":       appointmentID,
		"doctorId": doctorID,
		"status":   models.StatusAvailable,
	}
	update := bson.M{
		"$set": bson.M{
			"patientId":       patientID,
			"status":          models.StatusConfirmed,
			"appointmentType": consultationType,
			"price":           price,
			"updatedAt":       time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appt models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) CompleteIfConfirmed(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":       appointmentID,
		"doctorId": doctorID,
		"status":   models.StatusConfirmed,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.StatusCompleted,
			"updatedAt": time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appt models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) CancelIfConfirmed(ctx context.Context, appointmentID, doctorID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Booking details (patientId, type, price) stay on the cancelled record.
	filter := bson.M{
		"id":       appointmentID,
		"doctorId": doctorID,
		"status":   models.StatusConfirmed,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.StatusCancelled,
			"updatedAt": time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appt models.Appointment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) SetConsultationDetails(ctx context.Context, appointmentID, doctorID string, details models.ConsultationDetails) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": appointmentID, "doctorId": doctorID}
	update := bson.M{"$set": bson.M{"consultationDetails": details, "updatedAt": time.Now().UTC()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set consultation details: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAppointmentRepo) CompletePastConfirmed(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":          models.StatusConfirmed,
		"appointmentDate": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{"status": models.StatusCompleted, "updatedAt": time.Now().UTC()}}

	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep past confirmed appointments: %w", err)
	}
	return res.ModifiedCount, nil
}
