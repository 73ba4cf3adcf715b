// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/models"
)

func (r *mongoAppointmentRepo) ExistingTimes(ctx context.Context, doctorID string, date time.Time) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctorId": doctorID, "appointmentDate": date}
	opts := options.Find().SetProjection(bson.M{"appointmentTime": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduled times: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Time string `bson:"appointmentTime"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding scheduled times: %w", err)
	}

	times := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		times[row.Time] = struct{}{}
	}
	return times, nil
}

func (r *mongoAppointmentRepo) ListByStatus(ctx context.Context, doctorID, status string, from *time.Time, page, pageSize int) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"doctorId": doctorID, "status": status}
	if from != nil {
		filter["appointmentDate"] = bson.M{"$gte": *from}
	}

	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "appointmentDate", Value: 1}, {Key: "appointmentTime", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}
