// File: database/repository/labrecord/crud.go
package labrecordRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/models"
)

func (r *mongoLabRecordRepo) Create(ctx context.Context, request *models.LabRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.RequestedAt.IsZero() {
		request.RequestedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, request); err != nil {
		return err
	}
	return nil
}

func (r *mongoLabRecordRepo) GetByID(ctx context.Context, id string) (*models.LabRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var request models.LabRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *mongoLabRecordRepo) ListByStatus(ctx context.Context, status string) ([]models.LabRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	return r.list(ctx, filter)
}

func (r *mongoLabRecordRepo) ListByPatient(ctx context.Context, patientID string) ([]models.LabRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.list(ctx, bson.M{"patientId": patientID})
}

func (r *mongoLabRecordRepo) list(ctx context.Context, filter bson.M) ([]models.LabRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requestedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lab requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LabRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error decoding lab requests: %w", err)
	}
	return requests, nil
}

func (r *mongoLabRecordRepo) Update(ctx context.Context, request *models.LabRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": request.ID}, request)
	if err != nil {
		return fmt.Errorf("failed to update lab request: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
