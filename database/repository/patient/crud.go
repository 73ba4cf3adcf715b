// File: database/repository/patient/crud.go
package patientRepo

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

func (r *mongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, patient); err != nil {
		return err
	}
	return nil
}

func (r *mongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *mongoPatientRepo) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *mongoPatientRepo) UpdateWithDocument(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// EnsureIndexes creates the unique email index on the patients collection.
func (r *mongoPatientRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create patient indexes: %w", err)
	}
	return nil
}
