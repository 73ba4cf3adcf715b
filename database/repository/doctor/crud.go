// File: database/repository/doctor/crud.go
package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medibook/models"
)

func (r *mongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	doctor.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		return err
	}
	return nil
}

func (r *mongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *mongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *mongoDoctorRepo) UpdateWithDocument(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoDoctorRepo) Search(ctx context.Context, query string) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		regex := primitive.Regex{Pattern: query, Options: "i"}
		filter = bson.M{"$or": []bson.M{
			{"name": regex},
			{"specialties": regex},
		}}
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("error decoding doctors: %w", err)
	}
	return doctors, nil
}

// EnsureIndexes creates the unique email index on the doctors collection.
func (r *mongoDoctorRepo) EnsureIndexes() error {
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
		return fmt.Errorf("failed to create doctor indexes: %w", err)
	}
	return nil
}
