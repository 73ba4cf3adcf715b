// File: database/repository/patient/interface.go
package patientRepo

import (
	"context"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PatientRepository is the persistence boundary for the patient directory.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)
	UpdateWithDocument(ctx context.Context, id string, fields bson.M) error
	EnsureIndexes() error
}

type mongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo constructs a new MongoDB PatientRepository.
func NewMongoPatientRepo() PatientRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoPatientRepo{
		coll: db.Collection("patients"),
	}
}
