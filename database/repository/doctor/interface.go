// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DoctorRepository is the persistence boundary for the doctor directory.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	UpdateWithDocument(ctx context.Context, id string, fields bson.M) error
	Search(ctx context.Context, query string) ([]models.Doctor, error)
	EnsureIndexes() error
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoDoctorRepo{
		coll: db.Collection("doctors"),
	}
}
