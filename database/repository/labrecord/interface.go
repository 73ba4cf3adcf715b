// File: database/repository/labrecord/interface.go
package labrecordRepo

import (
	"context"

	"medibook/config"
	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// LabRecordRepository is the persistence boundary for lab test requests.
type LabRecordRepository interface {
	Create(ctx context.Context, request *models.LabRequest) error
	GetByID(ctx context.Context, id string) (*models.LabRequest, error)
	ListByStatus(ctx context.Context, status string) ([]models.LabRequest, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.LabRequest, error)
	Update(ctx context.Context, request *models.LabRequest) error
}

type mongoLabRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoLabRecordRepo constructs a new MongoDB LabRecordRepository.
func NewMongoLabRecordRepo() LabRecordRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoLabRecordRepo{
		coll: db.Collection("labrequests"),
	}
}
