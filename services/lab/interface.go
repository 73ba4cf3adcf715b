package lab

import (
	"context"

	labrecordRepo "medibook/database/repository/labrecord"
	"medibook/models"
)

// LabService manages the lab assistant workflow: doctors order tests, the lab
// assistant works the queue and files results.
type LabService interface {
	Login(ctx context.Context, email, password string) (string, error)
	CreateRequest(ctx context.Context, doctorID string, req models.LabRequestCreate) (*models.LabRequest, error)
	ListRequests(ctx context.Context, status string) ([]models.LabRequest, error)
	UpdateRequest(ctx context.Context, requestID string, req models.LabRequestUpdate) (*models.LabRequest, error)
}

// DefaultLabService is the production implementation. Credentials for the lab
// assistant portal come from configuration, not the database.
type DefaultLabService struct {
	Repo labrecordRepo.LabRecordRepository
}
