package lab

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

const tokenTTL = 24 * time.Hour

func (s *DefaultLabService) Login(ctx context.Context, email, password string) (string, error) {
	cfgEmail := config.AppConfig.LabAssistantEmail
	cfgPassword := config.AppConfig.LabAssistantPassword
	if cfgEmail == "" || cfgPassword == "" {
		return "", fmt.Errorf("lab assistant portal is not configured")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(cfgEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfgPassword)) == 1
	if !emailOK || !passOK {
		return "", fmt.Errorf("invalid email or password")
	}

	return utils.GenerateToken(cfgEmail, cfgEmail, tokenTTL)
}

func (s *DefaultLabService) CreateRequest(ctx context.Context, doctorID string, req models.LabRequestCreate) (*models.LabRequest, error) {
	request := &models.LabRequest{
		AppointmentID: req.AppointmentID,
		DoctorID:      doctorID,
		PatientID:     req.PatientID,
		Tests:         req.Tests,
		Status:        models.LabStatusRequested,
	}
	if err := s.Repo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create lab request: %w", err)
	}
	return request, nil
}

func (s *DefaultLabService) ListRequests(ctx context.Context, status string) ([]models.LabRequest, error) {
	return s.Repo.ListByStatus(ctx, status)
}

func (s *DefaultLabService) UpdateRequest(ctx context.Context, requestID string, req models.LabRequestUpdate) (*models.LabRequest, error) {
	request, err := s.Repo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("lab request not found")
		}
		return nil, fmt.Errorf("failed to load lab request: %w", err)
	}

	request.Status = req.Status
	if req.Tests != nil {
		request.Tests = req.Tests
	}
	if req.Status == models.LabStatusCompleted && request.CompletedAt == nil {
		now := time.Now().UTC()
		request.CompletedAt = &now
	}

	if err := s.Repo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update lab request: %w", err)
	}
	return request, nil
}
