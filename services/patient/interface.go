package patient

import (
	"context"

	labrecordRepo "medibook/database/repository/labrecord"
	patientRepo "medibook/database/repository/patient"
	"medibook/models"
)

// AuthResponse carries the issued token alongside the patient's public profile.
type AuthResponse struct {
	Token   string         `json:"token"`
	Patient models.Patient `json:"patient"`
}

// PatientService manages the patient directory and patient authentication.
type PatientService interface {
	Register(ctx context.Context, req models.PatientRegistrationRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	UpdateProfile(ctx context.Context, id string, req models.PatientUpdateRequest) (*models.Patient, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
	LabRecords(ctx context.Context, patientID string) ([]models.LabRequest, error)
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo    patientRepo.PatientRepository
	LabRepo labrecordRepo.LabRecordRepository
}
