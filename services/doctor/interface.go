package doctor

import (
	"context"

	doctorRepo "medibook/database/repository/doctor"
	"medibook/models"
)

// AuthResponse carries the issued token alongside the doctor's public profile.
type AuthResponse struct {
	Token  string        `json:"token"`
	Doctor models.Doctor `json:"doctor"`
}

// DoctorService manages the doctor directory and doctor authentication.
type DoctorService interface {
	Register(ctx context.Context, req models.DoctorRegistrationRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	UpdateProfile(ctx context.Context, id string, req models.DoctorUpdateRequest) (*models.Doctor, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
	Search(ctx context.Context, query string) ([]models.Doctor, error)
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}
