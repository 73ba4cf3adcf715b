package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/models"
	"medibook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

func (s *DefaultPatientService) Register(ctx context.Context, req models.PatientRegistrationRequest) (*AuthResponse, error) {
	logger := utils.GetLogger()

	if _, err := s.Repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing patient: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	p := &models.Patient{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Age:          req.Age,
		Phone:        req.Phone,
		Gender:       req.Gender,
		Address:      req.Address,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	token, err := utils.GenerateToken(p.ID, p.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	utils.CacheAuthToken("patient", p.ID, token)

	logger.Info("patient registered", zap.String("patientID", p.ID))
	p.PasswordHash = ""
	return &AuthResponse{Token: token, Patient: *p}, nil
}

func (s *DefaultPatientService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	p, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(p.ID, p.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	utils.CacheAuthToken("patient", p.ID, token)

	p.PasswordHash = ""
	return &AuthResponse{Token: token, Patient: *p}, nil
}

func (s *DefaultPatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("patient not found")
		}
		return nil, err
	}
	p.PasswordHash = ""
	return p, nil
}

func (s *DefaultPatientService) UpdateProfile(ctx context.Context, id string, req models.PatientUpdateRequest) (*models.Patient, error) {
	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Age != 0 {
		fields["age"] = req.Age
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	if err := s.Repo.UpdateWithDocument(ctx, id, fields); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("patient not found")
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *DefaultPatientService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("patient not found")
		}
		return fmt.Errorf("failed to load patient: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	return s.Repo.UpdateWithDocument(ctx, id, bson.M{"password": string(hash)})
}

// LabRecords returns the patient's lab requests, newest first.
func (s *DefaultPatientService) LabRecords(ctx context.Context, patientID string) ([]models.LabRequest, error) {
	return s.LabRepo.ListByPatient(ctx, patientID)
}
