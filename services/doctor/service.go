package doctor

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

func (s *DefaultDoctorService) Register(ctx context.Context, req models.DoctorRegistrationRequest) (*AuthResponse, error) {
	logger := utils.GetLogger()

	if _, err := s.Repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("doctor with this email already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing doctor: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doc := &models.Doctor{
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     string(hash),
		Specialties:      req.Specialties,
		Qualifications:   req.Qualifications,
		Experience:       req.Experience,
		Age:              req.Age,
		ConsultationFees: req.ConsultationFees,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to register doctor: %w", err)
	}

	token, err := utils.GenerateToken(doc.ID, doc.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	utils.CacheAuthToken("doctor", doc.ID, token)

	logger.Info("doctor registered", zap.String("doctorID", doc.ID))
	doc.PasswordHash = ""
	return &AuthResponse{Token: token, Doctor: *doc}, nil
}

func (s *DefaultDoctorService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	doc, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(doc.ID, doc.Email, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	utils.CacheAuthToken("doctor", doc.ID, token)

	doc.PasswordHash = ""
	return &AuthResponse{Token: token, Doctor: *doc}, nil
}

func (s *DefaultDoctorService) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("doctor not found")
		}
		return nil, err
	}
	doc.PasswordHash = ""
	return doc, nil
}

// UpdateProfile applies a partial update. Password changes go through
// ChangePassword only.
func (s *DefaultDoctorService) UpdateProfile(ctx context.Context, id string, req models.DoctorUpdateRequest) (*models.Doctor, error) {
	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Specialties != nil {
		fields["specialties"] = req.Specialties
	}
	if req.Qualifications != "" {
		fields["qualifications"] = req.Qualifications
	}
	if req.Experience != 0 {
		fields["experience"] = req.Experience
	}
	if req.Age != 0 {
		fields["age"] = req.Age
	}
	if req.ConsultationFees != nil {
		fields["consultationFees"] = *req.ConsultationFees
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no updatable fields provided")
	}

	if err := s.Repo.UpdateWithDocument(ctx, id, fields); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("doctor not found")
		}
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *DefaultDoctorService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("doctor not found")
		}
		return fmt.Errorf("failed to load doctor: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	return s.Repo.UpdateWithDocument(ctx, id, bson.M{"password": string(hash)})
}

func (s *DefaultDoctorService) Search(ctx context.Context, query string) ([]models.Doctor, error) {
	doctors, err := s.Repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		doctors[i].PasswordHash = ""
	}
	return doctors, nil
}
