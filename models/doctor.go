package models

import "time"

// ConsultationFees holds the doctor's published fee per consultation type.
type ConsultationFees struct {
	Online   float64 `bson:"online" json:"online"`
	Physical float64 `bson:"physical" json:"physical"`
}

// FeeFor returns the published fee for the given consultation type.
func (f ConsultationFees) FeeFor(consultationType string) (float64, bool) {
	switch consultationType {
	case ConsultationOnline:
		return f.Online, true
	case ConsultationPhysical:
		return f.Physical, true
	}
	return 0, false
}

// Doctor represents a registered doctor.
type Doctor struct {
	ID               string           `bson:"id" json:"id"`
	Name             string           `bson:"name" json:"name"`
	Email            string           `bson:"email" json:"email"`
	PasswordHash     string           `bson:"password" json:"-"`
	Specialties      []string         `bson:"specialties" json:"specialties"`
	Qualifications   string           `bson:"qualifications,omitempty" json:"qualifications,omitempty"`
	Experience       int              `bson:"experience,omitempty" json:"experience,omitempty"`
	Age              int              `bson:"age,omitempty" json:"age,omitempty"`
	ConsultationFees ConsultationFees `bson:"consultationFees" json:"consultationFees"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
}

// DoctorRegistrationRequest is the payload for doctor signup.
type DoctorRegistrationRequest struct {
	Name             string           `json:"name" binding:"required"`
	Email            string           `json:"email" binding:"required,email"`
	Password         string           `json:"password" binding:"required,min=8"`
	Specialties      []string         `json:"specialties" binding:"required"`
	Qualifications   string           `json:"qualifications"`
	Experience       int              `json:"experience"`
	Age              int              `json:"age"`
	ConsultationFees ConsultationFees `json:"consultationFees" binding:"required"`
}

// DoctorUpdateRequest is the payload for partial profile updates. Password
// changes go through the dedicated change-password operation.
type DoctorUpdateRequest struct {
	Name             string            `json:"name"`
	Specialties      []string          `json:"specialties"`
	Qualifications   string            `json:"qualifications"`
	Experience       int               `json:"experience"`
	Age              int               `json:"age"`
	ConsultationFees *ConsultationFees `json:"consultationFees"`
}
