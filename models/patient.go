package models

import "time"

// Patient represents a registered patient.
type Patient struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	Age          int       `bson:"age" json:"age"`
	Phone        string    `bson:"phone" json:"phone"`
	Gender       string    `bson:"gender" json:"gender"`
	Address      string    `bson:"address" json:"address"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PatientRegistrationRequest is the payload for patient signup.
type PatientRegistrationRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Age      int    `json:"age" binding:"required,min=0,max=120"`
	Phone    string `json:"phone" binding:"required,min=10"`
	Gender   string `json:"gender" binding:"required,oneof=male female other"`
	Address  string `json:"address" binding:"required"`
}

// PatientUpdateRequest is the payload for partial profile updates.
type PatientUpdateRequest struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
