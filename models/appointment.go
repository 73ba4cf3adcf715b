package models

import "time"

// Appointment statuses.
const (
	StatusAvailable = "available"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Consultation types.
const (
	ConsultationOnline   = "online"
	ConsultationPhysical = "physical"
)

// Appointment represents one bookable slot for a doctor at a specific date and time.
// Date is truncated to UTC midnight; Time is a zero-padded 24-hour "HH:MM" string.
// PatientID, AppointmentType and Price stay unset until the slot is booked.
type Appointment struct {
	ID                  string               `bson:"id" json:"id"`
	DoctorID            string               `bson:"doctorId" json:"doctorId"`
	PatientID           string               `bson:"patientId,omitempty" json:"patientId,omitempty"`
	Date                time.Time            `bson:"appointmentDate" json:"appointmentDate"`
	Time                string               `bson:"appointmentTime" json:"appointmentTime"`
	Status              string               `bson:"status" json:"status"`
	AppointmentType     string               `bson:"appointmentType,omitempty" json:"appointmentType,omitempty"`
	Price               *float64             `bson:"price,omitempty" json:"price,omitempty"`
	ConsultationDetails *ConsultationDetails `bson:"consultationDetails,omitempty" json:"consultationDetails,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// StartsAt combines the slot's date and "HH:MM" time into an absolute UTC instant.
func (a Appointment) StartsAt() time.Time {
	t, err := time.Parse("15:04", a.Time)
	if err != nil {
		return a.Date
	}
	return a.Date.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

// ConsultationDetails is the doctor's record of a finished consultation.
type ConsultationDetails struct {
	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Medicines   []Medicine `bson:"medicines,omitempty" json:"medicines,omitempty"`
	Suggestions string     `bson:"suggestions,omitempty" json:"suggestions,omitempty"`
}

// Medicine is a single prescription line.
type Medicine struct {
	Name      string `bson:"name" json:"name"`
	Dosage    string `bson:"dosage,omitempty" json:"dosage,omitempty"`       // e.g., "500mg", "1 tablet"
	Frequency string `bson:"frequency,omitempty" json:"frequency,omitempty"` // e.g., "Twice a day"
	Duration  string `bson:"duration,omitempty" json:"duration,omitempty"`   // e.g., "5 days"
}
