package models

import "time"

// Lab request statuses.
const (
	LabStatusRequested = "requested"
	LabStatusPending   = "pending"
	LabStatusCompleted = "completed"
)

// LabTest is a single test entry embedded in a lab request.
type LabTest struct {
	TestName       string    `bson:"testName" json:"testName"`
	Result         string    `bson:"result,omitempty" json:"result,omitempty"`
	ReferenceRange string    `bson:"referenceRange,omitempty" json:"referenceRange,omitempty"`
	Remarks        string    `bson:"remarks,omitempty" json:"remarks,omitempty"`
	PerformedAt    time.Time `bson:"performedAt,omitempty" json:"performedAt,omitempty"`
	IsCritical     bool      `bson:"isCritical" json:"isCritical"`
}

// LabRequest groups the tests a doctor ordered for a patient's appointment.
type LabRequest struct {
	ID            string     `bson:"id" json:"id"`
	AppointmentID string     `bson:"appointmentId" json:"appointmentId"`
	DoctorID      string     `bson:"doctorId" json:"doctorId"`
	PatientID     string     `bson:"patientId" json:"patientId"`
	Tests         []LabTest  `bson:"tests" json:"tests"`
	Status        string     `bson:"status" json:"status"`
	RequestedAt   time.Time  `bson:"requestedAt" json:"requestedAt"`
	CompletedAt   *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// LabRequestCreate is the payload a doctor submits to order tests.
type LabRequestCreate struct {
	AppointmentID string    `json:"appointmentId" binding:"required"`
	PatientID     string    `json:"patientId" binding:"required"`
	Tests         []LabTest `json:"tests" binding:"required,min=1"`
}

// LabRequestUpdate is the payload the lab assistant submits with results.
type LabRequestUpdate struct {
	Status string    `json:"status" binding:"required,oneof=requested pending completed"`
	Tests  []LabTest `json:"tests"`
}
