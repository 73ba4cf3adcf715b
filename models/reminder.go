package models

// ReminderPayload is the task payload queued when a booking is confirmed.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	DoctorID      string `json:"doctorId"`
	PatientID     string `json:"patientId"`
	StartsAt      string `json:"startsAt"`
}
