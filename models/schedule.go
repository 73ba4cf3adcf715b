package models

// ScheduleRequest is the payload for bulk slot generation. Times are 24-hour
// "HH:MM" strings; dates are "YYYY-MM-DD".
type ScheduleRequest struct {
	DailyWorkingStartTime  string  `json:"dailyWorkingStartTime" binding:"required"`
	DailyWorkingEndTime    string  `json:"dailyWorkingEndTime" binding:"required"`
	NumberOfAppointments   int     `json:"numberOfAppointments" binding:"required"`
	AverageAppointmentTime float64 `json:"averageAppointmentTime" binding:"required"` // minutes
	StartDate              string  `json:"startDate" binding:"required"`
	EndDate                string  `json:"endDate" binding:"required"`
}

// ScheduleResult reports what a generation run produced.
type ScheduleResult struct {
	Created           []Appointment `json:"created"`
	SkippedDuplicates int           `json:"skippedDuplicates"`
}

// BookingRequest is the payload a patient submits to book a slot.
type BookingRequest struct {
	AppointmentID    string  `json:"appointmentId" binding:"required"`
	DoctorID         string  `json:"doctorId" binding:"required"`
	ConsultationType string  `json:"consultationType" binding:"required"`
	Fees             float64 `json:"fees" binding:"required"`
}
