package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"medibook/models"
	"medibook/services/appointment"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes slot generation and the slot lifecycle over HTTP.
type AppointmentHandler struct {
	Service appointment.AppointmentService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

func statusForError(err error) int {
	var se *appointment.Error
	if errors.As(err, &se) {
		switch se.Code {
		case appointment.CodeInvalidConfig, appointment.CodePastDate,
			appointment.CodeFeeMismatch, appointment.CodeInvalidConsultationType:
			return http.StatusBadRequest
		case appointment.CodeNotFound:
			return http.StatusNotFound
		case appointment.CodeSlotUnavailable, appointment.CodeNotBooked,
			appointment.CodeCannotDeleteBooked:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

func doctorIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("doctorID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Doctor not authenticated"})
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Invalid doctor ID in context"})
		return "", false
	}
	return id, true
}

func pagingFromQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	return page, pageSize
}

// ScheduleHandler handles POST /api/appointment/schedule.
func (h *AppointmentHandler) ScheduleHandler(c *gin.Context) {
	logger := utils.GetLogger()

	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid schedule request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	result, err := h.Service.GenerateSlots(c.Request.Context(), doctorID, req)
	if err != nil {
		logger.Error("Failed to generate appointment slots", zap.Error(err))
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}

	message := "Appointments created successfully"
	if result.SkippedDuplicates > 0 {
		message += fmt.Sprintf(" (Skipped %d duplicate slots)", result.SkippedDuplicates)
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": result})
}

// GetAvailableHandler handles GET /api/appointment/available.
func (h *AppointmentHandler) GetAvailableHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	var from time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid from date"})
			return
		}
		from = parsed
	}
	page, pageSize := pagingFromQuery(c)

	appts, err := h.Service.ListAvailable(c.Request.Context(), doctorID, from, page, pageSize)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Available appointments fetched", "data": appts})
}

// GetConfirmedHandler handles GET /api/appointment/confirmed.
func (h *AppointmentHandler) GetConfirmedHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	page, pageSize := pagingFromQuery(c)

	appts, err := h.Service.ListConfirmed(c.Request.Context(), doctorID, page, pageSize)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Confirmed appointments fetched", "data": appts})
}

// DeleteHandler handles DELETE /api/appointment/:id.
func (h *AppointmentHandler) DeleteHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("id")

	if err := h.Service.Delete(c.Request.Context(), appointmentID, doctorID); err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment slot deleted"})
}

// CancelHandler handles PUT /api/appointment/:id/cancel.
func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("id")

	appt, err := h.Service.Cancel(c.Request.Context(), appointmentID, doctorID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment cancelled", "data": appt})
}

// BookHandler handles POST /api/appointment/book (patient side).
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	logger := utils.GetLogger()

	patientIDValue, exists := c.Get("patientID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Patient not authenticated"})
		return
	}
	patientID, _ := patientIDValue.(string)

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid booking request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), req.AppointmentID, req.DoctorID, patientID, req.ConsultationType, req.Fees)
	if err != nil {
		logger.Warn("Booking rejected", zap.String("appointmentID", req.AppointmentID), zap.Error(err))
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment booked successfully", "data": appt})
}

// ConsultationHandler handles PUT /api/appointment/:id/consultation.
func (h *AppointmentHandler) ConsultationHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("id")

	var details models.ConsultationDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "details": err.Error()})
		return
	}

	appt, err := h.Service.AttachConsultation(c.Request.Context(), appointmentID, doctorID, details)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Consultation details saved", "data": appt})
}

// CompleteHandler handles PUT /api/appointment/:id/complete.
func (h *AppointmentHandler) CompleteHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("id")

	appt, err := h.Service.Complete(c.Request.Context(), appointmentID, doctorID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment completed", "data": appt})
}

// DoctorAvailabilityHandler handles GET /api/doctor/:id/appointments — the
// public availability listing patients browse before booking.
func (h *AppointmentHandler) DoctorAvailabilityHandler(c *gin.Context) {
	doctorID := c.Param("id")
	if doctorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing doctor ID"})
		return
	}
	page, pageSize := pagingFromQuery(c)

	appts, err := h.Service.ListAvailable(c.Request.Context(), doctorID, time.Time{}, page, pageSize)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Available appointments fetched", "data": appts})
}
