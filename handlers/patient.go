package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/patient"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler exposes patient registration, authentication and profile endpoints.
type PatientHandler struct {
	Service patient.PatientService
}

// NewPatientHandler constructs a PatientHandler.
func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Service: svc}
}

func patientIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("patientID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Invalid patient ID in context"})
		return "", false
	}
	return id, true
}

// RegisterHandler handles POST /api/patient/register.
func (h *PatientHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.PatientRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid patient registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "details": err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Patient registered successfully",
		"token":   resp.Token,
		"patient": resp.Patient,
	})
}

// LoginHandler handles POST /api/patient/login.
func (h *PatientHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed"})
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   resp.Token,
		"patient": resp.Patient,
	})
}

// ProfileHandler handles GET /api/patient/profile.
func (h *PatientHandler) ProfileHandler(c *gin.Context) {
	patientID, ok := patientIDFromContext(c)
	if !ok {
		return
	}

	p, err := h.Service.GetByID(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// UpdateProfileHandler handles PUT /api/patient/profile.
func (h *PatientHandler) UpdateProfileHandler(c *gin.Context) {
	patientID, ok := patientIDFromContext(c)
	if !ok {
		return
	}

	var req models.PatientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "details": err.Error()})
		return
	}

	p, err := h.Service.UpdateProfile(c.Request.Context(), patientID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// ChangePasswordHandler handles PUT /api/patient/password.
func (h *PatientHandler) ChangePasswordHandler(c *gin.Context) {
	patientID, ok := patientIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed"})
		return
	}

	if err := h.Service.ChangePassword(c.Request.Context(), patientID, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}

// LabRecordsHandler handles GET /api/patient/lab-records.
func (h *PatientHandler) LabRecordsHandler(c *gin.Context) {
	patientID, ok := patientIDFromContext(c)
	if !ok {
		return
	}

	records, err := h.Service.LabRecords(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch lab records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}
