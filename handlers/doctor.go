package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/doctor"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler exposes doctor registration, authentication and profile endpoints.
type DoctorHandler struct {
	Service doctor.DoctorService
}

// NewDoctorHandler constructs a DoctorHandler.
func NewDoctorHandler(svc doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Service: svc}
}

// RegisterHandler handles POST /api/doctor/register.
func (h *DoctorHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.DoctorRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid doctor registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation error", "details": err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Doctor registered successfully",
		"token":   resp.Token,
		"doctor":  resp.Doctor,
	})
}

// LoginHandler handles POST /api/doctor/login.
func (h *DoctorHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged in successfully",
		"token":   resp.Token,
		"doctor":  resp.Doctor,
	})
}

// ProfileHandler handles GET /api/doctor/profile.
func (h *DoctorHandler) ProfileHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	doc, err := h.Service.GetByID(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

// UpdateProfileHandler handles PUT /api/doctor/profile.
func (h *DoctorHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	var req models.DoctorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation error", "details": err.Error()})
		return
	}

	doc, err := h.Service.UpdateProfile(c.Request.Context(), doctorID, req)
	if err != nil {
		logger.Error("Failed to update doctor profile", zap.String("doctorID", doctorID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "doctor": doc})
}

// ChangePasswordHandler handles PUT /api/doctor/password.
func (h *DoctorHandler) ChangePasswordHandler(c *gin.Context) {
	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Current and new password are required"})
		return
	}

	if err := h.Service.ChangePassword(c.Request.Context(), doctorID, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

// SearchHandler handles GET /api/doctor/search.
func (h *DoctorHandler) SearchHandler(c *gin.Context) {
	doctors, err := h.Service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to search doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doctors})
}

// GetByIDHandler handles GET /api/doctor/id/:id.
func (h *DoctorHandler) GetByIDHandler(c *gin.Context) {
	doc, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}
