package handlers

import (
	"net/http"

	"medibook/models"
	"medibook/services/lab"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LabHandler exposes the lab assistant workflow.
type LabHandler struct {
	Service lab.LabService
}

// NewLabHandler constructs a LabHandler.
func NewLabHandler(svc lab.LabService) *LabHandler {
	return &LabHandler{Service: svc}
}

// LoginHandler handles POST /api/lab/login.
func (h *LabHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	token, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "token": token})
}

// CreateRequestHandler handles POST /api/lab/requests (doctor side).
func (h *LabHandler) CreateRequestHandler(c *gin.Context) {
	logger := utils.GetLogger()

	doctorID, ok := doctorIDFromContext(c)
	if !ok {
		return
	}

	var req models.LabRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid lab request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "details": err.Error()})
		return
	}

	record, err := h.Service.CreateRequest(c.Request.Context(), doctorID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Lab request created", "data": record})
}

// ListRequestsHandler handles GET /api/lab/requests.
func (h *LabHandler) ListRequestsHandler(c *gin.Context) {
	records, err := h.Service.ListRequests(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch lab requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

// UpdateRequestHandler handles PUT /api/lab/requests/:id.
func (h *LabHandler) UpdateRequestHandler(c *gin.Context) {
	requestID := c.Param("id")
	if requestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing lab request ID"})
		return
	}

	var req models.LabRequestUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "details": err.Error()})
		return
	}

	record, err := h.Service.UpdateRequest(c.Request.Context(), requestID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lab request updated", "data": record})
}
