package handlers

import (
	"net/http"

	"medicore/models"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterPatientHandler handles POST /patients/auth/register.
func (h *PatientHandler) RegisterPatientHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.PatientRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.PatientService.RegisterPatient(req)
	if err != nil {
		logger.Error("Patient registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticatePatientHandler handles POST /patients/auth/login.
func (h *PatientHandler) AuthenticatePatientHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.PatientService.AuthenticatePatient(req.Email, req.Password)
	if err != nil {
		logger.Warn("Patient login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPatientProfileHandler handles GET /patients/me.
func (h *PatientHandler) GetPatientProfileHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	p, err := h.PatientService.GetPatientByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdatePatientHandler handles PUT /patients/me.
func (h *PatientHandler) UpdatePatientHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req models.Patient
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = id

	updated, err := h.PatientService.UpdatePatient(req)
	if err != nil {
		logger.Error("Failed to update patient", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePatientHandler handles DELETE /patients/me.
func (h *PatientHandler) DeletePatientHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	if err := h.PatientService.DeletePatient(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// RevokePatientTokenHandler handles POST /patients/auth/logout.
func (h *PatientHandler) RevokePatientTokenHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	if err := h.PatientService.RevokeAuthToken(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// UpdatePatientPasswordHandler handles PUT /patients/me/password.
func (h *PatientHandler) UpdatePatientPasswordHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.PatientService.UpdatePassword(id, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated, please sign in again"})
}

// InitiatePatientPasswordResetHandler handles POST /patients/auth/forgot-password.
func (h *PatientHandler) InitiatePatientPasswordResetHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.PatientService.InitiatePasswordReset(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code has been sent"})
}

// CompletePatientPasswordResetHandler handles POST /patients/auth/reset-password.
func (h *PatientHandler) CompletePatientPasswordResetHandler(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.PatientService.CompletePasswordReset(req.Email, req.OTP, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset, please sign in"})
}

// UpdatePatientFCMTokenHandler handles PUT /patients/me/fcm-token.
func (h *PatientHandler) UpdatePatientFCMTokenHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	var req struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.PatientService.UpdateFCMToken(id, req.FCMToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}
