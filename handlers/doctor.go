package handlers

import (
	"net/http"

	"medicore/models"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterDoctorHandler handles POST /doctors/auth/register.
func (h *DoctorHandler) RegisterDoctorHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.DoctorRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.DoctorService.RegisterDoctor(req)
	if err != nil {
		logger.Error("Doctor registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateDoctorHandler handles POST /doctors/auth/login.
func (h *DoctorHandler) AuthenticateDoctorHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.DoctorService.AuthenticateDoctor(req.Email, req.Password)
	if err != nil {
		logger.Warn("Doctor login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDoctorsHandler handles GET /doctors. It is the patient-facing
// directory, only approved doctors appear.
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	specialization := c.Query("specialization")
	doctors, err := h.DoctorService.ListApprovedDoctors(specialization)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetDoctorProfileHandler handles GET /doctors/me.
func (h *DoctorHandler) GetDoctorProfileHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	d, err := h.DoctorService.GetDoctorByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetDoctorHandler handles GET /doctors/:id, the public profile view.
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	id := c.Param("id")
	d, err := h.DoctorService.GetDoctorByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if !d.Approved {
		c.JSON(http.StatusNotFound, gin.H{"error": "doctor not found"})
		return
	}
	c.JSON(http.StatusOK, d.PublicDTO())
}

// UpdateDoctorHandler handles PUT /doctors/me.
func (h *DoctorHandler) UpdateDoctorHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req models.Doctor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = id

	updated, err := h.DoctorService.UpdateDoctor(req)
	if err != nil {
		logger.Error("Failed to update doctor", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RevokeDoctorTokenHandler handles POST /doctors/auth/logout.
func (h *DoctorHandler) RevokeDoctorTokenHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	if err := h.DoctorService.RevokeAuthToken(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// UpdateDoctorPasswordHandler handles PUT /doctors/me/password.
func (h *DoctorHandler) UpdateDoctorPasswordHandler(c *gin.Context) {
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

	if err := h.DoctorService.UpdatePassword(id, req.CurrentPassword, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated, please sign in again"})
}

// InitiateDoctorPasswordResetHandler handles POST /doctors/auth/forgot-password.
func (h *DoctorHandler) InitiateDoctorPasswordResetHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.DoctorService.InitiatePasswordReset(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code has been sent"})
}

// CompleteDoctorPasswordResetHandler handles POST /doctors/auth/reset-password.
func (h *DoctorHandler) CompleteDoctorPasswordResetHandler(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		OTP         string `json:"otp" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.DoctorService.CompletePasswordReset(req.Email, req.OTP, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset, please sign in"})
}

// UpdateDoctorFCMTokenHandler handles PUT /doctors/me/fcm-token.
func (h *DoctorHandler) UpdateDoctorFCMTokenHandler(c *gin.Context) {
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
	if err := h.DoctorService.UpdateFCMToken(id, req.FCMToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token updated"})
}
