package handlers

import (
	"errors"
	"net/http"
	"time"

	"medicore/services/admin"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminLoginHandler handles POST /admin/auth/login.
func (h *AdminHandler) AdminLoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.AdminService.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.Warn("Admin login failed", zap.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ApproveDoctorHandler handles PUT /admin/doctors/:id/approve.
func (h *AdminHandler) ApproveDoctorHandler(c *gin.Context) {
	d, err := h.AdminService.ApproveDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, admin.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

// RevokeDoctorApprovalHandler handles PUT /admin/doctors/:id/revoke.
func (h *AdminHandler) RevokeDoctorApprovalHandler(c *gin.Context) {
	d, err := h.AdminService.RevokeDoctorApproval(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, admin.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListAllDoctorsHandler handles GET /admin/doctors.
func (h *AdminHandler) ListAllDoctorsHandler(c *gin.Context) {
	doctors, err := h.AdminService.ListDoctors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// ListAllPatientsHandler handles GET /admin/patients.
func (h *AdminHandler) ListAllPatientsHandler(c *gin.Context) {
	patients, err := h.AdminService.ListPatients()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patients)
}

// DeleteDoctorHandler handles DELETE /admin/doctors/:id.
func (h *AdminHandler) DeleteDoctorHandler(c *gin.Context) {
	if err := h.AdminService.DeleteDoctor(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}

// DeletePatientAccountHandler handles DELETE /admin/patients/:id.
func (h *AdminHandler) DeletePatientAccountHandler(c *gin.Context) {
	if err := h.AdminService.DeletePatient(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}

// DashboardHandler handles GET /admin/dashboard.
func (h *AdminHandler) DashboardHandler(c *gin.Context) {
	today := time.Now().Format("2006-01-02")
	stats, err := h.AdminService.DashboardStats(c.Request.Context(), today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
