package handlers

import (
	"errors"
	"net/http"

	"medicore/models"
	"medicore/services/prescription"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreatePrescriptionHandler handles POST /doctors/me/prescriptions.
func (h *PrescriptionHandler) CreatePrescriptionHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doctorID, ok := accountID(c)
	if !ok {
		return
	}

	var req models.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.PrescriptionService.CreatePrescription(c.Request.Context(), doctorID, req)
	if err != nil {
		switch {
		case errors.Is(err, prescription.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, prescription.ErrNotPermitted):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, prescription.ErrAlreadyPrescribed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Prescription creation failed", zap.String("doctorId", doctorID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListPatientPrescriptionsHandler handles GET /patients/me/prescriptions.
func (h *PrescriptionHandler) ListPatientPrescriptionsHandler(c *gin.Context) {
	patientID, ok := accountID(c)
	if !ok {
		return
	}
	list, err := h.PrescriptionService.GetPatientPrescriptions(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListDoctorPrescriptionsHandler handles GET /doctors/me/prescriptions.
func (h *PrescriptionHandler) ListDoctorPrescriptionsHandler(c *gin.Context) {
	doctorID, ok := accountID(c)
	if !ok {
		return
	}
	list, err := h.PrescriptionService.GetDoctorPrescriptions(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetPrescriptionHandler handles GET /patients/me/prescriptions/:id. Patients
// may only read their own prescriptions.
func (h *PrescriptionHandler) GetPrescriptionHandler(c *gin.Context) {
	patientID, ok := accountID(c)
	if !ok {
		return
	}
	p, err := h.PrescriptionService.GetPrescriptionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if p.PatientID != patientID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not permitted"})
		return
	}
	c.JSON(http.StatusOK, p)
}
