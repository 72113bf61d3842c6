package handlers

import (
	"errors"
	"net/http"

	"medicore/middleware"
	"medicore/models"
	"medicore/services/appointment"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookAppointmentHandler handles POST /patients/me/appointments.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	patientID, ok := accountID(c)
	if !ok {
		return
	}

	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.AppointmentService.BookAppointment(c.Request.Context(), patientID, req)
	if err != nil {
		if errors.Is(err, appointment.ErrSlotTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Booking failed", zap.String("patientId", patientID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ListPatientAppointmentsHandler handles GET /patients/me/appointments.
func (h *AppointmentHandler) ListPatientAppointmentsHandler(c *gin.Context) {
	patientID, ok := accountID(c)
	if !ok {
		return
	}
	appts, err := h.AppointmentService.GetPatientAppointments(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// ListDoctorAppointmentsHandler handles GET /doctors/me/appointments with an
// optional date filter.
func (h *AppointmentHandler) ListDoctorAppointmentsHandler(c *gin.Context) {
	doctorID, ok := accountID(c)
	if !ok {
		return
	}

	var (
		appts []models.Appointment
		err   error
	)
	if date := c.Query("date"); date != "" {
		appts, err = h.AppointmentService.GetDoctorAppointmentsByDate(c.Request.Context(), doctorID, date)
	} else {
		appts, err = h.AppointmentService.GetDoctorAppointments(c.Request.Context(), doctorID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CancelAppointmentHandler handles DELETE /{patients,doctors}/me/appointments/:id.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	actorID, ok := accountID(c)
	if !ok {
		return
	}
	role := c.GetString(middleware.ContextRole)
	apptID := c.Param("id")

	if err := h.AppointmentService.CancelAppointment(c.Request.Context(), apptID, actorID, role); err != nil {
		writeAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// UpdateAppointmentStatusHandler handles PUT /doctors/me/appointments/:id/status.
func (h *AppointmentHandler) UpdateAppointmentStatusHandler(c *gin.Context) {
	doctorID, ok := accountID(c)
	if !ok {
		return
	}
	apptID := c.Param("id")

	var req models.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.AppointmentService.UpdateStatus(c.Request.Context(), doctorID, apptID, req.Status)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func writeAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, appointment.ErrNotPermitted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, appointment.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
