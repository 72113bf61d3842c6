package handlers

import (
	"errors"
	"net/http"

	"medicore/models"
	"medicore/services/schedule"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetScheduleHandler handles GET /doctors/me/schedule. The response carries a
// warning when the stored weekly template was malformed and the default was
// substituted.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}

	dto, err := h.ScheduleService.GetSchedule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// UpdateAvailabilityHandler handles PUT /doctors/me/availability.
func (h *ScheduleHandler) UpdateAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ScheduleService.SaveWeeklyAvailability(c.Request.Context(), id, req.Availability); err != nil {
		if errors.Is(err, schedule.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to save availability", zap.String("doctorId", id), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability saved"})
}

// GenerateSlotsHandler handles POST /doctors/me/slots/generate. It replaces
// the doctor's entire slot set.
func (h *ScheduleHandler) GenerateSlotsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id, ok := accountID(c)
	if !ok {
		return
	}

	var req models.GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dto, err := h.ScheduleService.RegenerateSlots(c.Request.Context(), id, req.SlotsPerDay)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrNoAvailableDays):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please set your weekly availability before generating slots"})
		case errors.Is(err, schedule.ErrDoctorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Slot generation failed", zap.String("doctorId", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GetDoctorSlotsHandler handles GET /doctors/:id/slots, the patient-facing
// slot listing. An optional date query narrows it to one day.
func (h *ScheduleHandler) GetDoctorSlotsHandler(c *gin.Context) {
	doctorID := c.Param("id")
	date := c.Query("date")

	slots, err := h.ScheduleService.GetSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GetOwnSlotsHandler handles GET /doctors/me/slots.
func (h *ScheduleHandler) GetOwnSlotsHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	slots, err := h.ScheduleService.GetSlots(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slots)
}

// DeleteSlotHandler handles DELETE /doctors/me/slots/:slotId.
func (h *ScheduleHandler) DeleteSlotHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotId")
	if err := h.ScheduleService.DeleteSlot(c.Request.Context(), id, slotID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted"})
}
