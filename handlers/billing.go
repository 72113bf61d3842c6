package handlers

import (
	"errors"
	"net/http"

	"medicore/models"
	"medicore/services/billing"
	"medicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBillHandler handles POST /doctors/me/bills.
func (h *BillingHandler) CreateBillHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doctorID, ok := accountID(c)
	if !ok {
		return
	}

	var req models.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.BillingService.CreateBill(c.Request.Context(), doctorID, req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, billing.ErrNotPermitted):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logger.Error("Bill creation failed", zap.String("doctorId", doctorID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// PayBillHandler handles POST /patients/me/bills/:id/pay.
func (h *BillingHandler) PayBillHandler(c *gin.Context) {
	logger := utils.GetLogger()
	patientID, ok := accountID(c)
	if !ok {
		return
	}
	billID := c.Param("id")

	var req models.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.BillingService.PayBill(c.Request.Context(), patientID, billID, req)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrBillNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, billing.ErrNotPermitted):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, billing.ErrBillNotPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Payment failed", zap.String("billId", billID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ListPatientBillsHandler handles GET /patients/me/bills.
func (h *BillingHandler) ListPatientBillsHandler(c *gin.Context) {
	patientID, ok := accountID(c)
	if !ok {
		return
	}
	bills, err := h.BillingService.GetPatientBills(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bills)
}

// ListDoctorBillsHandler handles GET /doctors/me/bills.
func (h *BillingHandler) ListDoctorBillsHandler(c *gin.Context) {
	doctorID, ok := accountID(c)
	if !ok {
		return
	}
	bills, err := h.BillingService.GetDoctorBills(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bills)
}

// GetBillHandler handles GET /patients/me/bills/:id.
func (h *BillingHandler) GetBillHandler(c *gin.Context) {
	patientID, ok := accountID(c)
	if !ok {
		return
	}
	bill, err := h.BillingService.GetBillByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if bill.PatientID != patientID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not permitted"})
		return
	}
	c.JSON(http.StatusOK, bill)
}
