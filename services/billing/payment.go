package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicore/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentHandler settles a payment request into an invoice.
type PaymentHandler interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// UnifiedPaymentHandler processes card and cash payments. Card payments settle
// immediately; cash payments stay pending until collected at the front desk.
type UnifiedPaymentHandler struct {
	logger *zap.Logger
}

func NewPaymentHandler(logger *zap.Logger) *UnifiedPaymentHandler {
	return &UnifiedPaymentHandler{logger: logger}
}

func (h *UnifiedPaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		BillID:    req.BillID,
		PatientID: req.PatientID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    "pending",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	switch req.Method {
	case "card":
		return h.processCardPayment(ctx, inv)
	case "cash":
		return h.processCashPayment(ctx, inv)
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

func (h *UnifiedPaymentHandler) processCardPayment(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	time.Sleep(1 * time.Second) // Simulate card payment processing

	inv.PaymentID = "pi_" + uuid.New().String()
	inv.Status = "paid"
	inv.UpdatedAt = time.Now()

	h.logger.Info("Card payment successful", zap.String("invoice", inv.InvoiceID))
	return inv, nil
}

func (h *UnifiedPaymentHandler) processCashPayment(ctx context.Context, inv *models.Invoice) (*models.Invoice, error) {
	time.Sleep(500 * time.Millisecond) // Simulate cash entry delay

	// Cash stays "pending" until collected in person.
	inv.UpdatedAt = time.Now()

	h.logger.Info("Cash payment recorded", zap.String("invoice", inv.InvoiceID))
	return inv, nil
}

func validateRequest(req models.PaymentRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if req.PatientID == "" {
		return errors.New("missing patient ID")
	}
	if req.BillID == "" {
		return errors.New("missing bill ID")
	}
	if req.Method != "card" && req.Method != "cash" {
		return errors.New("unsupported method")
	}
	return nil
}
