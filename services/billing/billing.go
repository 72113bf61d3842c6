package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicore/models"
	"medicore/services/notification"
	"medicore/utils"

	appointmentRepo "medicore/database/repository/appointment"
	billingRepo "medicore/database/repository/billing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "INR"

var (
	// ErrAppointmentNotFound is returned for unknown appointment IDs.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrNotPermitted is returned when the actor does not own the resource.
	ErrNotPermitted = errors.New("not permitted")
	// ErrBillNotFound is returned for unknown bill IDs.
	ErrBillNotFound = errors.New("bill not found")
	// ErrBillNotPending is returned when paying an already settled bill.
	ErrBillNotPending = errors.New("bill is not pending")
)

// BillingService defines bill issuing and settlement operations.
type BillingService interface {
	// CreateBill issues a bill from a doctor against one of their appointments.
	CreateBill(ctx context.Context, doctorID string, req models.CreateBillRequest) (*models.Bill, error)
	// PayBill settles a pending bill for the owning patient. Card payments
	// mark the bill paid; cash payments record a pending invoice and leave
	// the bill open until collected.
	PayBill(ctx context.Context, patientID, billID string, req models.PayBillRequest) (*models.Invoice, error)
	GetBillByID(ctx context.Context, id string) (*models.Bill, error)
	GetPatientBills(ctx context.Context, patientID string) ([]models.Bill, error)
	GetDoctorBills(ctx context.Context, doctorID string) ([]models.Bill, error)
}

// DefaultBillingService is the production implementation.
type DefaultBillingService struct {
	Bills        billingRepo.BillingRepository
	Appointments appointmentRepo.AppointmentRepository
	Payments     PaymentHandler
	Notifier     notification.NotificationService
}

// CreateBill totals the line items and issues a pending bill to the patient.
func (s *DefaultBillingService) CreateBill(ctx context.Context, doctorID string, req models.CreateBillRequest) (*models.Bill, error) {
	appt, err := s.Appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.DoctorID != doctorID {
		return nil, ErrNotPermitted
	}

	var total float64
	for _, item := range req.Items {
		if item.Amount <= 0 {
			return nil, fmt.Errorf("bill item %q has a non-positive amount", item.Description)
		}
		total += item.Amount
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	now := time.Now()
	bill := &models.Bill{
		ID:            uuid.New().String(),
		AppointmentID: req.AppointmentID,
		DoctorID:      doctorID,
		PatientID:     appt.PatientID,
		Items:         req.Items,
		Total:         total,
		Currency:      currency,
		Status:        models.BillPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Bills.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyPatient(ctx, bill.PatientID, "bill_issued",
			"New bill",
			fmt.Sprintf("A bill of %s %.2f for your appointment on %s is due.", currency, total, appt.Date),
			map[string]string{"billId": bill.ID, "appointmentId": appt.ID}); err != nil {
			utils.GetLogger().Warn("Failed to notify patient of bill", zap.Error(err))
		}
	}
	return bill, nil
}

// PayBill runs the payment and records the invoice.
func (s *DefaultBillingService) PayBill(ctx context.Context, patientID, billID string, req models.PayBillRequest) (*models.Invoice, error) {
	bill, err := s.Bills.GetBillByID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bill: %w", err)
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	if bill.PatientID != patientID {
		return nil, ErrNotPermitted
	}
	if bill.Status != models.BillPending {
		return nil, ErrBillNotPending
	}

	inv, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		PatientID: patientID,
		BillID:    billID,
		Amount:    bill.Total,
		Method:    req.Method,
		Currency:  bill.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("payment failed: %w", err)
	}

	if err := s.Bills.CreateInvoice(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to record invoice: %w", err)
	}

	if inv.Status == "paid" {
		if err := s.Bills.MarkBillPaid(ctx, billID, inv.InvoiceID); err != nil {
			// The invoice exists but the bill flip failed; surface it so the
			// caller can retry.
			return nil, fmt.Errorf("failed to settle bill: %w", err)
		}
	}

	if s.Notifier != nil {
		msg := fmt.Sprintf("Payment of %s %.2f via %s was %s.", inv.Currency, inv.Amount, inv.Method, inv.Status)
		data := map[string]string{"invoiceId": inv.InvoiceID, "billId": billID, "status": inv.Status}
		if err := s.Notifier.NotifyPatient(ctx, patientID, "payment_confirmation", "Payment update", msg, data); err != nil {
			utils.GetLogger().Warn("Failed to notify patient of payment", zap.Error(err))
		}
		if err := s.Notifier.NotifyDoctor(ctx, bill.DoctorID, "payment_confirmation", "Payment update", msg, data); err != nil {
			utils.GetLogger().Warn("Failed to notify doctor of payment", zap.Error(err))
		}
	}
	return inv, nil
}

// GetBillByID retrieves a single bill.
func (s *DefaultBillingService) GetBillByID(ctx context.Context, id string) (*models.Bill, error) {
	bill, err := s.Bills.GetBillByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bill: %w", err)
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	return bill, nil
}

// GetPatientBills lists a patient's bills.
func (s *DefaultBillingService) GetPatientBills(ctx context.Context, patientID string) ([]models.Bill, error) {
	return s.Bills.GetBillsByPatient(ctx, patientID)
}

// GetDoctorBills lists bills a doctor has issued.
func (s *DefaultBillingService) GetDoctorBills(ctx context.Context, doctorID string) ([]models.Bill, error) {
	return s.Bills.GetBillsByDoctor(ctx, doctorID)
}
