package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type fakeBillingRepo struct {
	bills    map[string]*models.Bill
	invoices []models.Invoice
}

func (f *fakeBillingRepo) CreateBill(_ context.Context, bill *models.Bill) error {
	cp := *bill
	f.bills[bill.ID] = &cp
	return nil
}
func (f *fakeBillingRepo) GetBillByID(_ context.Context, id string) (*models.Bill, error) {
	return f.bills[id], nil
}
func (f *fakeBillingRepo) GetBillsByPatient(context.Context, string) ([]models.Bill, error) {
	return nil, nil
}
func (f *fakeBillingRepo) GetBillsByDoctor(context.Context, string) ([]models.Bill, error) {
	return nil, nil
}
func (f *fakeBillingRepo) MarkBillPaid(_ context.Context, billID, invoiceID string) error {
	bill, ok := f.bills[billID]
	if !ok || bill.Status != models.BillPending {
		return fmt.Errorf("bill %s is not pending", billID)
	}
	bill.Status = models.BillPaid
	bill.InvoiceID = invoiceID
	return nil
}
func (f *fakeBillingRepo) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	f.invoices = append(f.invoices, *inv)
	return nil
}
func (f *fakeBillingRepo) CountBills(context.Context, bson.M) (int64, error) { return 0, nil }
func (f *fakeBillingRepo) SumPaid(context.Context) (float64, error)          { return 0, nil }

type fakeAppointmentRepo struct {
	appts map[string]*models.Appointment
}

func (f *fakeAppointmentRepo) Create(context.Context, *models.Appointment) error { return nil }
func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	return f.appts[id], nil
}
func (f *fakeAppointmentRepo) GetByPatient(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) GetByDoctor(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) GetByDoctorAndDate(context.Context, string, string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) UpdateStatus(context.Context, string, string) error { return nil }
func (f *fakeAppointmentRepo) Count(context.Context, bson.M) (int64, error)       { return 0, nil }

func newTestBillingService() (*DefaultBillingService, *fakeBillingRepo) {
	repo := &fakeBillingRepo{bills: map[string]*models.Bill{}}
	svc := &DefaultBillingService{
		Bills: repo,
		Appointments: &fakeAppointmentRepo{appts: map[string]*models.Appointment{
			"appt-1": {ID: "appt-1", DoctorID: "doc-1", PatientID: "pat-1", Date: "2025-06-09"},
		}},
		Payments: NewPaymentHandler(zap.NewNop()),
	}
	return svc, repo
}

func TestCreateBillTotalsItems(t *testing.T) {
	svc, _ := newTestBillingService()

	bill, err := svc.CreateBill(context.Background(), "doc-1", models.CreateBillRequest{
		AppointmentID: "appt-1",
		Items: []models.BillItem{
			{Description: "Consultation", Amount: 500},
			{Description: "Blood test", Amount: 250.50},
		},
	})
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	if bill.Total != 750.50 {
		t.Errorf("expected total 750.50, got %v", bill.Total)
	}
	if bill.Status != models.BillPending {
		t.Errorf("expected pending status, got %q", bill.Status)
	}
	if bill.PatientID != "pat-1" {
		t.Errorf("bill should be addressed to the appointment's patient, got %q", bill.PatientID)
	}
	if bill.Currency != defaultCurrency {
		t.Errorf("expected default currency %q, got %q", defaultCurrency, bill.Currency)
	}
}

func TestCreateBillWrongDoctor(t *testing.T) {
	svc, _ := newTestBillingService()

	_, err := svc.CreateBill(context.Background(), "doc-2", models.CreateBillRequest{
		AppointmentID: "appt-1",
		Items:         []models.BillItem{{Description: "Consultation", Amount: 500}},
	})
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
}

func TestCreateBillRejectsNonPositiveItem(t *testing.T) {
	svc, _ := newTestBillingService()

	_, err := svc.CreateBill(context.Background(), "doc-1", models.CreateBillRequest{
		AppointmentID: "appt-1",
		Items:         []models.BillItem{{Description: "Refund", Amount: -10}},
	})
	if err == nil {
		t.Fatal("expected an error for a non-positive item amount")
	}
}

func TestPayBillCardSettles(t *testing.T) {
	svc, repo := newTestBillingService()

	bill, err := svc.CreateBill(context.Background(), "doc-1", models.CreateBillRequest{
		AppointmentID: "appt-1",
		Items:         []models.BillItem{{Description: "Consultation", Amount: 500}},
	})
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	inv, err := svc.PayBill(context.Background(), "pat-1", bill.ID, models.PayBillRequest{Method: "card"})
	if err != nil {
		t.Fatalf("PayBill failed: %v", err)
	}

	if inv.Status != "paid" {
		t.Errorf("card invoice should be paid, got %q", inv.Status)
	}
	if inv.PaymentID == "" {
		t.Error("card invoice should carry a payment ID")
	}
	if repo.bills[bill.ID].Status != models.BillPaid {
		t.Errorf("bill should be settled, got %q", repo.bills[bill.ID].Status)
	}
	if repo.bills[bill.ID].InvoiceID != inv.InvoiceID {
		t.Error("bill should reference the settling invoice")
	}
	if len(repo.invoices) != 1 {
		t.Errorf("expected 1 recorded invoice, got %d", len(repo.invoices))
	}
}

func TestPayBillCashStaysPending(t *testing.T) {
	svc, repo := newTestBillingService()

	bill, _ := svc.CreateBill(context.Background(), "doc-1", models.CreateBillRequest{
		AppointmentID: "appt-1",
		Items:         []models.BillItem{{Description: "Consultation", Amount: 500}},
	})

	inv, err := svc.PayBill(context.Background(), "pat-1", bill.ID, models.PayBillRequest{Method: "cash"})
	if err != nil {
		t.Fatalf("PayBill failed: %v", err)
	}

	if inv.Status != "pending" {
		t.Errorf("cash invoice should stay pending, got %q", inv.Status)
	}
	if repo.bills[bill.ID].Status != models.BillPending {
		t.Errorf("bill should stay pending for cash, got %q", repo.bills[bill.ID].Status)
	}
}

func TestPayBillUnknownBill(t *testing.T) {
	svc, repo := newTestBillingService()

	_, err := svc.PayBill(context.Background(), "pat-1", "bill-404", models.PayBillRequest{Method: "card"})
	if !errors.Is(err, ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
	if len(repo.invoices) != 0 {
		t.Error("no invoice should be recorded for a missing bill")
	}
}

func TestPayBillWrongPatient(t *testing.T) {
	svc, _ := newTestBillingService()

	bill, _ := svc.CreateBill(context.Background(), "doc-1", models.CreateBillRequest{
		AppointmentID: "appt-1",
		Items:         []models.BillItem{{Description: "Consultation", Amount: 500}},
	})

	_, err := svc.PayBill(context.Background(), "pat-2", bill.ID, models.PayBillRequest{Method: "card"})
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
}

func TestPayBillTwice(t *testing.T) {
	svc, _ := newTestBillingService()

	bill, _ := svc.CreateBill(context.Background(), "doc-1", models.CreateBillRequest{
		AppointmentID: "appt-1",
		Items:         []models.BillItem{{Description: "Consultation", Amount: 500}},
	})

	if _, err := svc.PayBill(context.Background(), "pat-1", bill.ID, models.PayBillRequest{Method: "card"}); err != nil {
		t.Fatalf("first payment failed: %v", err)
	}
	_, err := svc.PayBill(context.Background(), "pat-1", bill.ID, models.PayBillRequest{Method: "card"})
	if !errors.Is(err, ErrBillNotPending) {
		t.Fatalf("expected ErrBillNotPending, got %v", err)
	}
}
