package models

import "time"

// Bill statuses.
const (
	BillPending = "pending"
	BillPaid    = "paid"
)

// BillItem is a single charge on a bill.
type BillItem struct {
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// Bill is issued by a doctor against an appointment and settled by the patient.
type Bill struct {
	ID            string     `bson:"id" json:"id"`
	AppointmentID string     `bson:"appointment_id" json:"appointment_id"`
	DoctorID      string     `bson:"doctor_id" json:"doctor_id"`
	PatientID     string     `bson:"patient_id" json:"patient_id"`
	Items         []BillItem `bson:"items" json:"items"`
	Total         float64    `bson:"total" json:"total"`
	Currency      string     `bson:"currency" json:"currency"`
	Status        string     `bson:"status" json:"status"`
	InvoiceID     string     `bson:"invoice_id,omitempty" json:"invoice_id,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// CreateBillRequest defines the doctor-side payload for issuing a bill.
type CreateBillRequest struct {
	AppointmentID string     `json:"appointment_id" binding:"required"`
	Items         []BillItem `json:"items" binding:"required,min=1"`
	Currency      string     `json:"currency"`
}

// PaymentRequest describes a patient's attempt to settle a bill.
type PaymentRequest struct {
	PatientID   string
	BillID      string
	Amount      float64
	Method      string // "cash" or "card"
	Currency    string
	Idempotency string
	Metadata    map[string]string
	Description string
}

// Invoice represents the outcome of processing a payment.
type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoice_id"`
	BillID    string    `bson:"bill_id" json:"bill_id"`
	PatientID string    `bson:"patient_id" json:"patient_id"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Method    string    `bson:"method" json:"method"`
	Status    string    `bson:"status" json:"status"` // "pending" or "paid"
	PaymentID string    `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PayBillRequest defines the patient-side payload for settling a bill.
type PayBillRequest struct {
	Method string `json:"method" binding:"required,oneof=card cash"`
}
