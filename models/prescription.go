package models

import "time"

// Medication is a single line item on a prescription.
type Medication struct {
	Name         string `bson:"name" json:"name"`
	Dosage       string `bson:"dosage" json:"dosage"`       // e.g., "500mg"
	Frequency    string `bson:"frequency" json:"frequency"` // e.g., "twice daily"
	DurationDays int    `bson:"duration_days" json:"duration_days"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// Prescription is written by a doctor against an appointment.
type Prescription struct {
	ID            string       `bson:"id" json:"id"`
	AppointmentID string       `bson:"appointment_id" json:"appointment_id"`
	DoctorID      string       `bson:"doctor_id" json:"doctor_id"`
	PatientID     string       `bson:"patient_id" json:"patient_id"`
	Diagnosis     string       `bson:"diagnosis" json:"diagnosis"`
	Medications   []Medication `bson:"medications" json:"medications"`
	Notes         string       `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time    `bson:"created_at" json:"created_at"`
}

// CreatePrescriptionRequest defines the doctor-side payload.
type CreatePrescriptionRequest struct {
	AppointmentID string       `json:"appointment_id" binding:"required"`
	Diagnosis     string       `json:"diagnosis" binding:"required"`
	Medications   []Medication `json:"medications" binding:"required,min=1"`
	Notes         string       `json:"notes"`
}
