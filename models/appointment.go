package models

import "time"

// Appointment statuses.
const (
	AppointmentBooked    = "booked"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment represents a patient's booking of a doctor's time slot.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	PatientID string    `bson:"patient_id" json:"patient_id"`
	DoctorID  string    `bson:"doctor_id" json:"doctor_id"`
	SlotID    string    `bson:"slot_id" json:"slot_id"`
	Date      string    `bson:"date" json:"date"`             // "YYYY-MM-DD", copied from the slot
	StartTime string    `bson:"start_time" json:"start_time"` // "HH:MM:SS"
	EndTime   string    `bson:"end_time" json:"end_time"`     // "HH:MM:SS"
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// BookAppointmentRequest defines the payload for booking a slot.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" binding:"required"`
	SlotID   string `json:"slot_id" binding:"required"`
	Reason   string `json:"reason"`
}

// UpdateAppointmentStatusRequest defines the payload for doctor-side status changes.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
}
