package models

import "time"

// Notification is an in-app notification appended to an account record.
type Notification struct {
	ID        string                 `bson:"id" json:"id"`
	Type      string                 `bson:"type" json:"type"` // e.g., "appointment_booked", "payment_confirmation"
	Message   string                 `bson:"message" json:"message"`
	Data      map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool                   `bson:"read" json:"read"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
}

// ReminderPayload is the asynq task payload for appointment reminders.
type ReminderPayload struct {
	Target        string `json:"target"` // "patient" or "doctor"
	ID            string `json:"id"`     // account ID to notify
	AppointmentID string `json:"appointmentId"`
	FireDate      string `json:"fireDate"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}
