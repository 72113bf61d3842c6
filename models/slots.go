package models

import "time"

// TimeSlot represents a doctor's bookable appointment window on a concrete date.
type TimeSlot struct {
	ID              string    `bson:"id" json:"id"`
	DoctorID        string    `bson:"doctorId" json:"doctor"`                   // owning doctor
	Date            string    `bson:"date" json:"date"`                         // "YYYY-MM-DD"
	StartTime       string    `bson:"start_time" json:"start_time"`             // "HH:MM:SS"
	EndTime         string    `bson:"end_time" json:"end_time"`                 // "HH:MM:SS"
	MaxAppointments int       `bson:"max_appointments" json:"max_appointments"` // booking capacity, 1 for generated slots
	IsAvailable     bool      `bson:"is_available" json:"is_available"`
	BookedCount     int       `bson:"booked_count,omitempty" json:"booked_count,omitempty"`
	CreatedAt       time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// GenerateSlotsRequest defines the payload for regenerating a doctor's slots.
// An omitted slotsPerDay defers to the configured default.
type GenerateSlotsRequest struct {
	SlotsPerDay int `json:"slotsPerDay" binding:"omitempty,min=1,max=48"`
}

// UpdateAvailabilityRequest defines the payload for saving a doctor's weekly template.
type UpdateAvailabilityRequest struct {
	Availability WeeklyAvailability `json:"availability" binding:"required"`
}

// DoctorScheduleDTO is the view returned by schedule reads and regeneration.
// Warning is set when the stored availability was malformed and the default
// template was substituted.
type DoctorScheduleDTO struct {
	DoctorID     string             `json:"doctorId"`
	Availability WeeklyAvailability `json:"availability"`
	SlotsPerDay  int                `json:"slotsPerDay"`
	TimeSlots    []TimeSlot         `json:"timeSlots"`
	Warning      string             `json:"warning,omitempty"`
}
