package models

import "time"

// Doctor represents a doctor account with its scheduling configuration.
// Availability holds the serialized WeeklyAvailability JSON exactly as
// submitted; malformed values are replaced with a default template at
// read time rather than rejected here.
type Doctor struct {
	ID              string    `bson:"id" json:"id"`
	FullName        string    `bson:"full_name" json:"full_name"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	PhoneNumber     string    `bson:"phone_number" json:"phone_number"`
	Specialization  string    `bson:"specialization" json:"specialization"`
	Qualification   string    `bson:"qualification,omitempty" json:"qualification,omitempty"`
	ExperienceYears int       `bson:"experience_years,omitempty" json:"experience_years,omitempty"`
	ConsultationFee float64   `bson:"consultation_fee" json:"consultation_fee"`
	Availability    string    `bson:"availability,omitempty" json:"availability,omitempty"`
	SlotsPerDay     int       `bson:"slots_per_day,omitempty" json:"slots_per_day,omitempty"`
	Approved        bool      `bson:"approved" json:"approved"`
	FCMToken        string    `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`
	TokenHash       string    `bson:"token_hash,omitempty" json:"-"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// DoctorRegistrationRequest defines the payload for doctor sign-up.
type DoctorRegistrationRequest struct {
	FullName        string  `json:"full_name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	PhoneNumber     string  `json:"phone_number" binding:"required"`
	Specialization  string  `json:"specialization" binding:"required"`
	Qualification   string  `json:"qualification"`
	ExperienceYears int     `json:"experience_years"`
	ConsultationFee float64 `json:"consultation_fee"`
}

// DoctorPublicDTO is the patient-facing view of a doctor.
type DoctorPublicDTO struct {
	ID              string  `json:"id"`
	FullName        string  `json:"full_name"`
	Specialization  string  `json:"specialization"`
	Qualification   string  `json:"qualification,omitempty"`
	ExperienceYears int     `json:"experience_years,omitempty"`
	ConsultationFee float64 `json:"consultation_fee"`
}

// PublicDTO strips credentials and scheduling internals from a doctor record.
func (d *Doctor) PublicDTO() DoctorPublicDTO {
	return DoctorPublicDTO{
		ID:              d.ID,
		FullName:        d.FullName,
		Specialization:  d.Specialization,
		Qualification:   d.Qualification,
		ExperienceYears: d.ExperienceYears,
		ConsultationFee: d.ConsultationFee,
	}
}
