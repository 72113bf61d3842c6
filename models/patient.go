package models

import "time"

// Patient represents a registered patient account.
type Patient struct {
	ID            string         `bson:"id" json:"id"`
	FullName      string         `bson:"full_name" json:"full_name"`
	Email         string         `bson:"email" json:"email"`
	PasswordHash  string         `bson:"password_hash" json:"-"`
	PhoneNumber   string         `bson:"phone_number" json:"phone_number"`
	DateOfBirth   string         `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"` // "YYYY-MM-DD"
	Gender        string         `bson:"gender,omitempty" json:"gender,omitempty"`
	Address       string         `bson:"address,omitempty" json:"address,omitempty"`
	BloodGroup    string         `bson:"blood_group,omitempty" json:"blood_group,omitempty"`
	FCMToken      string         `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`
	TokenHash     string         `bson:"token_hash,omitempty" json:"-"`
	Notifications []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updated_at"`
}

// PatientRegistrationRequest defines the payload for patient sign-up.
type PatientRegistrationRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	BloodGroup  string `json:"blood_group"`
}
