package patient

import (
	"medicore/models"

	patientRepo "medicore/database/repository/patient"
)

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	Patient *models.Patient `json:"patient"`
	Token   string          `json:"token"`
}

// PatientService defines patient account operations.
type PatientService interface {
	RegisterPatient(req models.PatientRegistrationRequest) (*AuthResponse, error)
	AuthenticatePatient(email, password string) (*AuthResponse, error)
	GetPatientByID(id string) (*models.Patient, error)
	GetPatientByEmail(email string) (*models.Patient, error)
	UpdatePatient(p models.Patient) (*models.Patient, error)
	DeletePatient(id string) error
	RevokeAuthToken(id string) error
	UpdatePassword(id, currentPassword, newPassword string) error
	InitiatePasswordReset(email string) error
	CompletePasswordReset(email, otp, newPassword string) error
	UpdateFCMToken(id, token string) error
	// AddNotification appends an in-app notification to the patient record.
	AddNotification(id string, n models.Notification) error
}

// DefaultPatientService is the production implementation.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}
