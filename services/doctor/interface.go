package doctor

import (
	"medicore/models"

	doctorRepo "medicore/database/repository/doctor"
)

// AuthResponse is returned on successful authentication.
type AuthResponse struct {
	Doctor *models.Doctor `json:"doctor"`
	Token  string         `json:"token"`
}

// DoctorService defines doctor account operations.
type DoctorService interface {
	RegisterDoctor(req models.DoctorRegistrationRequest) (*AuthResponse, error)
	AuthenticateDoctor(email, password string) (*AuthResponse, error)
	GetDoctorByID(id string) (*models.Doctor, error)
	GetDoctorByEmail(email string) (*models.Doctor, error)
	// ListApprovedDoctors returns the patient-facing directory, optionally
	// filtered by specialization.
	ListApprovedDoctors(specialization string) ([]models.DoctorPublicDTO, error)
	UpdateDoctor(d models.Doctor) (*models.Doctor, error)
	DeleteDoctor(id string) error
	RevokeAuthToken(id string) error
	UpdatePassword(id, currentPassword, newPassword string) error
	InitiatePasswordReset(email string) error
	CompletePasswordReset(email, otp, newPassword string) error
	UpdateFCMToken(id, token string) error
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo doctorRepo.DoctorRepository
}
