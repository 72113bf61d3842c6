package doctor

import (
	"fmt"
	"time"

	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetDoctorByID retrieves a doctor by ID.
func (s *DefaultDoctorService) GetDoctorByID(id string) (*models.Doctor, error) {
	d, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("doctor not found")
	}
	return d, nil
}

// GetDoctorByEmail retrieves a doctor by email.
func (s *DefaultDoctorService) GetDoctorByEmail(email string) (*models.Doctor, error) {
	d, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if d == nil {
		return nil, fmt.Errorf("doctor not found")
	}
	return d, nil
}

// ListApprovedDoctors returns the doctor directory shown to patients.
func (s *DefaultDoctorService) ListApprovedDoctors(specialization string) ([]models.DoctorPublicDTO, error) {
	doctors, err := s.Repo.GetApproved(specialization)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	out := make([]models.DoctorPublicDTO, 0, len(doctors))
	for i := range doctors {
		out = append(out, doctors[i].PublicDTO())
	}
	return out, nil
}

// UpdateDoctor persists profile changes. Credentials, session and approval
// fields are not updatable through this path.
func (s *DefaultDoctorService) UpdateDoctor(d models.Doctor) (*models.Doctor, error) {
	existing, err := s.GetDoctorByID(d.ID)
	if err != nil {
		return nil, err
	}

	d.Email = existing.Email
	d.PasswordHash = existing.PasswordHash
	d.TokenHash = existing.TokenHash
	d.Approved = existing.Approved
	d.Availability = existing.Availability
	d.SlotsPerDay = existing.SlotsPerDay
	d.CreatedAt = existing.CreatedAt

	if err := s.Repo.Update(&d); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	return &d, nil
}

// DeleteDoctor removes the account.
func (s *DefaultDoctorService) DeleteDoctor(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

// UpdateFCMToken records the device push token.
func (s *DefaultDoctorService) UpdateFCMToken(id, token string) error {
	if err := s.Repo.UpdateSetDocument(id, bson.M{"fcm_token": token, "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to update FCM token: %w", err)
	}
	return nil
}
