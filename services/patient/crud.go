package patient

import (
	"fmt"
	"time"

	"medicore/models"
	"medicore/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetPatientByID retrieves a patient by ID.
func (s *DefaultPatientService) GetPatientByID(id string) (*models.Patient, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("patient not found")
	}
	return p, nil
}

// GetPatientByEmail retrieves a patient by email.
func (s *DefaultPatientService) GetPatientByEmail(email string) (*models.Patient, error) {
	p, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("patient not found")
	}
	return p, nil
}

// UpdatePatient persists profile changes. Credentials and session fields are
// not updatable through this path.
func (s *DefaultPatientService) UpdatePatient(p models.Patient) (*models.Patient, error) {
	existing, err := s.GetPatientByID(p.ID)
	if err != nil {
		return nil, err
	}

	p.Email = existing.Email
	p.PasswordHash = existing.PasswordHash
	p.TokenHash = existing.TokenHash
	p.CreatedAt = existing.CreatedAt

	if err := s.Repo.Update(&p); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return &p, nil
}

// DeletePatient removes the account.
func (s *DefaultPatientService) DeletePatient(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

// UpdateFCMToken records the device push token.
func (s *DefaultPatientService) UpdateFCMToken(id, token string) error {
	if err := s.Repo.UpdateSetDocument(id, bson.M{"fcm_token": token, "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to update FCM token: %w", err)
	}
	return nil
}

// AddNotification appends an in-app notification to the patient record.
func (s *DefaultPatientService) AddNotification(id string, n models.Notification) error {
	p, err := s.GetPatientByID(id)
	if err != nil {
		return err
	}
	p.Notifications = append(p.Notifications, n)
	if err := s.Repo.Update(p); err != nil {
		utils.GetLogger().Error("Failed to append notification", zap.String("patientId", id), zap.Error(err))
		return fmt.Errorf("failed to append notification: %w", err)
	}
	return nil
}
