package notification

import (
	"context"
	"fmt"
	"time"

	"medicore/models"
	"medicore/utils"

	doctorRepo "medicore/database/repository/doctor"
	patientRepo "medicore/database/repository/patient"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService delivers in-app notifications and FCM pushes.
type NotificationService interface {
	// NotifyPatient appends an in-app notification to the patient record and
	// sends a push if the account has a device token. Push failures are
	// logged, not returned.
	NotifyPatient(ctx context.Context, patientID, notifType, title, body string, data map[string]string) error
	// NotifyDoctor pushes to a doctor's device. Doctor accounts do not keep
	// an in-app notification feed.
	NotifyDoctor(ctx context.Context, doctorID, notifType, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Patients patientRepo.PatientRepository
	Doctors  doctorRepo.DoctorRepository
}

func NewDefaultNotificationService(
	patients patientRepo.PatientRepository,
	doctors doctorRepo.DoctorRepository,
) (*DefaultNotificationService, error) {
	if patients == nil || doctors == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{Patients: patients, Doctors: doctors}, nil
}

// NotifyPatient records the notification and pushes it to the patient's device.
func (s *DefaultNotificationService) NotifyPatient(ctx context.Context, patientID, notifType, title, body string, data map[string]string) error {
	p, err := s.Patients.GetByID(patientID)
	if err != nil {
		return fmt.Errorf("NotifyPatient: could not fetch patient %s: %w", patientID, err)
	}
	if p == nil {
		return fmt.Errorf("NotifyPatient: patient %s not found", patientID)
	}

	p.Notifications = append(p.Notifications, newNotification(notifType, body, data))
	if err := s.Patients.Update(p); err != nil {
		return fmt.Errorf("NotifyPatient: failed to record notification: %w", err)
	}

	if p.FCMToken != "" {
		if data == nil {
			data = map[string]string{}
		}
		if _, ok := data["role"]; !ok {
			data["role"] = utils.RolePatient
		}
		sendPush(ctx, p.FCMToken, title, body, data)
	}
	return nil
}

// NotifyDoctor pushes the notification to the doctor's device.
func (s *DefaultNotificationService) NotifyDoctor(ctx context.Context, doctorID, notifType, title, body string, data map[string]string) error {
	d, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return fmt.Errorf("NotifyDoctor: could not fetch doctor %s: %w", doctorID, err)
	}
	if d == nil {
		return fmt.Errorf("NotifyDoctor: doctor %s not found", doctorID)
	}

	if d.FCMToken != "" {
		if data == nil {
			data = map[string]string{}
		}
		if _, ok := data["role"]; !ok {
			data["role"] = utils.RoleDoctor
		}
		sendPush(ctx, d.FCMToken, title, body, data)
	}
	return nil
}

func newNotification(notifType, message string, data map[string]string) models.Notification {
	payload := make(map[string]interface{}, len(data))
	for k, v := range data {
		payload[k] = v
	}
	return models.Notification{
		ID:        uuid.New().String(),
		Type:      notifType,
		Message:   message,
		Data:      payload,
		CreatedAt: time.Now(),
	}
}

// sendPush delivers an FCM message. A missing client (e.g. in tests) or a
// send failure only logs a warning.
func sendPush(ctx context.Context, token, title, body string, data map[string]string) {
	if utils.FCMClient == nil {
		utils.GetLogger().Warn("FCM client not initialized, skipping push")
		return
	}
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
	}
	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		utils.GetLogger().Warn("Failed to send FCM message", zap.Error(err))
		return
	}
	utils.GetLogger().Debug("FCM message sent", zap.String("response", response))
}
