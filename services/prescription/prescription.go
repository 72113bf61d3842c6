package prescription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicore/models"
	"medicore/services/notification"
	"medicore/utils"

	appointmentRepo "medicore/database/repository/appointment"
	prescriptionRepo "medicore/database/repository/prescription"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrAppointmentNotFound is returned for unknown appointment IDs.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrNotPermitted is returned when the doctor does not own the appointment.
	ErrNotPermitted = errors.New("not permitted to prescribe for this appointment")
	// ErrAlreadyPrescribed is returned when the appointment already has a prescription.
	ErrAlreadyPrescribed = errors.New("a prescription already exists for this appointment")
	// ErrPrescriptionNotFound is returned for unknown prescription IDs.
	ErrPrescriptionNotFound = errors.New("prescription not found")
)

// PrescriptionService defines prescription operations.
type PrescriptionService interface {
	// CreatePrescription writes a prescription against one of the doctor's
	// appointments. One prescription per appointment.
	CreatePrescription(ctx context.Context, doctorID string, req models.CreatePrescriptionRequest) (*models.Prescription, error)
	GetPrescriptionByID(ctx context.Context, id string) (*models.Prescription, error)
	GetPatientPrescriptions(ctx context.Context, patientID string) ([]models.Prescription, error)
	GetDoctorPrescriptions(ctx context.Context, doctorID string) ([]models.Prescription, error)
	GetByAppointment(ctx context.Context, appointmentID string) (*models.Prescription, error)
}

// DefaultPrescriptionService is the production implementation.
type DefaultPrescriptionService struct {
	Prescriptions prescriptionRepo.PrescriptionRepository
	Appointments  appointmentRepo.AppointmentRepository
	Notifier      notification.NotificationService
}

// CreatePrescription validates ownership, writes the record and notifies the patient.
func (s *DefaultPrescriptionService) CreatePrescription(ctx context.Context, doctorID string, req models.CreatePrescriptionRequest) (*models.Prescription, error) {
	appt, err := s.Appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.DoctorID != doctorID {
		return nil, ErrNotPermitted
	}

	existing, err := s.Prescriptions.GetByAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing prescription: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyPrescribed
	}

	p := &models.Prescription{
		ID:            uuid.New().String(),
		AppointmentID: req.AppointmentID,
		DoctorID:      doctorID,
		PatientID:     appt.PatientID,
		Diagnosis:     req.Diagnosis,
		Medications:   req.Medications,
		Notes:         req.Notes,
		CreatedAt:     time.Now(),
	}
	if err := s.Prescriptions.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	if s.Notifier != nil {
		if err := s.Notifier.NotifyPatient(ctx, p.PatientID, "prescription_issued",
			"New prescription",
			fmt.Sprintf("A prescription for your appointment on %s is ready.", appt.Date),
			map[string]string{"prescriptionId": p.ID, "appointmentId": appt.ID}); err != nil {
			utils.GetLogger().Warn("Failed to notify patient of prescription", zap.Error(err))
		}
	}
	return p, nil
}

// GetPrescriptionByID retrieves a single prescription.
func (s *DefaultPrescriptionService) GetPrescriptionByID(ctx context.Context, id string) (*models.Prescription, error) {
	p, err := s.Prescriptions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescription: %w", err)
	}
	if p == nil {
		return nil, ErrPrescriptionNotFound
	}
	return p, nil
}

// GetPatientPrescriptions lists prescriptions issued to a patient.
func (s *DefaultPrescriptionService) GetPatientPrescriptions(ctx context.Context, patientID string) ([]models.Prescription, error) {
	return s.Prescriptions.GetByPatient(ctx, patientID)
}

// GetDoctorPrescriptions lists prescriptions a doctor has written.
func (s *DefaultPrescriptionService) GetDoctorPrescriptions(ctx context.Context, doctorID string) ([]models.Prescription, error) {
	return s.Prescriptions.GetByDoctor(ctx, doctorID)
}

// GetByAppointment retrieves the prescription for one appointment, if any.
func (s *DefaultPrescriptionService) GetByAppointment(ctx context.Context, appointmentID string) (*models.Prescription, error) {
	return s.Prescriptions.GetByAppointment(ctx, appointmentID)
}
