package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicore/config"
	"medicore/models"
	"medicore/services/notification"
	"medicore/utils"

	appointmentRepo "medicore/database/repository/appointment"
	billingRepo "medicore/database/repository/billing"
	doctorRepo "medicore/database/repository/doctor"
	patientRepo "medicore/database/repository/patient"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const tokenTTL = 12 * time.Hour

// ErrInvalidCredentials is returned for failed admin logins.
var ErrInvalidCredentials = errors.New("invalid admin credentials")

// ErrDoctorNotFound is returned for unknown doctor IDs.
var ErrDoctorNotFound = errors.New("doctor not found")

// AdminService defines the hospital administration operations.
type AdminService interface {
	// Authenticate checks the configured admin credentials and issues a token.
	Authenticate(email, password string) (string, error)
	// ApproveDoctor flips a doctor account into the patient-facing directory.
	ApproveDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
	// RevokeDoctorApproval removes a doctor from the directory.
	RevokeDoctorApproval(ctx context.Context, doctorID string) (*models.Doctor, error)
	ListDoctors() ([]models.Doctor, error)
	ListPatients() ([]models.Patient, error)
	DeleteDoctor(id string) error
	DeletePatient(id string) error
	// DashboardStats aggregates the numbers shown on the admin landing page.
	DashboardStats(ctx context.Context, today string) (*models.DashboardStats, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Patients     patientRepo.PatientRepository
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Bills        billingRepo.BillingRepository
	Notifier     notification.NotificationService
}

// Authenticate validates the configured credentials. There is a single admin
// identity, no admin records are stored.
func (s *DefaultAdminService) Authenticate(email, password string) (string, error) {
	cfg := config.AppConfig
	if cfg.AdminPassword == "" {
		return "", fmt.Errorf("admin login is not configured")
	}
	if email != cfg.AdminEmail || password != cfg.AdminPassword {
		return "", ErrInvalidCredentials
	}
	token, err := utils.GenerateToken("admin", email, utils.RoleAdmin, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue admin token: %w", err)
	}
	return token, nil
}

// ApproveDoctor marks the doctor approved and notifies them.
func (s *DefaultAdminService) ApproveDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.setApproval(ctx, doctorID, true)
}

// RevokeDoctorApproval hides the doctor from the directory again.
func (s *DefaultAdminService) RevokeDoctorApproval(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return s.setApproval(ctx, doctorID, false)
}

func (s *DefaultAdminService) setApproval(ctx context.Context, doctorID string, approved bool) (*models.Doctor, error) {
	d, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if d == nil {
		return nil, ErrDoctorNotFound
	}

	if err := s.Doctors.UpdateSetDocument(doctorID, bson.M{"approved": approved, "updated_at": time.Now()}); err != nil {
		return nil, fmt.Errorf("failed to update doctor approval: %w", err)
	}
	d.Approved = approved

	if s.Notifier != nil && approved {
		if err := s.Notifier.NotifyDoctor(ctx, doctorID, "account_approved",
			"Account approved",
			"Your account has been approved. Patients can now book appointments with you.",
			map[string]string{"doctorId": doctorID}); err != nil {
			utils.GetLogger().Warn("Failed to notify doctor of approval", zap.Error(err))
		}
	}
	return d, nil
}

// ListDoctors returns every doctor account, approved or not.
func (s *DefaultAdminService) ListDoctors() ([]models.Doctor, error) {
	return s.Doctors.GetAll()
}

// ListPatients returns every patient account.
func (s *DefaultAdminService) ListPatients() ([]models.Patient, error) {
	return s.Patients.GetAll()
}

// DeleteDoctor removes a doctor account.
func (s *DefaultAdminService) DeleteDoctor(id string) error {
	if err := s.Doctors.Delete(id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}

// DeletePatient removes a patient account.
func (s *DefaultAdminService) DeletePatient(id string) error {
	if err := s.Patients.Delete(id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

// DashboardStats aggregates the dashboard counters. today is "YYYY-MM-DD".
func (s *DefaultAdminService) DashboardStats(ctx context.Context, today string) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	var err error
	if stats.TotalPatients, err = s.Patients.Count(); err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	if stats.TotalDoctors, err = s.Doctors.Count(bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to count doctors: %w", err)
	}
	if stats.PendingDoctors, err = s.Doctors.Count(bson.M{"approved": false}); err != nil {
		return nil, fmt.Errorf("failed to count pending doctors: %w", err)
	}
	if stats.TotalAppointments, err = s.Appointments.Count(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	if stats.AppointmentsToday, err = s.Appointments.Count(ctx, bson.M{"date": today}); err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}
	if stats.PendingBills, err = s.Bills.CountBills(ctx, bson.M{"status": models.BillPending}); err != nil {
		return nil, fmt.Errorf("failed to count pending bills: %w", err)
	}
	if stats.RevenueCollected, err = s.Bills.SumPaid(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return stats, nil
}
