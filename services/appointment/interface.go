package appointment

import (
	"context"
	"time"

	"medicore/models"
	"medicore/services/notification"

	appointmentRepo "medicore/database/repository/appointment"
	doctorRepo "medicore/database/repository/doctor"
	timeslotRepo "medicore/database/repository/timeslot"

	"github.com/hibiken/asynq"
)

// AppointmentService defines booking and lifecycle operations for appointments.
type AppointmentService interface {
	// BookAppointment claims a slot for the patient. Capacity is enforced
	// atomically, so concurrent bookings of the same slot cannot overbook it.
	BookAppointment(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	// CancelAppointment cancels a booked or confirmed appointment and releases
	// the claimed slot capacity. Patients may cancel their own appointments,
	// doctors those on their calendar.
	CancelAppointment(ctx context.Context, appointmentID, actorID, actorRole string) error
	// UpdateStatus applies a doctor-side status change (confirm, complete, cancel).
	UpdateStatus(ctx context.Context, doctorID, appointmentID, status string) (*models.Appointment, error)
	GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error)
	GetPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
	GetDoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error)
	GetDoctorAppointmentsByDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Slots        timeslotRepo.TimeSlotRepository
	Doctors      doctorRepo.DoctorRepository
	Notifier     notification.NotificationService
	// AsynqClient enqueues appointment reminders. Optional; when nil,
	// reminders are skipped.
	AsynqClient *asynq.Client
	// Now is the clock, overridable in tests.
	Now func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
