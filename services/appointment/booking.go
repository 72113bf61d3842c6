package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicore/models"
	"medicore/services/tasks"
	"medicore/utils"

	timeslotRepo "medicore/database/repository/timeslot"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderLeadTime is how long before the slot start the reminder fires.
const reminderLeadTime = time.Hour

var (
	// ErrSlotTaken is returned when the requested slot has no free capacity.
	ErrSlotTaken = errors.New("the selected time slot is no longer available")
	// ErrAppointmentNotFound is returned for unknown appointment IDs.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrNotPermitted is returned when the actor does not own the appointment.
	ErrNotPermitted = errors.New("not permitted to modify this appointment")
	// ErrInvalidTransition is returned for disallowed status changes.
	ErrInvalidTransition = errors.New("invalid appointment status change")
)

// BookAppointment claims the slot, records the appointment, notifies both
// parties and schedules a reminder.
func (s *DefaultAppointmentService) BookAppointment(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	doctor, err := s.Doctors.GetByID(req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doctor == nil || !doctor.Approved {
		return nil, fmt.Errorf("doctor not found")
	}

	slot, err := s.Slots.GetByID(ctx, req.DoctorID, req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}
	if slot == nil {
		return nil, ErrSlotTaken
	}

	// Claim capacity first so two patients cannot book the same slot.
	if err := s.Slots.IncrementBooked(ctx, req.DoctorID, req.SlotID); err != nil {
		if errors.Is(err, timeslotRepo.ErrSlotUnavailable) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to claim slot: %w", err)
	}

	now := s.now()
	appt := &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		SlotID:    req.SlotID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Reason:    req.Reason,
		Status:    models.AppointmentBooked,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		// Release the claimed capacity so the slot stays bookable.
		if rbErr := s.Slots.DecrementBooked(ctx, req.DoctorID, req.SlotID); rbErr != nil {
			utils.GetLogger().Error("Failed to release slot after booking failure",
				zap.String("slotId", req.SlotID), zap.Error(rbErr))
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.notifyBooked(ctx, appt, doctor.FullName)
	s.scheduleReminder(appt)

	return appt, nil
}

func (s *DefaultAppointmentService) notifyBooked(ctx context.Context, appt *models.Appointment, doctorName string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{
		"appointmentId": appt.ID,
		"date":          appt.Date,
		"startTime":     appt.StartTime,
	}
	if err := s.Notifier.NotifyPatient(ctx, appt.PatientID, "appointment_booked",
		"Appointment booked",
		fmt.Sprintf("Your appointment with Dr. %s on %s at %s is booked.", doctorName, appt.Date, appt.StartTime),
		data); err != nil {
		utils.GetLogger().Warn("Failed to notify patient of booking", zap.Error(err))
	}
	if err := s.Notifier.NotifyDoctor(ctx, appt.DoctorID, "appointment_booked",
		"New appointment",
		fmt.Sprintf("A patient booked %s at %s.", appt.Date, appt.StartTime),
		data); err != nil {
		utils.GetLogger().Warn("Failed to notify doctor of booking", zap.Error(err))
	}
}

// reminderFireTime computes when the reminder for an appointment should
// fire. Slot clocks are wall times in the server's location; plain
// time.Parse would read them as UTC and skew the lead time by the UTC
// offset.
func reminderFireTime(appt *models.Appointment) (time.Time, error) {
	startAt, err := time.ParseInLocation("2006-01-02 15:04:05", appt.Date+" "+appt.StartTime, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return startAt.Add(-reminderLeadTime), nil
}

// scheduleReminder enqueues a patient reminder one hour before the slot
// starts. Enqueue failures are logged, booking still succeeds.
func (s *DefaultAppointmentService) scheduleReminder(appt *models.Appointment) {
	if s.AsynqClient == nil {
		return
	}

	fireAt, err := reminderFireTime(appt)
	if err != nil {
		utils.GetLogger().Warn("Failed to parse appointment start for reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return
	}
	if fireAt.Before(s.now()) {
		return
	}

	payload := models.ReminderPayload{
		Target:        "patient",
		ID:            appt.PatientID,
		AppointmentID: appt.ID,
		FireDate:      fireAt.Format(time.RFC3339),
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("You have an appointment today at %s.", appt.StartTime),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Error("Failed to build reminder task", zap.Error(err))
		return
	}
	if _, err := s.AsynqClient.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("Failed to enqueue reminder task",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

// CancelAppointment cancels the appointment and releases the slot.
func (s *DefaultAppointmentService) CancelAppointment(ctx context.Context, appointmentID, actorID, actorRole string) error {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return ErrAppointmentNotFound
	}

	switch actorRole {
	case utils.RolePatient:
		if appt.PatientID != actorID {
			return ErrNotPermitted
		}
	case utils.RoleDoctor:
		if appt.DoctorID != actorID {
			return ErrNotPermitted
		}
	default:
		return ErrNotPermitted
	}

	if appt.Status != models.AppointmentBooked && appt.Status != models.AppointmentConfirmed {
		return ErrInvalidTransition
	}

	if err := s.Appointments.UpdateStatus(ctx, appointmentID, models.AppointmentCancelled); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}
	if err := s.Slots.DecrementBooked(ctx, appt.DoctorID, appt.SlotID); err != nil {
		utils.GetLogger().Warn("Failed to release slot on cancellation",
			zap.String("slotId", appt.SlotID), zap.Error(err))
	}

	if s.Notifier != nil {
		data := map[string]string{"appointmentId": appt.ID, "date": appt.Date}
		msg := fmt.Sprintf("The appointment on %s at %s was cancelled.", appt.Date, appt.StartTime)
		if actorRole == utils.RolePatient {
			if err := s.Notifier.NotifyDoctor(ctx, appt.DoctorID, "appointment_cancelled", "Appointment cancelled", msg, data); err != nil {
				utils.GetLogger().Warn("Failed to notify doctor of cancellation", zap.Error(err))
			}
		} else {
			if err := s.Notifier.NotifyPatient(ctx, appt.PatientID, "appointment_cancelled", "Appointment cancelled", msg, data); err != nil {
				utils.GetLogger().Warn("Failed to notify patient of cancellation", zap.Error(err))
			}
		}
	}
	return nil
}

// UpdateStatus applies a doctor-side transition. Cancelling through this path
// also releases the slot.
func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, doctorID, appointmentID, status string) (*models.Appointment, error) {
	if status == models.AppointmentCancelled {
		if err := s.CancelAppointment(ctx, appointmentID, doctorID, utils.RoleDoctor); err != nil {
			return nil, err
		}
		return s.Appointments.GetByID(ctx, appointmentID)
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.DoctorID != doctorID {
		return nil, ErrNotPermitted
	}

	if !validTransition(appt.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.Appointments.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	appt.Status = status

	if s.Notifier != nil {
		msg := fmt.Sprintf("Your appointment on %s at %s is now %s.", appt.Date, appt.StartTime, status)
		if err := s.Notifier.NotifyPatient(ctx, appt.PatientID, "appointment_"+status, "Appointment update", msg,
			map[string]string{"appointmentId": appt.ID, "status": status}); err != nil {
			utils.GetLogger().Warn("Failed to notify patient of status change", zap.Error(err))
		}
	}
	return appt, nil
}

func validTransition(from, to string) bool {
	switch to {
	case models.AppointmentConfirmed:
		return from == models.AppointmentBooked
	case models.AppointmentCompleted:
		return from == models.AppointmentBooked || from == models.AppointmentConfirmed
	case models.AppointmentCancelled:
		return from == models.AppointmentBooked || from == models.AppointmentConfirmed
	}
	return false
}

// GetAppointmentByID retrieves a single appointment.
func (s *DefaultAppointmentService) GetAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	return appt, nil
}

// GetPatientAppointments lists a patient's appointments.
func (s *DefaultAppointmentService) GetPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.Appointments.GetByPatient(ctx, patientID)
}

// GetDoctorAppointments lists a doctor's appointments.
func (s *DefaultAppointmentService) GetDoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.Appointments.GetByDoctor(ctx, doctorID)
}

// GetDoctorAppointmentsByDate lists a doctor's appointments on one date.
func (s *DefaultAppointmentService) GetDoctorAppointmentsByDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	return s.Appointments.GetByDoctorAndDate(ctx, doctorID, date)
}
