package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medicore/config"
	doctorRepo "medicore/database/repository/doctor"
	timeslotRepo "medicore/database/repository/timeslot"
	"medicore/models"
	"medicore/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ErrNoAvailableDays is returned when regeneration is requested with every
// weekday marked unavailable. No storage call is made in that case.
var ErrNoAvailableDays = errors.New("no available days configured")

// ErrDoctorNotFound is returned when the doctor record cannot be loaded.
var ErrDoctorNotFound = errors.New("doctor not found")

// Service owns a doctor's weekly availability template and the generated
// slot set derived from it.
type Service interface {
	// GetSchedule returns the parsed weekly template, configured slotsPerDay
	// and current slots for a doctor. A malformed stored template degrades to
	// the all-unavailable default and sets the DTO's Warning field.
	GetSchedule(ctx context.Context, doctorID string) (*models.DoctorScheduleDTO, error)
	// SaveWeeklyAvailability validates and persists the weekly template.
	SaveWeeklyAvailability(ctx context.Context, doctorID string, weekly models.WeeklyAvailability) error
	// RegenerateSlots replaces the doctor's slot set with a freshly generated
	// one: clear everything, then batch-insert the new slots. A clear failure
	// aborts before any insert. A non-positive slotsPerDay falls back to the
	// configured DEFAULT_SLOTS_PER_DAY.
	RegenerateSlots(ctx context.Context, doctorID string, slotsPerDay int) (*models.DoctorScheduleDTO, error)
	// GetSlots lists a doctor's slots, optionally for one date.
	GetSlots(ctx context.Context, doctorID, date string) ([]models.TimeSlot, error)
	// DeleteSlot removes one slot.
	DeleteSlot(ctx context.Context, doctorID, slotID string) error
}

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Doctors doctorRepo.DoctorRepository
	Slots   timeslotRepo.TimeSlotRepository
	// Now returns the reference date for the generation window; it defaults
	// to time.Now and is overridable in tests.
	Now func() time.Time
}

func (s *DefaultScheduleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultScheduleService) loadDoctor(doctorID string) (*models.Doctor, error) {
	doc, err := s.Doctors.GetByID(doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor %s: %w", doctorID, err)
	}
	if doc == nil {
		return nil, ErrDoctorNotFound
	}
	return doc, nil
}

// GetSchedule returns the doctor's schedule view.
func (s *DefaultScheduleService) GetSchedule(ctx context.Context, doctorID string) (*models.DoctorScheduleDTO, error) {
	doc, err := s.loadDoctor(doctorID)
	if err != nil {
		return nil, err
	}

	dto := &models.DoctorScheduleDTO{
		DoctorID:    doctorID,
		SlotsPerDay: doc.SlotsPerDay,
	}

	weekly, warn := ParseWeeklyAvailability(doc.Availability)
	if warn != nil {
		utils.GetLogger().Warn("Stored availability is malformed, using default template",
			zap.String("doctorId", doctorID), zap.Error(warn))
		dto.Warning = "stored availability was malformed; all days reset to unavailable"
	}
	dto.Availability = weekly

	slots, err := s.Slots.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots for doctor %s: %w", doctorID, err)
	}
	dto.TimeSlots = slots

	return dto, nil
}

// SaveWeeklyAvailability validates and persists the full seven-day template.
func (s *DefaultScheduleService) SaveWeeklyAvailability(ctx context.Context, doctorID string, weekly models.WeeklyAvailability) error {
	if _, err := s.loadDoctor(doctorID); err != nil {
		return err
	}

	serialized, err := SerializeWeeklyAvailability(weekly)
	if err != nil {
		return fmt.Errorf("invalid availability: %w", err)
	}

	if err := s.Doctors.UpdateSetDocument(doctorID, bson.M{"availability": serialized, "updated_at": time.Now()}); err != nil {
		return fmt.Errorf("failed to save availability: %w", err)
	}
	return nil
}

// RegenerateSlots is destructive-and-replace: it validates the template,
// clears the doctor's existing slots, then batch-inserts the generated set.
// Identical inputs with the same reference date produce an identical slot set.
func (s *DefaultScheduleService) RegenerateSlots(ctx context.Context, doctorID string, slotsPerDay int) (*models.DoctorScheduleDTO, error) {
	logger := utils.GetLogger()
	if slotsPerDay <= 0 {
		slotsPerDay = config.AppConfig.DefaultSlotsPerDay
	}
	slotsPerDay = ClampSlotsPerDay(slotsPerDay)

	doc, err := s.loadDoctor(doctorID)
	if err != nil {
		return nil, err
	}

	weekly, warn := ParseWeeklyAvailability(doc.Availability)
	if warn != nil {
		logger.Warn("Stored availability is malformed, using default template",
			zap.String("doctorId", doctorID), zap.Error(warn))
	}
	if !weekly.HasAvailableDay() {
		return nil, ErrNoAvailableDays
	}

	// Clearing first avoids duplicating slots; if it fails, nothing is inserted.
	deleted, err := s.Slots.DeleteAllByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear existing slots: %w", err)
	}
	logger.Info("Cleared existing slots",
		zap.String("doctorId", doctorID), zap.Int64("deleted", deleted))

	generated := GenerateSlots(doctorID, weekly, slotsPerDay, s.now())
	if len(generated) == 0 {
		// Every available day had an unparseable start or end clock.
		// InsertMany rejects an empty batch, so skip the insert.
		logger.Warn("Availability produced no slots", zap.String("doctorId", doctorID))
	} else if _, err := s.Slots.CreateMany(ctx, generated); err != nil {
		return nil, fmt.Errorf("failed to create timeslots: %w", err)
	}

	if err := s.Doctors.UpdateSetDocument(doctorID, bson.M{"slots_per_day": slotsPerDay, "updated_at": time.Now()}); err != nil {
		logger.Error("Failed to record slotsPerDay on doctor", zap.String("doctorId", doctorID), zap.Error(err))
	}

	// Re-read from storage so the response reflects the system of record.
	stored, err := s.Slots.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload slots: %w", err)
	}

	logger.Info("Regenerated slots",
		zap.String("doctorId", doctorID),
		zap.Int("slotsPerDay", slotsPerDay),
		zap.Int("generated", len(generated)))

	return &models.DoctorScheduleDTO{
		DoctorID:     doctorID,
		Availability: weekly,
		SlotsPerDay:  slotsPerDay,
		TimeSlots:    stored,
	}, nil
}

// GetSlots lists slots for a doctor, optionally restricted to one date.
func (s *DefaultScheduleService) GetSlots(ctx context.Context, doctorID, date string) ([]models.TimeSlot, error) {
	if date != "" {
		return s.Slots.GetByDoctorAndDate(ctx, doctorID, date)
	}
	return s.Slots.GetByDoctor(ctx, doctorID)
}

// DeleteSlot removes a single slot belonging to the doctor.
func (s *DefaultScheduleService) DeleteSlot(ctx context.Context, doctorID, slotID string) error {
	if err := s.Slots.DeleteByID(ctx, doctorID, slotID); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slotID, err)
	}
	return nil
}
