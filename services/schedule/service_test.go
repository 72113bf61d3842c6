package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"medicore/config"
	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeDoctorRepo struct {
	doctor  *models.Doctor
	updates []bson.M
}

func (f *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	if f.doctor != nil && f.doctor.ID == id {
		return f.doctor, nil
	}
	return nil, nil
}
func (f *fakeDoctorRepo) GetByEmail(string) (*models.Doctor, error)   { return nil, nil }
func (f *fakeDoctorRepo) GetAll() ([]models.Doctor, error)            { return nil, nil }
func (f *fakeDoctorRepo) GetApproved(string) ([]models.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) Create(*models.Doctor) error                 { return nil }
func (f *fakeDoctorRepo) Update(*models.Doctor) error                 { return nil }
func (f *fakeDoctorRepo) Delete(string) error                         { return nil }
func (f *fakeDoctorRepo) Count(bson.M) (int64, error)                 { return 0, nil }
func (f *fakeDoctorRepo) UpdateSetDocument(id string, doc bson.M) error {
	f.updates = append(f.updates, doc)
	return nil
}

type fakeSlotRepo struct {
	stored      []models.TimeSlot
	deleteCalls int
	createCalls int
	failClear   bool
}

func (f *fakeSlotRepo) CreateMany(_ context.Context, slots []models.TimeSlot) ([]string, error) {
	f.createCalls++
	f.stored = append(f.stored, slots...)
	ids := make([]string, len(slots))
	return ids, nil
}

func (f *fakeSlotRepo) DeleteAllByDoctor(_ context.Context, doctorID string) (int64, error) {
	f.deleteCalls++
	if f.failClear {
		return 0, errors.New("storage unavailable")
	}
	n := int64(len(f.stored))
	f.stored = nil
	return n, nil
}

func (f *fakeSlotRepo) DeleteByID(_ context.Context, _, _ string) error { return nil }

func (f *fakeSlotRepo) GetByDoctor(_ context.Context, doctorID string) ([]models.TimeSlot, error) {
	return f.stored, nil
}

func (f *fakeSlotRepo) GetByDoctorAndDate(_ context.Context, _, date string) ([]models.TimeSlot, error) {
	var out []models.TimeSlot
	for _, s := range f.stored {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _, _ string) (*models.TimeSlot, error) {
	return nil, nil
}
func (f *fakeSlotRepo) IncrementBooked(_ context.Context, _, _ string) error { return nil }
func (f *fakeSlotRepo) DecrementBooked(_ context.Context, _, _ string) error { return nil }

const mondayAvailability = `{"Monday":{"available":true,"startTime":"09:00","endTime":"17:00","breakStart":"12:00","breakEnd":"13:00"}}`

func newTestService(doctor *models.Doctor, slots *fakeSlotRepo) *DefaultScheduleService {
	return &DefaultScheduleService{
		Doctors: &fakeDoctorRepo{doctor: doctor},
		Slots:   slots,
		Now:     func() time.Time { return refDate },
	}
}

func TestRegenerateSlotsNoAvailableDays(t *testing.T) {
	slots := &fakeSlotRepo{}
	svc := newTestService(&models.Doctor{ID: "doc-1", Availability: ""}, slots)

	_, err := svc.RegenerateSlots(context.Background(), "doc-1", 10)
	if !errors.Is(err, ErrNoAvailableDays) {
		t.Fatalf("expected ErrNoAvailableDays, got %v", err)
	}
	if slots.deleteCalls != 0 || slots.createCalls != 0 {
		t.Errorf("no storage calls expected; got %d deletes, %d creates", slots.deleteCalls, slots.createCalls)
	}
}

func TestRegenerateSlotsMalformedAvailabilityFallsBack(t *testing.T) {
	// Malformed stored availability degrades to the all-unavailable default,
	// which then fails the available-day validation.
	slots := &fakeSlotRepo{}
	svc := newTestService(&models.Doctor{ID: "doc-1", Availability: `{"Monday": garbage`}, slots)

	_, err := svc.RegenerateSlots(context.Background(), "doc-1", 10)
	if !errors.Is(err, ErrNoAvailableDays) {
		t.Fatalf("expected ErrNoAvailableDays, got %v", err)
	}
}

func TestRegenerateSlotsClearFailureAborts(t *testing.T) {
	slots := &fakeSlotRepo{failClear: true}
	svc := newTestService(&models.Doctor{ID: "doc-1", Availability: mondayAvailability}, slots)

	_, err := svc.RegenerateSlots(context.Background(), "doc-1", 10)
	if err == nil {
		t.Fatal("expected an error when clearing fails")
	}
	if slots.createCalls != 0 {
		t.Errorf("expected zero create calls after a clear failure, got %d", slots.createCalls)
	}
}

func TestRegenerateSlotsReplacesExisting(t *testing.T) {
	slots := &fakeSlotRepo{stored: []models.TimeSlot{{ID: "stale", DoctorID: "doc-1", Date: "2025-01-01"}}}
	svc := newTestService(&models.Doctor{ID: "doc-1", Availability: mondayAvailability}, slots)

	dto, err := svc.RegenerateSlots(context.Background(), "doc-1", 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 5 Mondays in the window, 14 slots each, stale slot gone.
	if len(dto.TimeSlots) != 70 {
		t.Fatalf("expected 70 slots, got %d", len(dto.TimeSlots))
	}
	for _, s := range dto.TimeSlots {
		if s.ID == "stale" {
			t.Fatal("stale slot survived regeneration")
		}
	}
	if slots.deleteCalls != 1 || slots.createCalls != 1 {
		t.Errorf("expected one clear and one batch insert; got %d and %d", slots.deleteCalls, slots.createCalls)
	}
}

func TestRegenerateSlotsUnparseableClocksSkipInsert(t *testing.T) {
	// Valid JSON with clock strings no generator day can use. Only
	// out-of-band writes can store this, but it must not turn into an
	// empty InsertMany after the destructive clear.
	raw := `{"Monday":{"available":true,"startTime":"soon","endTime":"later"}}`
	slots := &fakeSlotRepo{stored: []models.TimeSlot{{ID: "stale", DoctorID: "doc-1"}}}
	svc := newTestService(&models.Doctor{ID: "doc-1", Availability: raw}, slots)

	dto, err := svc.RegenerateSlots(context.Background(), "doc-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots.deleteCalls != 1 {
		t.Errorf("expected the clear to run, got %d delete calls", slots.deleteCalls)
	}
	if slots.createCalls != 0 {
		t.Errorf("an empty generation must not reach the batch insert, got %d create calls", slots.createCalls)
	}
	if len(dto.TimeSlots) != 0 {
		t.Errorf("expected an empty slot set, got %d", len(dto.TimeSlots))
	}
}

func TestRegenerateSlotsDefaultTarget(t *testing.T) {
	prev := config.AppConfig.DefaultSlotsPerDay
	config.AppConfig.DefaultSlotsPerDay = 4
	t.Cleanup(func() { config.AppConfig.DefaultSlotsPerDay = prev })

	slots := &fakeSlotRepo{}
	svc := newTestService(&models.Doctor{ID: "doc-1", Availability: mondayAvailability}, slots)

	// A zero target defers to DEFAULT_SLOTS_PER_DAY.
	dto, err := svc.RegenerateSlots(context.Background(), "doc-1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.SlotsPerDay != 4 {
		t.Errorf("expected the configured default of 4 slots per day, got %d", dto.SlotsPerDay)
	}
	if len(dto.TimeSlots) != 20 {
		t.Errorf("expected 5 Mondays of 4 slots, got %d", len(dto.TimeSlots))
	}
}

func TestRegenerateSlotsDeterministic(t *testing.T) {
	doctor := &models.Doctor{ID: "doc-1", Availability: mondayAvailability}

	run := func() []models.TimeSlot {
		slots := &fakeSlotRepo{}
		svc := newTestService(doctor, slots)
		dto, err := svc.RegenerateSlots(context.Background(), "doc-1", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return dto.TimeSlots
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Date != b[i].Date || a[i].StartTime != b[i].StartTime || a[i].EndTime != b[i].EndTime {
			t.Fatalf("regeneration is not deterministic at index %d", i)
		}
	}
}

func TestRegenerateSlotsUnknownDoctor(t *testing.T) {
	svc := newTestService(&models.Doctor{ID: "doc-1"}, &fakeSlotRepo{})
	_, err := svc.RegenerateSlots(context.Background(), "missing", 10)
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestGetScheduleMalformedAvailabilityWarns(t *testing.T) {
	svc := newTestService(&models.Doctor{ID: "doc-1", Availability: `not json at all`, SlotsPerDay: 10}, &fakeSlotRepo{})

	dto, err := svc.GetSchedule(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Warning == "" {
		t.Error("expected a warning for malformed stored availability")
	}
	if dto.Availability.HasAvailableDay() {
		t.Error("fallback template should have no available day")
	}
}
