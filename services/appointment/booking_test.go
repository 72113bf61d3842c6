package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"medicore/models"
	"medicore/utils"

	timeslotRepo "medicore/database/repository/timeslot"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func (f *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error)   { return f.doctors[id], nil }
func (f *fakeDoctorRepo) GetByEmail(string) (*models.Doctor, error)   { return nil, nil }
func (f *fakeDoctorRepo) GetAll() ([]models.Doctor, error)            { return nil, nil }
func (f *fakeDoctorRepo) GetApproved(string) ([]models.Doctor, error) { return nil, nil }
func (f *fakeDoctorRepo) Create(*models.Doctor) error                 { return nil }
func (f *fakeDoctorRepo) Update(*models.Doctor) error                 { return nil }
func (f *fakeDoctorRepo) UpdateSetDocument(string, bson.M) error      { return nil }
func (f *fakeDoctorRepo) Delete(string) error                         { return nil }
func (f *fakeDoctorRepo) Count(bson.M) (int64, error)                 { return 0, nil }

type fakeSlotRepo struct {
	slots      map[string]*models.TimeSlot
	increments int
	decrements int
	full       bool
}

func (f *fakeSlotRepo) CreateMany(context.Context, []models.TimeSlot) ([]string, error) {
	return nil, nil
}
func (f *fakeSlotRepo) DeleteAllByDoctor(context.Context, string) (int64, error) { return 0, nil }
func (f *fakeSlotRepo) DeleteByID(context.Context, string, string) error         { return nil }
func (f *fakeSlotRepo) GetByDoctor(context.Context, string) ([]models.TimeSlot, error) {
	return nil, nil
}
func (f *fakeSlotRepo) GetByDoctorAndDate(context.Context, string, string) ([]models.TimeSlot, error) {
	return nil, nil
}
func (f *fakeSlotRepo) GetByID(_ context.Context, _, slotID string) (*models.TimeSlot, error) {
	return f.slots[slotID], nil
}
func (f *fakeSlotRepo) IncrementBooked(context.Context, string, string) error {
	if f.full {
		return timeslotRepo.ErrSlotUnavailable
	}
	f.increments++
	return nil
}
func (f *fakeSlotRepo) DecrementBooked(context.Context, string, string) error {
	f.decrements++
	return nil
}

type fakeAppointmentRepo struct {
	stored     map[string]*models.Appointment
	failCreate bool
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	cp := *appt
	f.stored[appt.ID] = &cp
	return nil
}
func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	return f.stored[id], nil
}
func (f *fakeAppointmentRepo) GetByPatient(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) GetByDoctor(context.Context, string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) GetByDoctorAndDate(context.Context, string, string) ([]models.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id, status string) error {
	appt, ok := f.stored[id]
	if !ok {
		return errors.New("not found")
	}
	appt.Status = status
	return nil
}
func (f *fakeAppointmentRepo) Count(context.Context, bson.M) (int64, error) { return 0, nil }

func newTestService() (*DefaultAppointmentService, *fakeSlotRepo, *fakeAppointmentRepo) {
	slots := &fakeSlotRepo{
		slots: map[string]*models.TimeSlot{
			"slot-1": {
				ID:        "slot-1",
				DoctorID:  "doc-1",
				Date:      "2025-06-09",
				StartTime: "09:00:00",
				EndTime:   "09:30:00",
			},
		},
	}
	appts := &fakeAppointmentRepo{stored: map[string]*models.Appointment{}}
	svc := &DefaultAppointmentService{
		Appointments: appts,
		Slots:        slots,
		Doctors: &fakeDoctorRepo{doctors: map[string]*models.Doctor{
			"doc-1": {ID: "doc-1", FullName: "Asha Rao", Approved: true},
		}},
		Now: func() time.Time { return time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC) },
	}
	return svc, slots, appts
}

func TestBookAppointmentClaimsSlot(t *testing.T) {
	svc, slots, appts := newTestService()

	appt, err := svc.BookAppointment(context.Background(), "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
		Reason:   "checkup",
	})
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}

	if appt.Status != models.AppointmentBooked {
		t.Errorf("expected status %q, got %q", models.AppointmentBooked, appt.Status)
	}
	if appt.Date != "2025-06-09" || appt.StartTime != "09:00:00" || appt.EndTime != "09:30:00" {
		t.Errorf("slot timing not copied onto appointment: %+v", appt)
	}
	if slots.increments != 1 {
		t.Errorf("expected 1 capacity claim, got %d", slots.increments)
	}
	if len(appts.stored) != 1 {
		t.Errorf("expected 1 stored appointment, got %d", len(appts.stored))
	}
}

func TestBookAppointmentFullSlot(t *testing.T) {
	svc, slots, appts := newTestService()
	slots.full = true

	_, err := svc.BookAppointment(context.Background(), "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if len(appts.stored) != 0 {
		t.Errorf("no appointment should be stored for a full slot")
	}
}

func TestBookAppointmentRollsBackOnCreateFailure(t *testing.T) {
	svc, slots, appts := newTestService()
	appts.failCreate = true

	_, err := svc.BookAppointment(context.Background(), "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
	})
	if err == nil {
		t.Fatal("expected an error when the appointment insert fails")
	}
	if slots.decrements != 1 {
		t.Errorf("expected the claimed capacity to be released, decrements=%d", slots.decrements)
	}
}

func TestBookAppointmentUnknownDoctor(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.BookAppointment(context.Background(), "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-404",
		SlotID:   "slot-1",
	})
	if err == nil {
		t.Fatal("expected an error for an unknown doctor")
	}
}

func TestBookAppointmentUnknownSlot(t *testing.T) {
	svc, slots, appts := newTestService()

	_, err := svc.BookAppointment(context.Background(), "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-404",
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for a missing slot, got %v", err)
	}
	if slots.increments != 0 || len(appts.stored) != 0 {
		t.Error("nothing should be claimed or stored for a missing slot")
	}
}

func TestCancelAppointmentUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.CancelAppointment(context.Background(), "appt-404", "pat-1", utils.RolePatient)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestCancelAppointmentReleasesSlot(t *testing.T) {
	svc, slots, _ := newTestService()

	appt, err := svc.BookAppointment(context.Background(), "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
	})
	if err != nil {
		t.Fatalf("BookAppointment failed: %v", err)
	}

	if err := svc.CancelAppointment(context.Background(), appt.ID, "pat-1", utils.RolePatient); err != nil {
		t.Fatalf("CancelAppointment failed: %v", err)
	}
	if slots.decrements != 1 {
		t.Errorf("expected slot capacity release on cancel, decrements=%d", slots.decrements)
	}

	got, _ := svc.GetAppointmentByID(context.Background(), appt.ID)
	if got.Status != models.AppointmentCancelled {
		t.Errorf("expected status cancelled, got %q", got.Status)
	}
}

func TestCancelAppointmentWrongPatient(t *testing.T) {
	svc, _, _ := newTestService()

	appt, _ := svc.BookAppointment(context.Background(), "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
	})

	err := svc.CancelAppointment(context.Background(), appt.ID, "pat-2", utils.RolePatient)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
}

func TestCancelAppointmentTwice(t *testing.T) {
	svc, _, _ := newTestService()

	appt, _ := svc.BookAppointment(context.Background(), "pat-1", models.BookAppointmentRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
	})

	if err := svc.CancelAppointment(context.Background(), appt.ID, "pat-1", utils.RolePatient); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	err := svc.CancelAppointment(context.Background(), appt.ID, "pat-1", utils.RolePatient)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second cancel, got %v", err)
	}
}

func TestReminderFireTimeUsesLocalClock(t *testing.T) {
	appt := &models.Appointment{Date: "2025-06-09", StartTime: "09:00:00"}

	fireAt, err := reminderFireTime(appt)
	if err != nil {
		t.Fatalf("reminderFireTime failed: %v", err)
	}
	want := time.Date(2025, time.June, 9, 8, 0, 0, 0, time.Local)
	if !fireAt.Equal(want) {
		t.Errorf("expected reminder at %v, got %v", want, fireAt)
	}
	if fireAt.Location() != time.Local {
		t.Error("slot clocks must be read in the server's location")
	}
}

func TestReminderFireTimeRejectsMalformedStart(t *testing.T) {
	appt := &models.Appointment{Date: "2025-06-09", StartTime: "nine"}
	if _, err := reminderFireTime(appt); err == nil {
		t.Fatal("expected a parse error for a malformed start time")
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{"booked to confirmed", models.AppointmentBooked, models.AppointmentConfirmed, false},
		{"booked to completed", models.AppointmentBooked, models.AppointmentCompleted, false},
		{"confirmed to completed", models.AppointmentConfirmed, models.AppointmentCompleted, false},
		{"completed to confirmed", models.AppointmentCompleted, models.AppointmentConfirmed, true},
		{"cancelled to completed", models.AppointmentCancelled, models.AppointmentCompleted, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, appts := newTestService()
			appts.stored["a1"] = &models.Appointment{
				ID:       "a1",
				DoctorID: "doc-1",
				Status:   tc.from,
			}

			_, err := svc.UpdateStatus(context.Background(), "doc-1", "a1", tc.to)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Fatalf("expected ErrInvalidTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus failed: %v", err)
			}
			if appts.stored["a1"].Status != tc.to {
				t.Errorf("expected status %q, got %q", tc.to, appts.stored["a1"].Status)
			}
		})
	}
}

func TestUpdateStatusWrongDoctor(t *testing.T) {
	svc, _, appts := newTestService()
	appts.stored["a1"] = &models.Appointment{ID: "a1", DoctorID: "doc-1", Status: models.AppointmentBooked}

	_, err := svc.UpdateStatus(context.Background(), "doc-2", "a1", models.AppointmentConfirmed)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
}
