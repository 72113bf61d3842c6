package prescription

import (
	"context"
	"errors"
	"testing"

	"medicore/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeAppointmentRepo struct {
	appts map[string]*models.Appointment
}

func (f *fakeAppointmentRepo) Create(context.Context, *models.Appointment) error { return nil }
func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	return f.appts[id], nil
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
func (f *fakeAppointmentRepo) UpdateStatus(context.Context, string, string) error { return nil }
func (f *fakeAppointmentRepo) Count(context.Context, bson.M) (int64, error)       { return 0, nil }

type fakePrescriptionRepo struct {
	stored    map[string]*models.Prescription
	lookupErr error
}

func (f *fakePrescriptionRepo) Create(_ context.Context, p *models.Prescription) error {
	cp := *p
	f.stored[p.ID] = &cp
	return nil
}
func (f *fakePrescriptionRepo) GetByID(_ context.Context, id string) (*models.Prescription, error) {
	return f.stored[id], nil
}
func (f *fakePrescriptionRepo) GetByPatient(context.Context, string) ([]models.Prescription, error) {
	return nil, nil
}
func (f *fakePrescriptionRepo) GetByDoctor(context.Context, string) ([]models.Prescription, error) {
	return nil, nil
}
func (f *fakePrescriptionRepo) GetByAppointment(_ context.Context, appointmentID string) (*models.Prescription, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, p := range f.stored {
		if p.AppointmentID == appointmentID {
			return p, nil
		}
	}
	// No prescription for this appointment is not an error, matching
	// the mongo repository's ErrNoDocuments mapping.
	return nil, nil
}

func newTestPrescriptionService() *DefaultPrescriptionService {
	return &DefaultPrescriptionService{
		Prescriptions: &fakePrescriptionRepo{stored: map[string]*models.Prescription{}},
		Appointments: &fakeAppointmentRepo{appts: map[string]*models.Appointment{
			"appt-1": {ID: "appt-1", DoctorID: "doc-1", PatientID: "pat-1", Date: "2025-06-09"},
		}},
	}
}

var validRequest = models.CreatePrescriptionRequest{
	AppointmentID: "appt-1",
	Diagnosis:     "Seasonal allergy",
	Medications: []models.Medication{
		{Name: "Cetirizine", Dosage: "10mg", Frequency: "once daily", DurationDays: 7},
	},
}

func TestCreatePrescription(t *testing.T) {
	svc := newTestPrescriptionService()

	p, err := svc.CreatePrescription(context.Background(), "doc-1", validRequest)
	if err != nil {
		t.Fatalf("CreatePrescription failed: %v", err)
	}

	if p.PatientID != "pat-1" {
		t.Errorf("patient should come from the appointment, got %q", p.PatientID)
	}
	if p.DoctorID != "doc-1" {
		t.Errorf("expected doctor doc-1, got %q", p.DoctorID)
	}
	if len(p.Medications) != 1 {
		t.Errorf("expected 1 medication, got %d", len(p.Medications))
	}
}

func TestCreatePrescriptionWrongDoctor(t *testing.T) {
	svc := newTestPrescriptionService()

	_, err := svc.CreatePrescription(context.Background(), "doc-2", validRequest)
	if !errors.Is(err, ErrNotPermitted) {
		t.Fatalf("expected ErrNotPermitted, got %v", err)
	}
}

func TestCreatePrescriptionUnknownAppointment(t *testing.T) {
	svc := newTestPrescriptionService()

	req := validRequest
	req.AppointmentID = "appt-404"
	_, err := svc.CreatePrescription(context.Background(), "doc-1", req)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestCreatePrescriptionMissIsNotAnError(t *testing.T) {
	svc := newTestPrescriptionService()

	// The very first prescription for an appointment must succeed: the
	// existence check reports a miss as (nil, nil), never as an error.
	if _, err := svc.CreatePrescription(context.Background(), "doc-1", validRequest); err != nil {
		t.Fatalf("first prescription for an appointment failed: %v", err)
	}
}

func TestCreatePrescriptionLookupFailureSurfaces(t *testing.T) {
	svc := newTestPrescriptionService()
	svc.Prescriptions.(*fakePrescriptionRepo).lookupErr = errors.New("connection reset")

	_, err := svc.CreatePrescription(context.Background(), "doc-1", validRequest)
	if err == nil {
		t.Fatal("expected lookup failure to surface")
	}
	if errors.Is(err, ErrAlreadyPrescribed) {
		t.Fatalf("lookup failure must not be mistaken for an existing prescription: %v", err)
	}
}

func TestCreatePrescriptionOncePerAppointment(t *testing.T) {
	svc := newTestPrescriptionService()

	if _, err := svc.CreatePrescription(context.Background(), "doc-1", validRequest); err != nil {
		t.Fatalf("first prescription failed: %v", err)
	}
	_, err := svc.CreatePrescription(context.Background(), "doc-1", validRequest)
	if !errors.Is(err, ErrAlreadyPrescribed) {
		t.Fatalf("expected ErrAlreadyPrescribed, got %v", err)
	}
}
