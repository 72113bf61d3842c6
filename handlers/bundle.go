package handlers

import (
	"medicore/services/admin"
	"medicore/services/appointment"
	"medicore/services/billing"
	"medicore/services/doctor"
	"medicore/services/patient"
	"medicore/services/prescription"
	"medicore/services/schedule"

	doctorRepoPkg "medicore/database/repository/doctor"
	patientRepoPkg "medicore/database/repository/patient"
)

// HandlerBundle groups all endpoint handlers for route registration. The
// repos back the auth middleware's DB fallback.
type HandlerBundle struct {
	PatientRepo patientRepoPkg.PatientRepository
	DoctorRepo  doctorRepoPkg.DoctorRepository

	Patient      *PatientHandler
	Doctor       *DoctorHandler
	Schedule     *ScheduleHandler
	Appointment  *AppointmentHandler
	Prescription *PrescriptionHandler
	Billing      *BillingHandler
	Admin        *AdminHandler
}

// PatientHandler serves patient account endpoints.
type PatientHandler struct {
	PatientService patient.PatientService
}

// DoctorHandler serves doctor account endpoints.
type DoctorHandler struct {
	DoctorService doctor.DoctorService
}

// ScheduleHandler serves availability and slot endpoints.
type ScheduleHandler struct {
	ScheduleService schedule.Service
}

// AppointmentHandler serves booking endpoints.
type AppointmentHandler struct {
	AppointmentService appointment.AppointmentService
}

// PrescriptionHandler serves prescription endpoints.
type PrescriptionHandler struct {
	PrescriptionService prescription.PrescriptionService
}

// BillingHandler serves billing and payment endpoints.
type BillingHandler struct {
	BillingService billing.BillingService
}

// AdminHandler serves the admin dashboard endpoints.
type AdminHandler struct {
	AdminService admin.AdminService
}
