package models

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	TotalPatients     int64   `json:"total_patients"`
	TotalDoctors      int64   `json:"total_doctors"`
	PendingDoctors    int64   `json:"pending_doctors"`
	TotalAppointments int64   `json:"total_appointments"`
	AppointmentsToday int64   `json:"appointments_today"`
	PendingBills      int64   `json:"pending_bills"`
	RevenueCollected  float64 `json:"revenue_collected"`
}
