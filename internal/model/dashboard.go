package model

type DashboardStats struct {
	Patients             int `json:"patients"`
	Appointments         int `json:"appointments"`
	UpcomingAppointments int `json:"upcoming_appointments"`
	ActiveTreatments     int `json:"active_treatments"`
	Documents            int `json:"documents"`
	UnassignedDocuments  int `json:"unassigned_documents"`
}

type PatientProgress struct {
	PatientID     string `json:"patient_id"`
	Name          string `json:"name"`
	TreatmentType string `json:"treatment_type"`
	Progress      int    `json:"progress"`
}

type Dashboard struct {
	Stats        DashboardStats         `json:"stats"`
	Progress     []PatientProgress      `json:"progress"`
	Upcoming     []ScheduledAppointment `json:"upcoming"`
	CalendarDays []DateCount            `json:"calendar_days"`
}
