package model

import (
	"time"

	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

// Appointment is stored as entered. Date is an ISO date and Time a wall-clock
// string; records created through the service carry a canonical 24h time.
type Appointment struct {
	ID              string `json:"id"`
	PatientID       string `json:"patient_id"`
	PatientName     string `json:"patient_name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Type            string `json:"type"`
	Notes           string `json:"notes"`
}

func (a Appointment) RecordID() string { return a.ID }

func (a Appointment) WithID(id string) Appointment {
	a.ID = id
	return a
}

type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id" validate:"required"`
	Date            string `json:"date" validate:"required,isodate"`
	Time            string `json:"time" validate:"required,clock"`
	DurationMinutes int    `json:"duration_minutes" validate:"gt=0,lte=480"`
	Type            string `json:"type" validate:"required"`
	Notes           string `json:"notes" validate:"max=1000"`
}

type AppointmentFilters struct {
	SearchTerm string `form:"q"`
	Date       string `form:"date"`
	PatientID  string `form:"patient_id"`
}

// ScheduledAppointment is an appointment whose date and time parsed cleanly.
type ScheduledAppointment struct {
	Appointment
	Day   datekey.Day   `json:"-"`
	Clock datekey.Clock `json:"-"`
	Start time.Time     `json:"start"`
	End   time.Time     `json:"end"`
}
