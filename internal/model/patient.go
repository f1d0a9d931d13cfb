package model

import (
	"time"
)

type Patient struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	Photo             string    `json:"photo,omitempty"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	TreatmentType     string    `json:"treatment_type"`
	TreatmentProgress int       `json:"treatment_progress"`
	NextAppointment   time.Time `json:"next_appointment"`
}

func (p Patient) RecordID() string { return p.ID }

func (p Patient) WithID(id string) Patient {
	p.ID = id
	return p
}

type CreatePatientRequest struct {
	Name              string     `json:"name" validate:"required"`
	Age               int        `json:"age" validate:"gte=0,lte=130"`
	Gender            string     `json:"gender"`
	Email             string     `json:"email" validate:"required,email"`
	Phone             string     `json:"phone"`
	TreatmentType     string     `json:"treatment_type"`
	TreatmentProgress int        `json:"treatment_progress" validate:"gte=0,lte=100"`
	NextAppointment   *time.Time `json:"next_appointment"`
}

type RenamePatientRequest struct {
	Name string `json:"name" validate:"required"`
}

type PatientFilters struct {
	SearchTerm string `form:"q"`
}
