package model

import (
	"slices"

	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

const (
	TreatmentStatusJustStarted    = "Just Started"
	TreatmentStatusInProgress     = "In Progress"
	TreatmentStatusNearCompletion = "Near Completion"
	TreatmentStatusCompleted      = "Completed"
)

// TreatmentTypes maps form values to display names.
var TreatmentTypes = map[string]string{
	"braces":           "Braces",
	"invisalign":       "Invisalign",
	"retainer":         "Retainer",
	"palatal_expander": "Palatal Expander",
}

type Milestone struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Completed   bool         `json:"completed"`
	Date        *datekey.Day `json:"date,omitempty"`
}

type TreatmentPlan struct {
	ID               string      `json:"id"`
	PatientID        string      `json:"patient_id"`
	PatientName      string      `json:"patient_name"`
	Type             string      `json:"type"`
	Status           string      `json:"status"`
	StartDate        datekey.Day `json:"start_date"`
	EstimatedEndDate datekey.Day `json:"estimated_end_date"`
	Progress         int         `json:"progress"`
	DurationMonths   int         `json:"duration_months"`
	NextAppointment  datekey.Day `json:"next_appointment"`
	Notes            string      `json:"notes"`
	Milestones       []Milestone `json:"milestones,omitempty"`
}

func (t TreatmentPlan) RecordID() string { return t.ID }

func (t TreatmentPlan) WithID(id string) TreatmentPlan {
	t.ID = id
	return t
}

// Clone copies the milestone slice so the copy can be changed independently.
func (t TreatmentPlan) Clone() TreatmentPlan {
	t.Milestones = slices.Clone(t.Milestones)
	return t
}

type CreateTreatmentRequest struct {
	PatientID        string `json:"patient_id" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=braces invisalign retainer palatal_expander"`
	StartDate        string `json:"start_date" validate:"required,isodate"`
	EstimatedEndDate string `json:"estimated_end_date" validate:"omitempty,isodate"`
	DurationMonths   int    `json:"duration_months" validate:"gte=1,lte=60"`
	Notes            string `json:"notes" validate:"max=2000"`
}

type TreatmentFilters struct {
	SearchTerm string `form:"q"`
	Sort       string `form:"sort"`
	Dir        string `form:"dir"`
}
