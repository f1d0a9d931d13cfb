package model

import "time"

type DocumentCategory string

const (
	DocumentCategoryConsent   DocumentCategory = "Consent"
	DocumentCategoryTreatment DocumentCategory = "Treatment"
	DocumentCategoryMedical   DocumentCategory = "Medical"
	DocumentCategoryFinancial DocumentCategory = "Financial"
	DocumentCategoryOther     DocumentCategory = "Other"
)

var DocumentCategories = []DocumentCategory{
	DocumentCategoryConsent,
	DocumentCategoryTreatment,
	DocumentCategoryMedical,
	DocumentCategoryFinancial,
	DocumentCategoryOther,
}

type Document struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	Category            DocumentCategory `json:"category"`
	Description         string           `json:"description"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	AssignedPatientID   string           `json:"assigned_patient_id,omitempty"`
	AssignedPatientName string           `json:"assigned_patient_name,omitempty"`
}

func (d Document) RecordID() string { return d.ID }

func (d Document) WithID(id string) Document {
	d.ID = id
	return d
}

const (
	DocumentSortNewest = "newest"
	DocumentSortOldest = "oldest"
)

type DocumentFilters struct {
	SearchTerm string `form:"q"`
	Category   string `form:"category" validate:"omitempty,oneof=Consent Treatment Medical Financial Other"`
	Sort       string `form:"sort" validate:"omitempty,oneof=newest oldest"`
}

type AssignPatientRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
}
