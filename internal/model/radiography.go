package model

import "time"

type RadiographyType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var RadiographyTypes = []RadiographyType{
	{ID: "panoramic", Name: "Panoramic"},
	{ID: "cephalometric", Name: "Cephalometric"},
	{ID: "periapical", Name: "Periapical"},
	{ID: "bitewing", Name: "Bitewing"},
	{ID: "cbct", Name: "CBCT (Cone Beam CT)"},
}

// RadiographyTypeName returns the display name of a type id, or the id itself.
func RadiographyTypeName(id string) string {
	for _, t := range RadiographyTypes {
		if t.ID == id {
			return t.Name
		}
	}
	return id
}

type Radiography struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	ImageURL  string `json:"image_url"`
	Notes     string `json:"notes"`
}

func (r Radiography) RecordID() string { return r.ID }

func (r Radiography) WithID(id string) Radiography {
	r.ID = id
	return r
}

// RadiographyView is a radiography joined with its patient's current name.
type RadiographyView struct {
	Radiography
	PatientName string `json:"patient_name"`
}

type CaptureState string

const (
	CaptureStateIdle      CaptureState = "idle"
	CaptureStateCapturing CaptureState = "capturing"
	CaptureStateComplete  CaptureState = "complete"
	CaptureStateCancelled CaptureState = "cancelled"
)

type CaptureSession struct {
	ID            string       `json:"id"`
	PatientID     string       `json:"patient_id"`
	PatientName   string       `json:"patient_name"`
	Type          string       `json:"type"`
	Notes         string       `json:"notes"`
	State         CaptureState `json:"state"`
	CreatedAt     time.Time    `json:"created_at"`
	StartedAt     *time.Time   `json:"started_at,omitempty"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	RadiographyID string       `json:"radiography_id,omitempty"`
}

func (s CaptureSession) RecordID() string { return s.ID }

func (s CaptureSession) WithID(id string) CaptureSession {
	s.ID = id
	return s
}

type StartCaptureRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=panoramic cephalometric periapical bitewing cbct"`
	Notes     string `json:"notes" validate:"max=2000"`
}
