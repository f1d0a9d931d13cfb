package repository

import (
	"errors"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
)

var ErrNotFound = errors.New("record not found")

// Record is an entity held by a Store, identified by a string id.
type Record[T any] interface {
	RecordID() string
	WithID(id string) T
}

// Cloner is implemented by records holding reference fields that a Store
// must copy on the way in and out.
type Cloner[T any] interface {
	Clone() T
}

// Store holds an ordered sequence of records with lookup by id.
type Store[T Record[T]] interface {
	// Add appends record, assigning an id when it has none, and returns the stored record.
	Add(record T) T
	// Remove deletes the first record with id. It reports whether anything was removed.
	Remove(id string) bool
	FindByID(id string) (T, bool)
	// All returns a copy of the records in insertion order.
	All() []T
	// Update replaces the record with id by the result of fn.
	Update(id string, fn func(T) (T, error)) (T, error)
	Len() int
	// Revision increases on every mutation.
	Revision() uint64
}

// All repository interfaces in one file
type (
	PatientRepository     = Store[model.Patient]
	AppointmentRepository = Store[model.Appointment]
	TreatmentRepository   = Store[model.TreatmentPlan]
	DocumentRepository    = Store[model.Document]
	ContactRepository     = Store[model.Contact]
	RadiographyRepository = Store[model.Radiography]
	CaptureRepository     = Store[model.CaptureSession]
	AuditRepository       = Store[model.AuditLog]
)
