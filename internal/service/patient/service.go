package patient

import (
	"context"
	"strings"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	apperrors "github.com/jwalitptl/clinic-dashboard/pkg/errors"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
	"github.com/jwalitptl/clinic-dashboard/pkg/search"
	"github.com/jwalitptl/clinic-dashboard/pkg/sortpipe"
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

type Service struct {
	repo      repository.PatientRepository
	validator validator.Validator
	auditor   *audit.Service
	metrics   *metrics.Metrics
}

func NewService(repo repository.PatientRepository, v validator.Validator, auditor *audit.Service, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Service{repo: repo, validator: v, auditor: auditor, metrics: m}
}

func name(p model.Patient) string          { return p.Name }
func email(p model.Patient) string         { return p.Email }
func phone(p model.Patient) string         { return p.Phone }
func treatmentType(p model.Patient) string { return p.TreatmentType }

// ListPatients matches the query against name, email and treatment type.
func (s *Service) ListPatients(ctx context.Context, filters model.PatientFilters) []model.Patient {
	s.metrics.Searches.WithLabelValues(model.AuditEntityPatient).Inc()
	return search.Filter(s.repo.All(), search.Text(filters.SearchTerm, name, email, treatmentType))
}

// Lookup backs the patient picker: name and email ignore case, phone does not.
func (s *Service) Lookup(ctx context.Context, query string) []model.Patient {
	s.metrics.Searches.WithLabelValues("patient_lookup").Inc()
	return search.Filter(s.repo.All(), search.Any(
		search.Text(query, name, email),
		search.ContainsExact(query, phone),
	))
}

func (s *Service) GetPatient(ctx context.Context, id string) (model.Patient, error) {
	p, ok := s.repo.FindByID(id)
	if !ok {
		return model.Patient{}, apperrors.NotFound("patient", nil)
	}
	return p, nil
}

func (s *Service) CreatePatient(ctx context.Context, req model.CreatePatientRequest) (model.Patient, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(req).Err(); err != nil {
		return model.Patient{}, err
	}

	p := model.Patient{
		Name:              req.Name,
		Age:               req.Age,
		Gender:            req.Gender,
		Email:             req.Email,
		Phone:             req.Phone,
		TreatmentType:     req.TreatmentType,
		TreatmentProgress: req.TreatmentProgress,
	}
	if req.NextAppointment != nil {
		p.NextAppointment = *req.NextAppointment
	}
	p = s.repo.Add(p)

	s.auditor.Log(ctx, model.AuditActionCreate, model.AuditEntityPatient, p.ID, &audit.LogOptions{Changes: p})
	return p, nil
}

// RenamePatient changes a patient's name. Appointments, treatments and
// documents pick up the new name on their next read.
func (s *Service) RenamePatient(ctx context.Context, id string, req model.RenamePatientRequest) (model.Patient, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Validate(req).Err(); err != nil {
		return model.Patient{}, err
	}

	var old string
	p, err := s.repo.Update(id, func(p model.Patient) (model.Patient, error) {
		old = p.Name
		p.Name = req.Name
		return p, nil
	})
	if err != nil {
		return model.Patient{}, apperrors.NotFound("patient", err)
	}

	s.auditor.Log(ctx, model.AuditActionRename, model.AuditEntityPatient, id, &audit.LogOptions{
		Changes: map[string]string{"from": old, "to": p.Name},
	})
	return p, nil
}

// ByProgress orders patients by treatment progress.
func (s *Service) ByProgress(ctx context.Context, dir sortpipe.Direction) []model.Patient {
	return sortpipe.New(
		sortpipe.ByInt(func(p model.Patient) int { return p.TreatmentProgress }).Dir(dir),
	).Sort(s.repo.All())
}

// NameOf resolves a patient id to the current name, or UnknownPatientName.
func (s *Service) NameOf(id string) string {
	if p, ok := s.repo.FindByID(id); ok && p.Name != "" {
		return p.Name
	}
	return model.UnknownPatientName
}

func (s *Service) Exists(id string) bool {
	_, ok := s.repo.FindByID(id)
	return ok
}

func (s *Service) Count() int { return s.repo.Len() }

// Revision changes whenever any patient changes.
func (s *Service) Revision() uint64 { return s.repo.Revision() }
