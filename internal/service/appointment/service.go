package appointment

import (
	"context"
	"strings"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	"github.com/jwalitptl/clinic-dashboard/internal/service/schedule"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
	apperrors "github.com/jwalitptl/clinic-dashboard/pkg/errors"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
	"github.com/jwalitptl/clinic-dashboard/pkg/search"
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

// PatientDirectory is the part of the patient service appointments depend on.
type PatientDirectory interface {
	NameOf(id string) string
	Exists(id string) bool
}

type Service struct {
	repo      repository.AppointmentRepository
	patients  PatientDirectory
	schedule  *schedule.Service
	validator validator.Validator
	auditor   *audit.Service
	metrics   *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, patients PatientDirectory, sched *schedule.Service, v validator.Validator, auditor *audit.Service, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Service{
		repo:      repo,
		patients:  patients,
		schedule:  sched,
		validator: v,
		auditor:   auditor,
		metrics:   m,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, req model.CreateAppointmentRequest) (model.Appointment, error) {
	req.PatientID = strings.TrimSpace(req.PatientID)
	result := s.validator.Validate(req)
	if req.PatientID != "" && !s.patients.Exists(req.PatientID) {
		result.Add("patient_id", "Patient not found")
	}
	if err := result.Err(); err != nil {
		return model.Appointment{}, err
	}

	day := datekey.MustParseDay(req.Date)
	apt := s.repo.Add(model.Appointment{
		PatientID:       req.PatientID,
		PatientName:     s.patients.NameOf(req.PatientID),
		Date:            day.String(),
		Time:            datekey.Canonical(req.Time),
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Notes:           req.Notes,
	})

	s.auditor.Log(ctx, model.AuditActionCreate, model.AuditEntityAppointment, apt.ID, &audit.LogOptions{Changes: apt})
	return apt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (model.Appointment, error) {
	apt, ok := s.repo.FindByID(id)
	if !ok {
		return model.Appointment{}, apperrors.NotFound("appointment", nil)
	}
	apt.PatientName = s.patients.NameOf(apt.PatientID)
	return apt, nil
}

// DeleteAppointment removes an appointment. Deleting an unknown id is not an error.
func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if s.repo.Remove(id) {
		s.auditor.Log(ctx, model.AuditActionDelete, model.AuditEntityAppointment, id, nil)
	}
	return nil
}

// ListAppointments returns appointments ordered by date then time. A date
// filter selects one calendar day.
func (s *Service) ListAppointments(ctx context.Context, filters model.AppointmentFilters) ([]model.ScheduledAppointment, error) {
	s.metrics.Searches.WithLabelValues(model.AuditEntityAppointment).Inc()

	var list []model.ScheduledAppointment
	if filters.Date != "" {
		day, err := datekey.ParseDay(filters.Date)
		if err != nil {
			return nil, apperrors.BadRequest("invalid date filter", err)
		}
		list = s.schedule.ForDay(ctx, day)
	} else {
		list = s.schedule.Sorted(ctx)
	}

	return search.Filter(list,
		search.Equal(func(a model.ScheduledAppointment) string { return a.PatientID }, filters.PatientID),
		search.Text(filters.SearchTerm,
			func(a model.ScheduledAppointment) string { return a.PatientName },
			func(a model.ScheduledAppointment) string { return a.Type },
			func(a model.ScheduledAppointment) string { return a.Notes },
		),
	), nil
}
