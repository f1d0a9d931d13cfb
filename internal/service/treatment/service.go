package treatment

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
	apperrors "github.com/jwalitptl/clinic-dashboard/pkg/errors"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
	"github.com/jwalitptl/clinic-dashboard/pkg/search"
	"github.com/jwalitptl/clinic-dashboard/pkg/sortpipe"
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

const (
	SortProgress  = "progress"
	SortStartDate = "start_date"
	SortEndDate   = "end_date"
)

type PatientDirectory interface {
	NameOf(id string) string
	Exists(id string) bool
}

type Service struct {
	repo      repository.TreatmentRepository
	patients  PatientDirectory
	validator validator.Validator
	auditor   *audit.Service
	metrics   *metrics.Metrics
}

func NewService(repo repository.TreatmentRepository, patients PatientDirectory, v validator.Validator, auditor *audit.Service, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Service{repo: repo, patients: patients, validator: v, auditor: auditor, metrics: m}
}

func (s *Service) all() []model.TreatmentPlan {
	plans := s.repo.All()
	for i := range plans {
		plans[i].PatientName = s.patients.NameOf(plans[i].PatientID)
	}
	return plans
}

// ListTreatments matches the query against patient name and treatment type,
// then applies the requested ordering. Without one, store order is kept.
func (s *Service) ListTreatments(ctx context.Context, filters model.TreatmentFilters) ([]model.TreatmentPlan, error) {
	s.metrics.Searches.WithLabelValues(model.AuditEntityTreatment).Inc()
	plans := search.Filter(s.all(), search.Text(filters.SearchTerm,
		func(t model.TreatmentPlan) string { return t.PatientName },
		func(t model.TreatmentPlan) string { return t.Type },
	))

	if filters.Sort == "" {
		return plans, nil
	}
	key, err := sortKey(filters.Sort)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	return sortpipe.New(key.Dir(sortpipe.ParseDirection(filters.Dir))).Sort(plans), nil
}

func sortKey(field string) (sortpipe.Key[model.TreatmentPlan], error) {
	switch field {
	case SortProgress:
		return sortpipe.ByInt(func(t model.TreatmentPlan) int { return t.Progress }), nil
	case SortStartDate:
		return sortpipe.ByDay(func(t model.TreatmentPlan) datekey.Day { return t.StartDate }), nil
	case SortEndDate:
		return sortpipe.ByDay(func(t model.TreatmentPlan) datekey.Day { return t.EstimatedEndDate }), nil
	}
	return sortpipe.Key[model.TreatmentPlan]{}, fmt.Errorf("unknown sort field %q", field)
}

func (s *Service) GetTreatment(ctx context.Context, id string) (model.TreatmentPlan, error) {
	t, ok := s.repo.FindByID(id)
	if !ok {
		return model.TreatmentPlan{}, apperrors.NotFound("treatment", nil)
	}
	t.PatientName = s.patients.NameOf(t.PatientID)
	return t, nil
}

// ActiveCount is the number of plans not yet completed.
func (s *Service) ActiveCount(ctx context.Context) int {
	n := 0
	for _, t := range s.repo.All() {
		if t.Status != model.TreatmentStatusCompleted && t.Progress < 100 {
			n++
		}
	}
	return n
}

func (s *Service) CreateTreatment(ctx context.Context, req model.CreateTreatmentRequest) (model.TreatmentPlan, error) {
	result := s.validator.Validate(req)
	if req.PatientID != "" && !s.patients.Exists(req.PatientID) {
		result.Add("patient_id", "Patient not found")
	}
	if !result.OK() {
		return model.TreatmentPlan{}, result.Err()
	}

	start := datekey.MustParseDay(req.StartDate)
	end := addMonths(start, req.DurationMonths)
	if req.EstimatedEndDate != "" {
		end = datekey.MustParseDay(req.EstimatedEndDate)
		if end.Before(start) {
			result.Add("estimated_end_date", "End date cannot be before start date")
			return model.TreatmentPlan{}, result.Err()
		}
	}

	plan := s.repo.Add(model.TreatmentPlan{
		PatientID:        req.PatientID,
		PatientName:      s.patients.NameOf(req.PatientID),
		Type:             model.TreatmentTypes[req.Type],
		Status:           StatusFor(0),
		StartDate:        start,
		EstimatedEndDate: end,
		DurationMonths:   req.DurationMonths,
		NextAppointment:  start,
		Notes:            req.Notes,
		Milestones: []model.Milestone{
			{Title: "Initial Fitting", Description: "Installation and first adjustments", Date: &start},
		},
	})

	s.auditor.Log(ctx, model.AuditActionCreate, model.AuditEntityTreatment, plan.ID, &audit.LogOptions{Changes: plan})
	return plan, nil
}

// ToggleMilestone flips the completed flag of the milestone at index.
func (s *Service) ToggleMilestone(ctx context.Context, id string, index int) (model.TreatmentPlan, error) {
	plan, err := s.repo.Update(id, func(t model.TreatmentPlan) (model.TreatmentPlan, error) {
		if index < 0 || index >= len(t.Milestones) {
			return t, apperrors.BadRequest(fmt.Sprintf("milestone %d does not exist", index), nil)
		}
		t.Milestones[index].Completed = !t.Milestones[index].Completed
		return t, nil
	})
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return model.TreatmentPlan{}, err
		}
		return model.TreatmentPlan{}, apperrors.NotFound("treatment", err)
	}

	s.auditor.Log(ctx, model.AuditActionToggle, model.AuditEntityTreatment, id, &audit.LogOptions{
		Changes: map[string]interface{}{"milestone": index, "completed": plan.Milestones[index].Completed},
	})
	plan.PatientName = s.patients.NameOf(plan.PatientID)
	return plan, nil
}

// StatusFor labels a progress percentage.
func StatusFor(progress int) string {
	switch {
	case progress >= 100:
		return model.TreatmentStatusCompleted
	case progress >= 80:
		return model.TreatmentStatusNearCompletion
	case progress >= 20:
		return model.TreatmentStatusInProgress
	default:
		return model.TreatmentStatusJustStarted
	}
}

func addMonths(d datekey.Day, months int) datekey.Day {
	return datekey.DayOf(d.Time(time.UTC).AddDate(0, months, 0))
}
