package document

import (
	"context"
	"time"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	apperrors "github.com/jwalitptl/clinic-dashboard/pkg/errors"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
	"github.com/jwalitptl/clinic-dashboard/pkg/search"
	"github.com/jwalitptl/clinic-dashboard/pkg/sortpipe"
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

type PatientDirectory interface {
	NameOf(id string) string
	Exists(id string) bool
}

type Service struct {
	repo      repository.DocumentRepository
	patients  PatientDirectory
	validator validator.Validator
	auditor   *audit.Service
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewService(repo repository.DocumentRepository, patients PatientDirectory, v validator.Validator, auditor *audit.Service, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Service{repo: repo, patients: patients, validator: v, auditor: auditor, metrics: m, now: time.Now}
}

var (
	newestFirst = sortpipe.New(
		sortpipe.ByTime(func(d model.Document) time.Time { return d.UpdatedAt }).Dir(sortpipe.Desc),
	)
	oldestFirst = sortpipe.New(
		sortpipe.ByTime(func(d model.Document) time.Time { return d.CreatedAt }),
	)
)

// SearchDocuments matches title and description, narrows by category and
// orders newest (by last update) or oldest (by creation) first.
func (s *Service) SearchDocuments(ctx context.Context, filters model.DocumentFilters) ([]model.Document, error) {
	if err := s.validator.Validate(filters).Err(); err != nil {
		return nil, err
	}
	s.metrics.Searches.WithLabelValues(model.AuditEntityDocument).Inc()

	docs := search.Filter(s.resolve(s.repo.All()),
		search.Text(filters.SearchTerm,
			func(d model.Document) string { return d.Title },
			func(d model.Document) string { return d.Description },
		),
		search.Equal(func(d model.Document) string { return string(d.Category) }, filters.Category),
	)

	if filters.Sort == model.DocumentSortOldest {
		return oldestFirst.Sort(docs), nil
	}
	return newestFirst.Sort(docs), nil
}

func (s *Service) GetDocument(ctx context.Context, id string) (model.Document, error) {
	d, ok := s.repo.FindByID(id)
	if !ok {
		return model.Document{}, apperrors.NotFound("document", nil)
	}
	return s.resolve([]model.Document{d})[0], nil
}

// AssignPatient links a document to an existing patient, setting id and name together.
func (s *Service) AssignPatient(ctx context.Context, docID string, req model.AssignPatientRequest) (model.Document, error) {
	result := s.validator.Validate(req)
	if req.PatientID != "" && !s.patients.Exists(req.PatientID) {
		result.Add("patient_id", "Patient not found")
	}
	if err := result.Err(); err != nil {
		return model.Document{}, err
	}

	name := s.patients.NameOf(req.PatientID)
	doc, err := s.repo.Update(docID, func(d model.Document) (model.Document, error) {
		d.AssignedPatientID = req.PatientID
		d.AssignedPatientName = name
		d.UpdatedAt = s.now()
		return d, nil
	})
	if err != nil {
		return model.Document{}, apperrors.NotFound("document", err)
	}

	s.auditor.Log(ctx, model.AuditActionAssign, model.AuditEntityDocument, docID, &audit.LogOptions{
		Changes: map[string]string{"patient_id": req.PatientID},
	})
	return doc, nil
}

func (s *Service) Categories() []model.DocumentCategory {
	return append([]model.DocumentCategory(nil), model.DocumentCategories...)
}

// UnassignedCount is the number of documents without a patient.
func (s *Service) UnassignedCount(ctx context.Context) int {
	return len(search.Filter(s.repo.All(), func(d model.Document) bool { return d.AssignedPatientID == "" }))
}

func (s *Service) Count() int { return s.repo.Len() }

func (s *Service) resolve(docs []model.Document) []model.Document {
	for i := range docs {
		if docs[i].AssignedPatientID != "" {
			docs[i].AssignedPatientName = s.patients.NameOf(docs[i].AssignedPatientID)
		}
	}
	return docs
}
