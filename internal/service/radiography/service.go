package radiography

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
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

const placeholderImage = "/placeholder.svg"

type PatientDirectory interface {
	NameOf(id string) string
	Exists(id string) bool
}

type Service struct {
	repo      repository.RadiographyRepository
	sessions  repository.CaptureRepository
	patients  PatientDirectory
	validator validator.Validator
	auditor   *audit.Service
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewService(repo repository.RadiographyRepository, sessions repository.CaptureRepository, patients PatientDirectory, v validator.Validator, auditor *audit.Service, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Service{
		repo:      repo,
		sessions:  sessions,
		patients:  patients,
		validator: v,
		auditor:   auditor,
		metrics:   m,
		now:       time.Now,
	}
}

func (s *Service) Types() []model.RadiographyType {
	return append([]model.RadiographyType(nil), model.RadiographyTypes...)
}

// PatientName resolves the patient of a radiography, or UnknownPatientName.
func (s *Service) PatientName(patientID string) string {
	return s.patients.NameOf(patientID)
}

// SearchRadiographies matches the query against the radiography type and
// the current name of its patient. A missing patient matches nothing; its
// fallback label is for display only.
func (s *Service) SearchRadiographies(ctx context.Context, query string) []model.RadiographyView {
	s.metrics.Searches.WithLabelValues(model.AuditEntityRadiography).Inc()

	all := s.repo.All()
	views := make([]model.RadiographyView, len(all))
	for i, r := range all {
		views[i] = model.RadiographyView{Radiography: r, PatientName: s.PatientName(r.PatientID)}
	}
	return search.Filter(views, search.Text(query,
		func(v model.RadiographyView) string { return v.Type },
		func(v model.RadiographyView) string { return model.RadiographyTypeName(v.Type) },
		s.knownPatientName,
	))
}

func (s *Service) knownPatientName(v model.RadiographyView) string {
	if !s.patients.Exists(v.PatientID) {
		return ""
	}
	return v.PatientName
}

func (s *Service) GetSession(ctx context.Context, id string) (model.CaptureSession, error) {
	sess, ok := s.sessions.FindByID(id)
	if !ok {
		return model.CaptureSession{}, apperrors.NotFound("capture session", nil)
	}
	return sess, nil
}

// StartSession validates the capture details and opens a session ready to capture.
func (s *Service) StartSession(ctx context.Context, req model.StartCaptureRequest) (model.CaptureSession, error) {
	result := s.validator.Validate(req)
	if req.PatientID != "" && !s.patients.Exists(req.PatientID) {
		result.Add("patient_id", "Patient not found")
	}
	if err := result.Err(); err != nil {
		return model.CaptureSession{}, err
	}

	sess := s.sessions.Add(model.CaptureSession{
		PatientID:   req.PatientID,
		PatientName: s.patients.NameOf(req.PatientID),
		Type:        req.Type,
		Notes:       req.Notes,
		State:       model.CaptureStateIdle,
		CreatedAt:   s.now(),
	})
	s.metrics.CaptureSession.WithLabelValues(string(sess.State)).Inc()
	return sess, nil
}

// BeginCapture moves an idle session to capturing.
func (s *Service) BeginCapture(ctx context.Context, id string) (model.CaptureSession, error) {
	return s.transition(id, func(sess model.CaptureSession) (model.CaptureSession, error) {
		if sess.State != model.CaptureStateIdle {
			return sess, invalidTransition(sess.State, model.CaptureStateCapturing)
		}
		now := s.now()
		sess.State = model.CaptureStateCapturing
		sess.StartedAt = &now
		return sess, nil
	})
}

// CompleteCapture finishes a capturing session and stores the radiography.
// Completion is always signalled by the caller.
func (s *Service) CompleteCapture(ctx context.Context, id string) (model.CaptureSession, error) {
	var rad model.Radiography
	sess, err := s.transition(id, func(sess model.CaptureSession) (model.CaptureSession, error) {
		if sess.State != model.CaptureStateCapturing {
			return sess, invalidTransition(sess.State, model.CaptureStateComplete)
		}
		now := s.now()
		rad = s.repo.Add(model.Radiography{
			PatientID: sess.PatientID,
			Date:      datekey.DayOf(now).String(),
			Type:      sess.Type,
			ImageURL:  placeholderImage,
			Notes:     sess.Notes,
		})
		sess.State = model.CaptureStateComplete
		sess.CompletedAt = &now
		sess.RadiographyID = rad.ID
		return sess, nil
	})
	if err != nil {
		return sess, err
	}

	s.auditor.Log(ctx, model.AuditActionCreate, model.AuditEntityRadiography, rad.ID, &audit.LogOptions{Changes: rad})
	return sess, nil
}

// Back steps a session backwards: capturing returns to idle, idle is cancelled.
func (s *Service) Back(ctx context.Context, id string) (model.CaptureSession, error) {
	return s.transition(id, func(sess model.CaptureSession) (model.CaptureSession, error) {
		switch sess.State {
		case model.CaptureStateCapturing:
			sess.State = model.CaptureStateIdle
			sess.StartedAt = nil
		case model.CaptureStateIdle:
			sess.State = model.CaptureStateCancelled
		default:
			return sess, apperrors.NewConflict(fmt.Sprintf("session is %s", sess.State))
		}
		return sess, nil
	})
}

func (s *Service) transition(id string, fn func(model.CaptureSession) (model.CaptureSession, error)) (model.CaptureSession, error) {
	sess, err := s.sessions.Update(id, fn)
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return model.CaptureSession{}, err
		}
		return model.CaptureSession{}, apperrors.NotFound("capture session", err)
	}
	s.metrics.CaptureSession.WithLabelValues(string(sess.State)).Inc()
	return sess, nil
}

func invalidTransition(from, to model.CaptureState) error {
	return apperrors.NewConflict(fmt.Sprintf("cannot move session from %s to %s", from, to))
}
