package dashboard

import (
	"context"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/document"
	"github.com/jwalitptl/clinic-dashboard/internal/service/patient"
	"github.com/jwalitptl/clinic-dashboard/internal/service/schedule"
	"github.com/jwalitptl/clinic-dashboard/internal/service/treatment"
)

const (
	DefaultProgressLimit = 4
	DefaultUpcomingLimit = 5
)

type Service struct {
	patients   *patient.Service
	schedule   *schedule.Service
	treatments *treatment.Service
	documents  *document.Service
}

func NewService(patients *patient.Service, sched *schedule.Service, treatments *treatment.Service, documents *document.Service) *Service {
	return &Service{
		patients:   patients,
		schedule:   sched,
		treatments: treatments,
		documents:  documents,
	}
}

func (s *Service) Stats(ctx context.Context) model.DashboardStats {
	return model.DashboardStats{
		Patients:             s.patients.Count(),
		Appointments:         len(s.schedule.Appointments(ctx)),
		UpcomingAppointments: len(s.schedule.Upcoming(ctx, 0)),
		ActiveTreatments:     s.treatments.ActiveCount(ctx),
		Documents:            s.documents.Count(),
		UnassignedDocuments:  s.documents.UnassignedCount(ctx),
	}
}

// Progress reports treatment progress for the first n patients in store order.
func (s *Service) Progress(ctx context.Context, n int) []model.PatientProgress {
	patients := s.patients.ListPatients(ctx, model.PatientFilters{})
	if n > 0 && len(patients) > n {
		patients = patients[:n]
	}
	out := make([]model.PatientProgress, 0, len(patients))
	for _, p := range patients {
		out = append(out, model.PatientProgress{
			PatientID:     p.ID,
			Name:          p.Name,
			TreatmentType: p.TreatmentType,
			Progress:      p.TreatmentProgress,
		})
	}
	return out
}

func (s *Service) Overview(ctx context.Context) model.Dashboard {
	return model.Dashboard{
		Stats:        s.Stats(ctx),
		Progress:     s.Progress(ctx, DefaultProgressLimit),
		Upcoming:     s.schedule.Upcoming(ctx, DefaultUpcomingLimit),
		CalendarDays: s.schedule.Calendar(ctx),
	}
}
