package schedule

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
)

// NameResolver returns the current display name of a patient.
type NameResolver interface {
	NameOf(patientID string) string
	Revision() uint64
}

// Service serves schedule views over the appointment store, with patient
// names joined at read time.
type Service struct {
	appts   repository.AppointmentRepository
	names   NameResolver
	agg     *Aggregator
	cache   *cache.Cache
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(appts repository.AppointmentRepository, names NameResolver, agg *Aggregator, cacheTTL time.Duration, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Service{
		appts:   appts,
		names:   names,
		agg:     agg,
		cache:   cache.New(cacheTTL, 2*cacheTTL),
		metrics: m,
		now:     time.Now,
	}
}

func (s *Service) Aggregator() *Aggregator { return s.agg }

// Appointments returns every stored appointment with its patient name resolved.
func (s *Service) Appointments(ctx context.Context) []model.Appointment {
	all := s.appts.All()
	for i := range all {
		all[i].PatientName = s.names.NameOf(all[i].PatientID)
	}
	return all
}

// DayView returns a copy of the cached view; callers may modify it freely.
func (s *Service) DayView(ctx context.Context, day datekey.Day) model.DayView {
	v := s.cached(ctx, model.ViewDay, day, func(appts []model.Appointment) interface{} {
		return s.agg.DayView(appts, day)
	})
	return cloneDayView(v.(model.DayView))
}

// WeekView returns a copy of the cached view; callers may modify it freely.
func (s *Service) WeekView(ctx context.Context, day datekey.Day) model.WeekView {
	v := s.cached(ctx, model.ViewWeek, day, func(appts []model.Appointment) interface{} {
		return s.agg.WeekView(appts, day)
	})
	return cloneWeekView(v.(model.WeekView))
}

func cloneDayView(v model.DayView) model.DayView {
	buckets := make([]model.HourBucket, len(v.Buckets))
	for i, b := range v.Buckets {
		b.Appointments = slices.Clone(b.Appointments)
		buckets[i] = b
	}
	v.Buckets = buckets
	return v
}

func cloneWeekView(v model.WeekView) model.WeekView {
	days := make([]model.DayBucket, len(v.Days))
	for i, d := range v.Days {
		d.Appointments = slices.Clone(d.Appointments)
		days[i] = d
	}
	v.Days = days
	return v
}

func (s *Service) ForDay(ctx context.Context, day datekey.Day) []model.ScheduledAppointment {
	return s.agg.ForDay(s.Appointments(ctx), day)
}

func (s *Service) Sorted(ctx context.Context) []model.ScheduledAppointment {
	return s.agg.Sorted(s.Appointments(ctx))
}

func (s *Service) Availability(ctx context.Context, day datekey.Day, slotMinutes int) []model.TimeSlot {
	return s.agg.Slots(s.Appointments(ctx), day, slotMinutes)
}

func (s *Service) FreeSlots(ctx context.Context, day datekey.Day, slotMinutes int) []model.TimeSlot {
	return s.agg.FreeSlots(s.Appointments(ctx), day, slotMinutes)
}

func (s *Service) Calendar(ctx context.Context) []model.DateCount {
	return s.agg.DateCounts(s.Appointments(ctx))
}

func (s *Service) Upcoming(ctx context.Context, n int) []model.ScheduledAppointment {
	return s.agg.Upcoming(s.Appointments(ctx), s.now(), n)
}

func (s *Service) Today() datekey.Day {
	return s.agg.Today(s.now())
}

// Navigate resolves a navigation action ("prev", "next" or "today") from ref.
func (s *Service) Navigate(ref datekey.Day, mode model.ViewMode, action string) (datekey.Day, error) {
	switch action {
	case "prev", "previous":
		return Previous(ref, mode), nil
	case "next":
		return Next(ref, mode), nil
	case "today":
		return s.Today(), nil
	}
	return datekey.Day{}, fmt.Errorf("unknown navigation %q", action)
}

// cached keys views by the store revisions so a mutation never serves a stale view.
func (s *Service) cached(ctx context.Context, mode model.ViewMode, day datekey.Day, build func([]model.Appointment) interface{}) interface{} {
	key := fmt.Sprintf("%s:%s:%d:%d", mode, day, s.appts.Revision(), s.names.Revision())
	if v, found := s.cache.Get(key); found {
		s.metrics.ViewCacheHits.WithLabelValues(string(mode)).Inc()
		return v
	}
	s.metrics.ViewCacheMiss.WithLabelValues(string(mode)).Inc()

	start := time.Now()
	v := build(s.Appointments(ctx))
	s.metrics.ViewLatency.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())

	s.cache.SetDefault(key, v)
	return v
}
