package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository/memory"
	"github.com/jwalitptl/clinic-dashboard/internal/seed"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
)

type stubNames struct {
	names map[string]string
	rev   uint64
}

func (s *stubNames) NameOf(id string) string {
	if n, ok := s.names[id]; ok {
		return n
	}
	return model.UnknownPatientName
}

func (s *stubNames) Revision() uint64 { return s.rev }

func newTestService(t *testing.T) (*Service, *memory.Store[model.Appointment], *stubNames, *metrics.Metrics) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	m := metrics.NewMetrics("test", prometheus.NewRegistry())

	appts := memory.NewWith(seed.Appointments())
	names := &stubNames{names: map[string]string{"P001": "Sarah Johnson", "P004": "Jason Rodriguez"}}
	svc := NewService(appts, names, NewAggregator(cfg, nil, m), time.Minute, m)
	svc.now = func() time.Time { return time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc, appts, names, m
}

func TestService_DayViewJoinsNames(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	v := svc.DayView(context.Background(), datekey.MustParseDay("2023-06-15"))
	nine := v.Buckets[1]
	require.Equal(t, 9, nine.Hour)
	require.Len(t, nine.Appointments, 1)
	assert.Equal(t, "A001", nine.Appointments[0].ID)
	assert.Equal(t, "Sarah Johnson", nine.Appointments[0].PatientName)

	four := v.Buckets[8]
	require.Equal(t, 16, four.Hour)
	assert.Equal(t, "A004", four.Appointments[0].ID)
}

func TestService_UnknownPatient(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	v := svc.WeekView(context.Background(), datekey.MustParseDay("2023-06-15"))
	friday := v.Days[5]
	require.Equal(t, "2023-06-16", friday.Date.String())
	require.Len(t, friday.Appointments, 1)
	assert.Equal(t, model.UnknownPatientName, friday.Appointments[0].PatientName)
}

func TestService_ViewCacheTracksRevisions(t *testing.T) {
	svc, appts, names, m := newTestService(t)
	ctx := context.Background()
	day := datekey.MustParseDay("2023-06-15")

	svc.DayView(ctx, day)
	svc.DayView(ctx, day)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ViewCacheMiss.WithLabelValues("day")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ViewCacheHits.WithLabelValues("day")))

	appts.Add(model.Appointment{PatientID: "P001", Date: "2023-06-15", Time: "10:00", DurationMinutes: 30})
	v := svc.DayView(ctx, day)
	assert.Len(t, v.Buckets[2].Appointments, 1)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ViewCacheMiss.WithLabelValues("day")))

	names.names["P001"] = "Sarah Connor"
	names.rev++
	v = svc.DayView(ctx, day)
	assert.Equal(t, "Sarah Connor", v.Buckets[1].Appointments[0].PatientName)
}

func TestService_CachedViewsAreCopies(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	day := datekey.MustParseDay("2023-06-15")

	v := svc.DayView(ctx, day)
	v.Buckets[1].Appointments[0].PatientName = "changed"
	v.Buckets[2].Appointments = append(v.Buckets[2].Appointments, model.ScheduledAppointment{})

	again := svc.DayView(ctx, day)
	assert.Equal(t, "Sarah Johnson", again.Buckets[1].Appointments[0].PatientName)
	assert.Empty(t, again.Buckets[2].Appointments)

	w := svc.WeekView(ctx, day)
	w.Days[4].Appointments[0].ID = "changed"
	assert.NotEqual(t, "changed", svc.WeekView(ctx, day).Days[4].Appointments[0].ID)
}

func TestService_Navigate(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ref := datekey.MustParseDay("2023-06-15")

	got, err := svc.Navigate(ref, model.ViewWeek, "next")
	require.NoError(t, err)
	assert.Equal(t, "2023-06-22", got.String())

	got, err = svc.Navigate(ref, model.ViewDay, "prev")
	require.NoError(t, err)
	assert.Equal(t, "2023-06-14", got.String())

	got, err = svc.Navigate(datekey.MustParseDay("2020-01-01"), model.ViewDay, "today")
	require.NoError(t, err)
	assert.Equal(t, "2023-06-15", got.String())

	_, err = svc.Navigate(ref, model.ViewDay, "sideways")
	assert.Error(t, err)
}

func TestService_CalendarAndUpcoming(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	counts := svc.Calendar(ctx)
	require.Len(t, counts, 5)
	assert.Equal(t, "2023-06-15", counts[0].Date.String())
	assert.Equal(t, 2, counts[0].Count)

	upcoming := svc.Upcoming(ctx, 2)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "A004", upcoming[0].ID)
	assert.Equal(t, "A002", upcoming[1].ID)
}
