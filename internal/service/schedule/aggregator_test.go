package schedule

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
)

func newTestAggregator(t *testing.T) (*Aggregator, *metrics.Metrics) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	return NewAggregator(cfg, nil, m), m
}

func appt(id, date, clock string) model.Appointment {
	return model.Appointment{ID: id, PatientID: "P001", Date: date, Time: clock, DurationMinutes: 30, Type: "Check-up"}
}

func ids(appts []model.ScheduledAppointment) []string {
	out := []string{}
	for _, a := range appts {
		out = append(out, a.ID)
	}
	return out
}

func bucket(t *testing.T, v model.DayView, hour int) model.HourBucket {
	t.Helper()
	for _, b := range v.Buckets {
		if b.Hour == hour {
			return b
		}
	}
	t.Fatalf("no bucket for hour %d", hour)
	return model.HourBucket{}
}

func TestDayView_Buckets(t *testing.T) {
	agg, _ := newTestAggregator(t)
	day := datekey.MustParseDay("2023-06-15")

	v := agg.DayView([]model.Appointment{
		appt("A1", "2023-06-15", "09:30 AM"),
		appt("A2", "2023-06-15", "04:30 PM"),
		appt("A3", "2023-06-16", "09:00 AM"),
	}, day)

	require.Len(t, v.Buckets, 11)
	assert.Equal(t, 8, v.Buckets[0].Hour)
	assert.Equal(t, "08:00", v.Buckets[0].Label)
	assert.Equal(t, 18, v.Buckets[10].Hour)

	assert.Equal(t, []string{"A1"}, ids(bucket(t, v, 9).Appointments))
	assert.Equal(t, []string{"A2"}, ids(bucket(t, v, 16).Appointments))

	total := 0
	for _, b := range v.Buckets {
		total += len(b.Appointments)
	}
	assert.Equal(t, 2, total)
}

func TestDayView_TwelveHourConversion(t *testing.T) {
	agg, _ := newTestAggregator(t)
	day := datekey.MustParseDay("2023-06-15")

	v := agg.DayView([]model.Appointment{
		appt("pm", "2023-06-15", "02:00 PM"),
		appt("noon", "2023-06-15", "12:15 PM"),
		appt("midnight", "2023-06-15", "12:00 AM"),
		appt("late", "2023-06-15", "19:00"),
		appt("edge", "2023-06-15", "18:59"),
	}, day)

	assert.Equal(t, []string{"pm"}, ids(bucket(t, v, 14).Appointments))
	assert.Equal(t, []string{"noon"}, ids(bucket(t, v, 12).Appointments))
	assert.Equal(t, []string{"edge"}, ids(bucket(t, v, 18).Appointments))

	for _, b := range v.Buckets {
		assert.NotContains(t, ids(b.Appointments), "midnight")
		assert.NotContains(t, ids(b.Appointments), "late")
	}
}

func TestDayView_BucketSortedByTimeStable(t *testing.T) {
	agg, _ := newTestAggregator(t)
	day := datekey.MustParseDay("2023-06-15")

	v := agg.DayView([]model.Appointment{
		appt("b", "2023-06-15", "10:45"),
		appt("a", "2023-06-15", "10:15"),
		appt("c", "2023-06-15", "10:45 AM"),
	}, day)

	assert.Equal(t, []string{"a", "b", "c"}, ids(bucket(t, v, 10).Appointments))
}

func TestDayView_EmptyBucketsAreNotNil(t *testing.T) {
	agg, _ := newTestAggregator(t)
	v := agg.DayView(nil, datekey.MustParseDay("2023-06-15"))
	for _, b := range v.Buckets {
		assert.NotNil(t, b.Appointments)
	}
}

func TestMalformedAppointmentsExcluded(t *testing.T) {
	agg, m := newTestAggregator(t)
	day := datekey.MustParseDay("2023-06-15")
	appts := []model.Appointment{
		appt("ok", "2023-06-15", "09:00"),
		appt("bad-time", "2023-06-15", "quarter past nine"),
		appt("bad-date", "15/06/2023", "09:00"),
		appt("empty", "", ""),
	}

	assert.NotPanics(t, func() {
		v := agg.DayView(appts, day)
		assert.Equal(t, []string{"ok"}, ids(bucket(t, v, 9).Appointments))
	})
	assert.Equal(t, float64(2), testutil.ToFloat64(m.MalformedRecords.WithLabelValues("appointment", "date")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MalformedRecords.WithLabelValues("appointment", "time")))

	assert.Equal(t, []string{"ok"}, ids(agg.Sorted(appts)))
	agg.DayView(appts, day)
	agg.DateCounts(appts)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.MalformedRecords.WithLabelValues("appointment", "date")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.MalformedRecords.WithLabelValues("appointment", "time")))

	changed := appt("bad-time", "2023-06-15", "half nine")
	agg.Sorted([]model.Appointment{changed})
	assert.Equal(t, float64(2), testutil.ToFloat64(m.MalformedRecords.WithLabelValues("appointment", "time")))
}

func TestDaylightSavingDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.Location = ny
	agg := NewAggregator(cfg, nil, nil)
	day := datekey.MustParseDay("2023-03-12")

	scheduled := agg.Schedule([]model.Appointment{appt("A1", "2023-03-12", "09:30")})
	require.Len(t, scheduled, 1)
	assert.Equal(t, time.Date(2023, 3, 12, 9, 30, 0, 0, ny), scheduled[0].Start)
	assert.Equal(t, time.Date(2023, 3, 12, 10, 0, 0, 0, ny), scheduled[0].End)

	slots := agg.Slots(nil, day, 60)
	require.Len(t, slots, 11)
	assert.Equal(t, 8, slots[0].Start.Hour())
	assert.Equal(t, 19, slots[10].End.Hour())

	occupied := agg.OccupiedSlots([]model.Appointment{appt("A1", "2023-03-12", "09:30")}, day, 30)
	require.Len(t, occupied, 1)
	assert.Equal(t, 9, occupied[0].Start.Hour())
	assert.Equal(t, 30, occupied[0].Start.Minute())
}

func TestWeekView_PartitionIsExhaustive(t *testing.T) {
	agg, _ := newTestAggregator(t)
	// 2023-06-15 is a Thursday; the Sunday week is 06-11 .. 06-17.
	appts := []model.Appointment{
		appt("before", "2023-06-10", "10:00"),
		appt("sun", "2023-06-11", "10:00"),
		appt("thu-late", "2023-06-15", "04:30 PM"),
		appt("thu-early", "2023-06-15", "09:30 AM"),
		appt("sat", "2023-06-17", "20:00"),
		appt("after", "2023-06-18", "10:00"),
	}

	v := agg.WeekView(appts, datekey.MustParseDay("2023-06-15"))

	assert.Equal(t, "2023-06-11", v.Start.String())
	assert.Equal(t, "2023-06-17", v.End.String())
	require.Len(t, v.Days, 7)
	assert.Equal(t, "Sunday", v.Days[0].Weekday)

	var all []string
	for _, d := range v.Days {
		all = append(all, ids(d.Appointments)...)
	}
	assert.ElementsMatch(t, []string{"sun", "thu-late", "thu-early", "sat"}, all)

	assert.Equal(t, []string{"sun"}, ids(v.Days[0].Appointments))
	assert.Equal(t, []string{"thu-early", "thu-late"}, ids(v.Days[4].Appointments))
	assert.Equal(t, []string{"sat"}, ids(v.Days[6].Appointments))
}

func TestWeekView_ConfigurableWeekStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	cfg.WeekStart = time.Monday
	agg := NewAggregator(cfg, nil, nil)

	v := agg.WeekView(nil, datekey.MustParseDay("2023-06-11"))
	assert.Equal(t, "2023-06-05", v.Start.String())
	assert.Equal(t, "2023-06-11", v.End.String())
}

func TestForDayAndDateCounts(t *testing.T) {
	agg, _ := newTestAggregator(t)
	appts := []model.Appointment{
		appt("A2", "2023-06-15", "14:00"),
		appt("A1", "2023-06-15", "09:30"),
		appt("A3", "2023-06-16", "11:00"),
	}

	assert.Equal(t, []string{"A1", "A2"}, ids(agg.ForDay(appts, datekey.MustParseDay("2023-06-15"))))
	assert.Empty(t, agg.ForDay(appts, datekey.MustParseDay("2023-06-14")))

	counts := agg.DateCounts(appts)
	require.Len(t, counts, 2)
	assert.Equal(t, "2023-06-15", counts[0].Date.String())
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, 1, counts[1].Count)
}

func TestSorted_DateThenTime(t *testing.T) {
	agg, _ := newTestAggregator(t)
	appts := []model.Appointment{
		appt("c", "2023-06-16", "09:00"),
		appt("b", "2023-06-15", "02:00 PM"),
		appt("a", "2023-06-15", "11:00 AM"),
		appt("d", "2023-06-09", "16:00"),
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(agg.Sorted(appts)))
}

func TestUpcoming(t *testing.T) {
	agg, _ := newTestAggregator(t)
	appts := []model.Appointment{
		appt("past", "2023-06-14", "09:00"),
		appt("later", "2023-06-16", "09:00"),
		appt("soon", "2023-06-15", "15:00"),
	}
	now := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, []string{"soon", "later"}, ids(agg.Upcoming(appts, now, 0)))
	assert.Equal(t, []string{"soon"}, ids(agg.Upcoming(appts, now, 1)))
}

func TestSlots(t *testing.T) {
	agg, _ := newTestAggregator(t)
	day := datekey.MustParseDay("2023-06-15")
	appts := []model.Appointment{
		{ID: "A1", Date: "2023-06-15", Time: "09:00", DurationMinutes: 45},
		{ID: "A2", Date: "2023-06-16", Time: "09:00", DurationMinutes: 45},
	}

	slots := agg.Slots(appts, day, 60)
	require.Len(t, slots, 11)
	assert.Equal(t, time.Date(2023, 6, 15, 8, 0, 0, 0, time.UTC), slots[0].Start)
	assert.Equal(t, time.Date(2023, 6, 15, 19, 0, 0, 0, time.UTC), slots[10].End)

	occupied := agg.OccupiedSlots(appts, day, 30)
	require.Len(t, occupied, 2)
	assert.Equal(t, 9, occupied[0].Start.Hour())
	assert.Equal(t, 30, occupied[1].Start.Minute())
	assert.Equal(t, []string{"A1"}, occupied[0].AppointmentIDs)

	free := agg.FreeSlots(appts, day, 30)
	assert.Len(t, free, 22-2)
	for _, s := range free {
		assert.False(t, s.Occupied)
	}
}

func TestSlots_AdjacentAppointmentDoesNotOverlap(t *testing.T) {
	agg, _ := newTestAggregator(t)
	day := datekey.MustParseDay("2023-06-15")
	appts := []model.Appointment{{ID: "A1", Date: "2023-06-15", Time: "08:00", DurationMinutes: 30}}

	occupied := agg.OccupiedSlots(appts, day, 30)
	require.Len(t, occupied, 1)
	assert.Equal(t, 8, occupied[0].Start.Hour())
	assert.Equal(t, 0, occupied[0].Start.Minute())
}

func TestToday(t *testing.T) {
	agg, _ := newTestAggregator(t)
	now := time.Date(2023, 6, 15, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2023-06-16", agg.Today(now).String())
}
