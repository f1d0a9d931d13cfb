package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
	"github.com/jwalitptl/clinic-dashboard/pkg/logger"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
	"github.com/jwalitptl/clinic-dashboard/pkg/sortpipe"
)

const (
	reasonDate = "date"
	reasonTime = "time"
)

type Config struct {
	Location     *time.Location
	WeekStart    time.Weekday
	DayStartHour int
	DayEndHour   int
	SlotMinutes  int
}

func DefaultConfig() Config {
	return Config{
		Location:     time.Local,
		WeekStart:    time.Sunday,
		DayStartHour: 8,
		DayEndHour:   18,
		SlotMinutes:  30,
	}
}

// Aggregator buckets appointments into day and week views. It never fails on
// malformed records: they are left out of every view, and each distinct bad
// value is logged and counted once.
type Aggregator struct {
	cfg     Config
	log     *logger.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	reported map[string]struct{}
}

func NewAggregator(cfg Config, log *logger.Logger, m *metrics.Metrics) *Aggregator {
	def := DefaultConfig()
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	if cfg.DayEndHour < cfg.DayStartHour || cfg.DayStartHour < 0 || cfg.DayEndHour > 23 {
		cfg.DayStartHour, cfg.DayEndHour = def.DayStartHour, def.DayEndHour
	}
	if cfg.SlotMinutes <= 0 {
		cfg.SlotMinutes = def.SlotMinutes
	}
	if log == nil {
		log = logger.Nop()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Aggregator{
		cfg:      cfg,
		log:      log.WithComponent("schedule"),
		metrics:  m,
		reported: map[string]struct{}{},
	}
}

func (a *Aggregator) Config() Config { return a.cfg }

var chronological = sortpipe.New(
	sortpipe.ByDay(func(s model.ScheduledAppointment) datekey.Day { return s.Day }),
	sortpipe.ByClock(func(s model.ScheduledAppointment) datekey.Clock { return s.Clock }),
)

var byClock = sortpipe.New(
	sortpipe.ByClock(func(s model.ScheduledAppointment) datekey.Clock { return s.Clock }),
)

// Schedule parses appointments into scheduled form, keeping input order and
// dropping the ones whose date or time cannot be parsed.
func (a *Aggregator) Schedule(appts []model.Appointment) []model.ScheduledAppointment {
	out := make([]model.ScheduledAppointment, 0, len(appts))
	for _, appt := range appts {
		s, err := a.parse(appt)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (a *Aggregator) parse(appt model.Appointment) (model.ScheduledAppointment, error) {
	day, err := datekey.ParseDay(appt.Date)
	if err != nil {
		a.malformed(appt, reasonDate, appt.Date)
		return model.ScheduledAppointment{}, err
	}
	clock, err := datekey.ParseClock(appt.Time)
	if err != nil {
		a.malformed(appt, reasonTime, appt.Time)
		return model.ScheduledAppointment{}, err
	}

	start := datekey.Instant(day, clock, a.cfg.Location)
	end := start
	if appt.DurationMinutes > 0 {
		end = start.Add(time.Duration(appt.DurationMinutes) * time.Minute)
	}
	return model.ScheduledAppointment{
		Appointment: appt,
		Day:         day,
		Clock:       clock,
		Start:       start,
		End:         end,
	}, nil
}

func (a *Aggregator) malformed(appt model.Appointment, reason, value string) {
	key := appt.ID + "\x00" + reason + "\x00" + value
	a.mu.Lock()
	_, seen := a.reported[key]
	a.reported[key] = struct{}{}
	a.mu.Unlock()
	if seen {
		return
	}

	a.metrics.MalformedRecords.WithLabelValues(model.AuditEntityAppointment, reason).Inc()
	a.log.Warn("excluding malformed appointment",
		"appointment_id", appt.ID,
		"reason", reason,
		"value", value,
	)
}

// DayView places every appointment on day into the hour bucket of its start
// time. Appointments outside the configured hours are dropped.
func (a *Aggregator) DayView(appts []model.Appointment, day datekey.Day) model.DayView {
	first, last := a.cfg.DayStartHour, a.cfg.DayEndHour
	buckets := make([]model.HourBucket, 0, last-first+1)
	for h := first; h <= last; h++ {
		buckets = append(buckets, model.HourBucket{
			Hour:         h,
			Label:        fmt.Sprintf("%02d:00", h),
			Appointments: []model.ScheduledAppointment{},
		})
	}

	for _, s := range byClock.Sort(a.onDay(appts, day)) {
		h := s.Clock.Hour()
		if h < first || h > last {
			continue
		}
		buckets[h-first].Appointments = append(buckets[h-first].Appointments, s)
	}

	return model.DayView{Date: day, Buckets: buckets}
}

// WeekView partitions the appointments of the week containing day into one
// bucket per day, each ordered by start time.
func (a *Aggregator) WeekView(appts []model.Appointment, day datekey.Day) model.WeekView {
	first, last := datekey.WeekBounds(day, a.cfg.WeekStart)
	days := make([]model.DayBucket, 7)
	for i := range days {
		d := first.AddDays(i)
		days[i] = model.DayBucket{
			Date:         d,
			Weekday:      d.Weekday().String(),
			Appointments: []model.ScheduledAppointment{},
		}
	}

	for _, s := range byClock.Sort(a.Schedule(appts)) {
		if !s.Day.Within(first, last) {
			continue
		}
		i := diffDays(first, s.Day)
		days[i].Appointments = append(days[i].Appointments, s)
	}

	return model.WeekView{Start: first, End: last, Days: days}
}

// ForDay lists the appointments on day ordered by start time.
func (a *Aggregator) ForDay(appts []model.Appointment, day datekey.Day) []model.ScheduledAppointment {
	return byClock.Sort(a.onDay(appts, day))
}

// Sorted returns all parseable appointments ordered by date then time.
func (a *Aggregator) Sorted(appts []model.Appointment) []model.ScheduledAppointment {
	return chronological.Sort(a.Schedule(appts))
}

// Upcoming returns at most n appointments starting at or after now.
func (a *Aggregator) Upcoming(appts []model.Appointment, now time.Time, n int) []model.ScheduledAppointment {
	var out []model.ScheduledAppointment
	for _, s := range a.Sorted(appts) {
		if s.Start.Before(now) {
			continue
		}
		out = append(out, s)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// DateCounts reports how many appointments fall on each day that has any.
func (a *Aggregator) DateCounts(appts []model.Appointment) []model.DateCount {
	var counts []model.DateCount
	for _, s := range a.Sorted(appts) {
		if n := len(counts); n > 0 && counts[n-1].Date == s.Day {
			counts[n-1].Count++
			continue
		}
		counts = append(counts, model.DateCount{Date: s.Day, Count: 1})
	}
	return counts
}

// Slots splits the working hours of day into slots of slotMinutes and marks
// the ones overlapping an appointment.
func (a *Aggregator) Slots(appts []model.Appointment, day datekey.Day, slotMinutes int) []model.TimeSlot {
	if slotMinutes <= 0 {
		slotMinutes = a.cfg.SlotMinutes
	}
	open := day.At(a.cfg.DayStartHour, 0, a.cfg.Location)
	closing := day.At(a.cfg.DayEndHour+1, 0, a.cfg.Location)

	slots := generateTimeSlots(open, closing, time.Duration(slotMinutes)*time.Minute)
	return markOccupied(slots, a.onDay(appts, day))
}

func (a *Aggregator) FreeSlots(appts []model.Appointment, day datekey.Day, slotMinutes int) []model.TimeSlot {
	return filterSlots(a.Slots(appts, day, slotMinutes), false)
}

func (a *Aggregator) OccupiedSlots(appts []model.Appointment, day datekey.Day, slotMinutes int) []model.TimeSlot {
	return filterSlots(a.Slots(appts, day, slotMinutes), true)
}

// Today is the calendar day of now in the configured location.
func (a *Aggregator) Today(now time.Time) datekey.Day {
	return datekey.DayOf(now.In(a.cfg.Location))
}

func (a *Aggregator) onDay(appts []model.Appointment, day datekey.Day) []model.ScheduledAppointment {
	var out []model.ScheduledAppointment
	for _, s := range a.Schedule(appts) {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

func generateTimeSlots(start, end time.Time, duration time.Duration) []model.TimeSlot {
	var slots []model.TimeSlot
	for t := start; t.Before(end); t = t.Add(duration) {
		slotEnd := t.Add(duration)
		if slotEnd.After(end) {
			slotEnd = end
		}
		slots = append(slots, model.TimeSlot{Start: t, End: slotEnd})
	}
	return slots
}

func markOccupied(slots []model.TimeSlot, appts []model.ScheduledAppointment) []model.TimeSlot {
	for i := range slots {
		for _, appt := range appts {
			if slots[i].Start.Before(appt.End) && appt.Start.Before(slots[i].End) {
				slots[i].Occupied = true
				slots[i].AppointmentIDs = append(slots[i].AppointmentIDs, appt.ID)
			}
		}
	}
	return slots
}

func filterSlots(slots []model.TimeSlot, occupied bool) []model.TimeSlot {
	out := []model.TimeSlot{}
	for _, slot := range slots {
		if slot.Occupied == occupied {
			out = append(out, slot)
		}
	}
	return out
}

func diffDays(from, to datekey.Day) int {
	return int(to.Time(time.UTC).Sub(from.Time(time.UTC)).Hours() / 24)
}
