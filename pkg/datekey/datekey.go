// Package datekey normalises the loosely formatted dates and wall-clock times
// found in clinic records into comparable calendar-day and time-of-day keys.
package datekey

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDay   = errors.New("invalid date")
	ErrInvalidClock = errors.New("invalid time")
)

// ISODate is the canonical layout of a Day.
const ISODate = "2006-01-02"

var dayLayouts = []string{
	ISODate,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3 PM",
	"3PM",
}

// Day is a calendar date with no time zone attached.
type Day struct {
	year  int
	month time.Month
	day   int
}

// NewDay builds a Day, normalising overflowing values the way time.Date does.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{year: y, month: m, day: d}
}

// ParseDay accepts ISO dates, ISO date-times and the "Jan 2, 2006" style used
// by treatment plans.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, fmt.Errorf("%w: empty", ErrInvalidDay)
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return Day{}, fmt.Errorf("%w: %q", ErrInvalidDay, s)
}

// MustParseDay is ParseDay for literals known to be valid.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Day) Year() int             { return d.year }
func (d Day) Month() time.Month     { return d.month }
func (d Day) Day() int              { return d.day }
func (d Day) IsZero() bool          { return d.year == 0 && d.month == 0 && d.day == 0 }
func (d Day) Weekday() time.Weekday { return d.Time(time.UTC).Weekday() }

// Time returns midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// At returns the wall-clock time hour:minute on d in loc. Hours past 23
// roll over into the next day.
func (d Day) At(hour, minute int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, d.month, d.day, hour, minute, 0, 0, loc)
}

func (d Day) AddDays(n int) Day {
	return NewDay(d.year, d.month, d.day+n)
}

func (d Day) Compare(o Day) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d Day) Before(o Day) bool { return d.Compare(o) < 0 }
func (d Day) After(o Day) bool  { return d.Compare(o) > 0 }

// Within reports whether d lies in the closed interval [from, to].
func (d Day) Within(from, to Day) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time(time.UTC).Format(ISODate)
}

func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeekBounds returns the first and last day of the 7-day week containing d.
func WeekBounds(d Day, start time.Weekday) (Day, Day) {
	offset := (int(d.Weekday()) - int(start) + 7) % 7
	first := d.AddDays(-offset)
	return first, first.AddDays(6)
}

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	minutes int
}

func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidClock, hour, minute)
	}
	return Clock{minutes: hour*60 + minute}, nil
}

// ParseClock accepts 24-hour ("14:00") and 12-hour ("02:00 PM", "2 pm")
// strings. 12 AM is midnight and 12 PM is noon.
func ParseClock(s string) (Clock, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Clock{}, fmt.Errorf("%w: empty", ErrInvalidClock)
	}
	s = strings.ReplaceAll(s, ".", "")
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{minutes: t.Hour()*60 + t.Minute()}, nil
		}
	}
	return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
}

func (c Clock) Hour() int    { return c.minutes / 60 }
func (c Clock) Minute() int  { return c.minutes % 60 }
func (c Clock) Minutes() int { return c.minutes }

func (c Clock) Duration() time.Duration {
	return time.Duration(c.minutes) * time.Minute
}

func (c Clock) Compare(o Clock) int { return cmpInt(c.minutes, o.minutes) }

// String renders the canonical zero-padded 24-hour form.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Format12 renders the "03:04 PM" form used for display.
func (c Clock) Format12() string {
	h := c.Hour() % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if c.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", h, c.Minute(), suffix)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Instant combines a day and a clock into an absolute time in loc, reading
// the clock as local wall time.
func Instant(d Day, c Clock, loc *time.Location) time.Time {
	return d.At(c.Hour(), c.Minute(), loc)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Canonical rewrites a parseable wall-clock time as zero-padded 24-hour
// "HH:MM". Unparseable input is returned unchanged.
func Canonical(s string) string {
	c, err := ParseClock(s)
	if err != nil {
		return s
	}
	return c.String()
}
