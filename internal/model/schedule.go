package model

import (
	"time"

	"github.com/jwalitptl/clinic-dashboard/pkg/datekey"
)

type ViewMode string

const (
	ViewDay  ViewMode = "day"
	ViewWeek ViewMode = "week"
)

type TimeSlot struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Occupied       bool      `json:"occupied"`
	AppointmentIDs []string  `json:"appointment_ids,omitempty"`
}

// HourBucket groups a day's appointments starting within one hour.
type HourBucket struct {
	Hour         int                    `json:"hour"`
	Label        string                 `json:"label"`
	Appointments []ScheduledAppointment `json:"appointments"`
}

type DayView struct {
	Date    datekey.Day  `json:"date"`
	Buckets []HourBucket `json:"buckets"`
}

type DayBucket struct {
	Date         datekey.Day            `json:"date"`
	Weekday      string                 `json:"weekday"`
	Appointments []ScheduledAppointment `json:"appointments"`
}

type WeekView struct {
	Start datekey.Day `json:"start"`
	End   datekey.Day `json:"end"`
	Days  []DayBucket `json:"days"`
}

type DateCount struct {
	Date  datekey.Day `json:"date"`
	Count int         `json:"count"`
}
