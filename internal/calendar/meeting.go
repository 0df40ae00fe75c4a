package calendar

import (
	"github.com/username/ward-program/pkg/dateutil"
)

// MeetingTypes maps a month and day ("December 01") to the kind of sacrament
// meeting held that Sunday, e.g. "Fast and Testimony". The year is not part
// of the key, so one file serves every year.
type MeetingTypes map[string]string

// Lookup returns the meeting type for the date
func (m MeetingTypes) Lookup(d dateutil.Date) (string, bool) {
	meetingType, ok := m[dateutil.FormatMonthDay(d)]
	return meetingType, ok
}

// Sunday is the upcoming meeting day and what kind of meeting it is
type Sunday struct {
	Date        dateutil.Date
	MeetingType string
	Known       bool
}

// UpcomingSunday resolves the nearest Sunday and its meeting type
func UpcomingSunday(types MeetingTypes, today dateutil.Date) Sunday {
	sunday := dateutil.NearestSunday(today)
	meetingType, ok := types.Lookup(sunday)
	return Sunday{Date: sunday, MeetingType: meetingType, Known: ok}
}
