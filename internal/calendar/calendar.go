package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/ward-program/pkg/dateutil"
)

// TempleSearchMonths is how many months NextTempleDay looks ahead before giving up
const TempleSearchMonths = 24

var (
	// ErrNoValidDate is matched by every *NoValidDateFoundError
	ErrNoValidDate = errors.New("no valid open date found")
	// ErrInvalidInterval is matched by every *InvalidIntervalError
	ErrInvalidInterval = errors.New("invalid closure interval")
	// ErrInvalidWeekOfMonth is matched by every *InvalidWeekOfMonthError
	ErrInvalidWeekOfMonth = errors.New("invalid week of month")
)

// Interval is an inclusive range of closed days
type Interval struct {
	Start dateutil.Date
	End   dateutil.Date
}

// NewInterval returns the closure [start, end]. A single closed day has start == end.
func NewInterval(start, end dateutil.Date) (Interval, error) {
	if end.Before(start) {
		return Interval{}, &InvalidIntervalError{Start: start, End: end}
	}
	return Interval{Start: start, End: end}, nil
}

// Contains reports whether d falls inside the interval, endpoints included
func (i Interval) Contains(d dateutil.Date) bool {
	return !d.Before(i.Start) && !d.After(i.End)
}

func (i Interval) String() string {
	if i.Start == i.End {
		return i.Start.String()
	}
	return i.Start.String() + ".." + i.End.String()
}

// Closures is a list of closure intervals, in no particular order
type Closures []Interval

// Contains reports whether any interval contains d
func (c Closures) Contains(d dateutil.Date) bool {
	for _, interval := range c {
		if interval.Contains(d) {
			return true
		}
	}
	return false
}

// WeekdaySpec describes a monthly recurrence such as "3rd Saturday of the month".
// Week follows RRULE BYSETPOS: 1 is the first occurrence, -1 the last.
type WeekdaySpec struct {
	Weekday time.Weekday
	Week    int
}

// Validate checks the week position
func (s WeekdaySpec) Validate() error {
	if s.Week == 0 || s.Week > 5 || s.Week < -5 {
		return &InvalidWeekOfMonthError{Week: s.Week}
	}
	if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
		return fmt.Errorf("weekday %d out of range", int(s.Weekday))
	}
	return nil
}

func (s WeekdaySpec) String() string {
	if s.Week == -1 {
		return "last " + s.Weekday.String()
	}
	if s.Week < 0 {
		return fmt.Sprintf("%d%s to last %s", -s.Week, dateutil.OrdinalSuffix(-s.Week), s.Weekday)
	}
	return fmt.Sprintf("%d%s %s", s.Week, dateutil.OrdinalSuffix(s.Week), s.Weekday)
}

// Roster maps a cleaning day to whoever is assigned to it
type Roster map[dateutil.Date]string

// Assignment is one upcoming cleaning day
type Assignment struct {
	Date       dateutil.Date
	Assignment string
}

// InvalidIntervalError reports a closure whose end is before its start
type InvalidIntervalError struct {
	Start dateutil.Date
	End   dateutil.Date
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("closure ends %v before it starts %v", e.End, e.Start)
}

func (e *InvalidIntervalError) Is(target error) bool {
	return target == ErrInvalidInterval
}

// InvalidWeekOfMonthError reports a week position outside -5..-1 or 1..5
type InvalidWeekOfMonthError struct {
	Week int
}

func (e *InvalidWeekOfMonthError) Error() string {
	return fmt.Sprintf("week of month %d must be between 1 and 5 or -5 and -1", e.Week)
}

func (e *InvalidWeekOfMonthError) Is(target error) bool {
	return target == ErrInvalidWeekOfMonth
}

// NoValidDateFoundError reports that every candidate in the search window was closed
type NoValidDateFoundError struct {
	Spec   WeekdaySpec
	From   dateutil.Date
	Months int
}

func (e *NoValidDateFoundError) Error() string {
	return fmt.Sprintf("no open %s within %d months of %v", e.Spec, e.Months, e.From)
}

func (e *NoValidDateFoundError) Is(target error) bool {
	return target == ErrNoValidDate
}
