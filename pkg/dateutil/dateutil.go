package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Layouts used by the lookup files and the rendered page
const (
	LongLayout     = "02 January 2006"
	MonthDayLayout = "January 02"
	ISOLayout      = "2006-01-02"
)

// parseLayouts are tried in order by ParseDate
var parseLayouts = []string{
	"2 January 2006",
	"2 January, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	ISOLayout,
}

// NextWeekday returns the first date on or after today that falls on wd
func NextWeekday(today Date, wd time.Weekday) Date {
	delta := (int(wd) - int(today.Weekday()) + 7) % 7
	return today.AddDays(delta)
}

// NearestSunday returns today if it is a Sunday, otherwise the next Sunday
func NearestSunday(today Date) Date {
	return NextWeekday(today, time.Sunday)
}

// OrdinalSuffix returns the English ordinal suffix for day (st, nd, rd, th)
func OrdinalSuffix(day int) string {
	if n := day % 100; n >= 11 && n <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// FormatOrdinal formats d as "March 17th"
func FormatOrdinal(d Date) string {
	return fmt.Sprintf("%s %d%s", d.Month, d.Day, OrdinalSuffix(d.Day))
}

// FormatLong formats d as "30 November 2024"
func FormatLong(d Date) string {
	return d.Time().Format(LongLayout)
}

// FormatMonthDay formats d as "December 01", the key of the meeting type calendar
func FormatMonthDay(d Date) string {
	return d.Time().Format(MonthDayLayout)
}

// ParseDate parses a date written in one of the layouts used by the lookup files.
// Example: "5 November 2022", "05 November 2022", "27 November, 2024", "2024-11-27"
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// NthWeekdayOfMonth returns the n-th occurrence of wd in the month.
// Positive n counts from the start of the month (1 = first), negative n counts
// from the end (-1 = last). The second result is false when the month has no
// such occurrence, for example a fifth Monday, or when n is zero.
func NthWeekdayOfMonth(year int, month time.Month, wd time.Weekday, n int) (Date, bool) {
	if n == 0 {
		return Date{}, false
	}

	first := NewDate(year, month, 1)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	count := (DaysIn(year, month)-1-offset)/7 + 1

	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if idx < 0 || idx >= count {
		return Date{}, false
	}

	return NewDate(year, month, 1+offset+idx*7), true
}
