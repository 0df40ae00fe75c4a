package calendar

import (
	"time"

	"github.com/username/ward-program/pkg/dateutil"
)

// NextTempleDay returns the first occurrence of spec on or after today that is
// not inside any closure. The search covers TempleSearchMonths months.
func NextTempleDay(spec WeekdaySpec, closures Closures, today dateutil.Date) (dateutil.Date, error) {
	return NextTempleDayWithin(spec, closures, today, TempleSearchMonths)
}

// NextTempleDayWithin is NextTempleDay with an explicit search bound in months.
// The month of today counts as the first month.
func NextTempleDayWithin(spec WeekdaySpec, closures Closures, today dateutil.Date, months int) (dateutil.Date, error) {
	if err := spec.Validate(); err != nil {
		return dateutil.Date{}, err
	}

	for i := 0; i < months; i++ {
		month := dateutil.NewDate(today.Year, today.Month+time.Month(i), 1)

		candidate, ok := dateutil.NthWeekdayOfMonth(month.Year, month.Month, spec.Weekday, spec.Week)
		if !ok || candidate.Before(today) {
			continue
		}
		if closures.Contains(candidate) {
			continue
		}
		return candidate, nil
	}

	return dateutil.Date{}, &NoValidDateFoundError{Spec: spec, From: today, Months: months}
}
