package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday is matched by every *InvalidWeekdayError
var ErrInvalidWeekday = errors.New("invalid weekday")

// InvalidWeekdayError reports a weekday name that is not one of the seven English names
type InvalidWeekdayError struct {
	Name string
}

func (e *InvalidWeekdayError) Error() string {
	return fmt.Sprintf("invalid weekday %q", e.Name)
}

func (e *InvalidWeekdayError) Is(target error) bool {
	return target == ErrInvalidWeekday
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves an English weekday name, ignoring case and surrounding spaces
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, &InvalidWeekdayError{Name: name}
	}
	return wd, nil
}
