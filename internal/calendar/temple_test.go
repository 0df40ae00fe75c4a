package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/username/ward-program/pkg/dateutil"
)

func mustInterval(t *testing.T, start, end dateutil.Date) Interval {
	t.Helper()
	interval, err := NewInterval(start, end)
	if err != nil {
		t.Fatalf("NewInterval(%v, %v) error = %v", start, end, err)
	}
	return interval
}

func TestNextTempleDay(t *testing.T) {
	thirdSaturday := WeekdaySpec{Weekday: time.Saturday, Week: 3}

	tests := []struct {
		name     string
		spec     WeekdaySpec
		closures func(t *testing.T) Closures
		today    dateutil.Date
		want     dateutil.Date
	}{
		{
			name:     "current month occurrence still ahead",
			spec:     thirdSaturday,
			closures: func(t *testing.T) Closures { return nil },
			today:    date(2024, 11, 1),
			want:     date(2024, 11, 16),
		},
		{
			name: "single day closure pushes to next month",
			spec: thirdSaturday,
			closures: func(t *testing.T) Closures {
				return Closures{mustInterval(t, date(2024, 11, 16), date(2024, 11, 16))}
			},
			today: date(2024, 11, 1),
			want:  date(2024, 12, 21),
		},
		{
			name:     "today is the occurrence",
			spec:     thirdSaturday,
			closures: func(t *testing.T) Closures { return nil },
			today:    date(2024, 11, 16),
			want:     date(2024, 11, 16),
		},
		{
			name:     "occurrence already passed this month",
			spec:     thirdSaturday,
			closures: func(t *testing.T) Closures { return nil },
			today:    date(2024, 11, 17),
			want:     date(2024, 12, 21),
		},
		{
			name: "multi month closure spanning year end",
			spec: thirdSaturday,
			closures: func(t *testing.T) Closures {
				return Closures{
					mustInterval(t, date(2024, 12, 1), date(2025, 2, 28)),
					mustInterval(t, date(2024, 11, 16), date(2024, 11, 16)),
				}
			},
			today: date(2024, 11, 1),
			want:  date(2025, 3, 15),
		},
		{
			name: "closure ending the day before is ignored",
			spec: thirdSaturday,
			closures: func(t *testing.T) Closures {
				return Closures{mustInterval(t, date(2024, 11, 1), date(2024, 11, 15))}
			},
			today: date(2024, 11, 1),
			want:  date(2024, 11, 16),
		},
		{
			name:     "last Friday",
			spec:     WeekdaySpec{Weekday: time.Friday, Week: -1},
			closures: func(t *testing.T) Closures { return nil },
			today:    date(2024, 11, 30),
			want:     date(2024, 12, 27),
		},
		{
			name:     "fifth Monday skips months without one",
			spec:     WeekdaySpec{Weekday: time.Monday, Week: 5},
			closures: func(t *testing.T) Closures { return nil },
			today:    date(2024, 10, 1),
			want:     date(2024, 12, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NextTempleDay(tt.spec, tt.closures(t), tt.today)
			if err != nil {
				t.Fatalf("NextTempleDay() error = %v", err)
			}

			if result != tt.want {
				t.Errorf("NextTempleDay(%v, today %v) = %v, want %v", tt.spec, tt.today, result, tt.want)
			}
		})
	}
}

func TestNextTempleDay_Exhausted(t *testing.T) {
	spec := WeekdaySpec{Weekday: time.Saturday, Week: 3}
	closures := Closures{mustInterval(t, date(2024, 1, 1), date(2027, 12, 31))}

	_, err := NextTempleDay(spec, closures, date(2024, 11, 1))
	if !errors.Is(err, ErrNoValidDate) {
		t.Fatalf("NextTempleDay() error = %v, want ErrNoValidDate", err)
	}

	var notFound *NoValidDateFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("NextTempleDay() error = %T, want *NoValidDateFoundError", err)
	}
	if notFound.Months != TempleSearchMonths {
		t.Errorf("Months = %d, want %d", notFound.Months, TempleSearchMonths)
	}
}

func TestNextTempleDayWithin_Bound(t *testing.T) {
	spec := WeekdaySpec{Weekday: time.Saturday, Week: 3}
	closures := Closures{mustInterval(t, date(2024, 11, 1), date(2024, 12, 31))}

	if _, err := NextTempleDayWithin(spec, closures, date(2024, 11, 1), 2); !errors.Is(err, ErrNoValidDate) {
		t.Errorf("NextTempleDayWithin(2 months) error = %v, want ErrNoValidDate", err)
	}

	result, err := NextTempleDayWithin(spec, closures, date(2024, 11, 1), 3)
	if err != nil {
		t.Fatalf("NextTempleDayWithin(3 months) error = %v", err)
	}
	if want := date(2025, 1, 18); result != want {
		t.Errorf("NextTempleDayWithin(3 months) = %v, want %v", result, want)
	}
}

func TestNextTempleDay_InvalidSpec(t *testing.T) {
	_, err := NextTempleDay(WeekdaySpec{Weekday: time.Saturday, Week: 0}, nil, date(2024, 11, 1))
	if !errors.Is(err, ErrInvalidWeekOfMonth) {
		t.Errorf("NextTempleDay() error = %v, want ErrInvalidWeekOfMonth", err)
	}
}

func TestNextTempleDay_Idempotent(t *testing.T) {
	spec := WeekdaySpec{Weekday: time.Sunday, Week: 1}
	closures := Closures{mustInterval(t, date(2024, 12, 1), date(2024, 12, 1))}

	first, err1 := NextTempleDay(spec, closures, date(2024, 11, 20))
	second, err2 := NextTempleDay(spec, closures, date(2024, 11, 20))
	if first != second || err1 != nil || err2 != nil {
		t.Errorf("NextTempleDay() not repeatable: (%v, %v) then (%v, %v)", first, err1, second, err2)
	}
	if want := date(2025, 1, 5); first != want {
		t.Errorf("NextTempleDay() = %v, want %v", first, want)
	}
}
