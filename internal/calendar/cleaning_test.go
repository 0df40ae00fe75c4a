package calendar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/username/ward-program/pkg/dateutil"
)

func TestNextCleaningAssignments(t *testing.T) {
	roster := Roster{
		date(2024, 11, 30): "Alice, Bob",
		date(2024, 12, 14): "Carl",
		date(2024, 12, 28): "Dana",
	}

	tests := []struct {
		name  string
		today dateutil.Date
		count int
		want  []Assignment
	}{
		{
			name:  "two consecutive Saturdays with entries",
			today: date(2024, 11, 25),
			count: 3,
			want: []Assignment{
				{Date: date(2024, 11, 30), Assignment: "Alice, Bob"},
				{Date: date(2024, 12, 14), Assignment: "Carl"},
			},
		},
		{
			name:  "missing Saturday is omitted not padded",
			today: date(2024, 12, 1),
			count: 2,
			want: []Assignment{
				{Date: date(2024, 12, 14), Assignment: "Carl"},
			},
		},
		{
			name:  "today is a Saturday",
			today: date(2024, 12, 14),
			count: 1,
			want: []Assignment{
				{Date: date(2024, 12, 14), Assignment: "Carl"},
			},
		},
		{
			name:  "no entries in window",
			today: date(2025, 2, 1),
			count: 4,
			want:  []Assignment{},
		},
		{
			name:  "zero count",
			today: date(2024, 11, 25),
			count: 0,
			want:  []Assignment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NextCleaningAssignments(roster, tt.today, tt.count)

			if diff := cmp.Diff(tt.want, result); diff != "" {
				t.Errorf("NextCleaningAssignments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNextCleaningAssignments_GapInsideWindow(t *testing.T) {
	roster := Roster{
		date(2024, 11, 30): "Alice, Bob",
		date(2024, 12, 14): "Carl",
	}

	result := NextCleaningAssignments(roster, date(2024, 11, 25), 2)
	want := []Assignment{{Date: date(2024, 11, 30), Assignment: "Alice, Bob"}}

	// 2024-12-07 has no entry, so only the first of the two Saturdays shows
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("NextCleaningAssignments() mismatch (-want +got):\n%s", diff)
	}
}

func TestNextCleaningAssignments_EmptyRoster(t *testing.T) {
	result := NextCleaningAssignments(Roster{}, date(2024, 11, 25), 3)
	if len(result) != 0 {
		t.Errorf("NextCleaningAssignments(empty) = %v, want empty", result)
	}
	if result == nil {
		t.Errorf("NextCleaningAssignments(empty) = nil, want empty slice")
	}
}
