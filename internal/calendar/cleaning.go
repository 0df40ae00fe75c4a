package calendar

import (
	"time"

	"github.com/username/ward-program/pkg/dateutil"
)

// NextCleaningAssignments returns the roster entries for the next count
// Saturdays, starting with today when today is a Saturday. Saturdays without
// an entry are left out, so the result may be shorter than count.
func NextCleaningAssignments(roster Roster, today dateutil.Date, count int) []Assignment {
	results := []Assignment{}
	if count <= 0 || len(roster) == 0 {
		return results
	}

	saturday := dateutil.NextWeekday(today, time.Saturday)
	for i := 0; i < count; i++ {
		if assignment := roster[saturday]; assignment != "" {
			results = append(results, Assignment{Date: saturday, Assignment: assignment})
		}
		saturday = saturday.AddDays(7)
	}

	return results
}
