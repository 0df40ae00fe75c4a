package lookup

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/username/ward-program/internal/calendar"
	"github.com/username/ward-program/pkg/dateutil"
)

// LoadHymns reads the hymn catalog: {"2": ["The Spirit of God", "https://..."]}
func LoadHymns(path string) (map[string]Hymn, error) {
	var raw map[string][]string
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}

	hymns := make(map[string]Hymn, len(raw))
	for number, fields := range raw {
		var hymn Hymn
		if len(fields) > 0 {
			hymn.Title = fields[0]
		}
		if len(fields) > 1 {
			hymn.URL = fields[1]
		}
		hymns[strings.TrimSpace(number)] = hymn
	}
	return hymns, nil
}

// LoadArtLinks reads the image id to URL table
func LoadArtLinks(path string) (map[string]string, error) {
	links := map[string]string{}
	if err := readJSON(path, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// LoadCleaning reads the cleaning roster: {"30 November 2024": "Name1, Name2"}
func LoadCleaning(path string) (calendar.Roster, error) {
	var raw map[string]string
	if err := readJSON(path, &raw); err != nil {
		return nil, err
	}

	roster := make(calendar.Roster, len(raw))
	for key, assignment := range raw {
		day, err := dateutil.ParseDate(key)
		if err != nil {
			return nil, fmt.Errorf("%s: cleaning date: %w", path, err)
		}
		if _, dup := roster[day]; dup {
			return nil, fmt.Errorf("%s: cleaning date %v listed twice", path, day)
		}
		roster[day] = assignment
	}
	return roster, nil
}

// LoadMeetingTypes reads the meeting type calendar: {"December 01": "Fast and Testimony"}
func LoadMeetingTypes(path string) (calendar.MeetingTypes, error) {
	types := calendar.MeetingTypes{}
	if err := readJSON(path, &types); err != nil {
		return nil, err
	}
	return types, nil
}

type templeDayFile struct {
	TempleDay      string        `json:"temple_day"`
	TempleWeek     weekNumber    `json:"temple_week"`
	TempleClosures []closureJSON `json:"temple_closures"`
}

type closureJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// weekNumber accepts 3 as well as "3"
type weekNumber int

func (w *weekNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*w = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("temple_week %s is not a number", string(data))
	}
	*w = weekNumber(n)
	return nil
}

var _ json.Unmarshaler = (*weekNumber)(nil)

// LoadTempleSchedule reads the temple day recurrence and closures
func LoadTempleSchedule(path string) (TempleSchedule, error) {
	var raw templeDayFile
	if err := readJSON(path, &raw); err != nil {
		return TempleSchedule{}, err
	}

	weekday, err := dateutil.ParseWeekday(raw.TempleDay)
	if err != nil {
		return TempleSchedule{}, fmt.Errorf("%s: temple_day: %w", path, err)
	}

	spec := calendar.WeekdaySpec{Weekday: weekday, Week: int(raw.TempleWeek)}
	if err := spec.Validate(); err != nil {
		return TempleSchedule{}, fmt.Errorf("%s: temple_week: %w", path, err)
	}

	closures := make(calendar.Closures, 0, len(raw.TempleClosures))
	for i, c := range raw.TempleClosures {
		start, err := dateutil.ParseDate(c.Start)
		if err != nil {
			return TempleSchedule{}, fmt.Errorf("%s: closure %d start: %w", path, i, err)
		}
		end, err := dateutil.ParseDate(c.End)
		if err != nil {
			return TempleSchedule{}, fmt.Errorf("%s: closure %d end: %w", path, i, err)
		}
		interval, err := calendar.NewInterval(start, end)
		if err != nil {
			return TempleSchedule{}, fmt.Errorf("%s: closure %d: %w", path, i, err)
		}
		closures = append(closures, interval)
	}

	return TempleSchedule{Spec: spec, Closures: closures, Configured: true}, nil
}
