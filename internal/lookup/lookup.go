// Package lookup loads the JSON lookup files that feed the program page:
// hymn catalog, art links, cleaning roster, meeting type calendar and the
// temple day schedule.
package lookup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/username/ward-program/internal/calendar"
	"go.uber.org/zap"
)

// File names inside the lookup folder
const (
	HymnsFile        = "hymns.json"
	ArtLinksFile     = "artlinks.json"
	CleaningFile     = "cleaning.json"
	MeetingTypesFile = "meeting_types.json"
	TempleDayFile    = "temple_day.json"
)

// Hymn is one entry of the hymn catalog
type Hymn struct {
	Title string
	URL   string
}

// TempleSchedule is the recurring temple day and its known closures
type TempleSchedule struct {
	Spec       calendar.WeekdaySpec
	Closures   calendar.Closures
	Configured bool
}

// Set holds every lookup table for one run
type Set struct {
	Hymns        map[string]Hymn
	ArtLinks     map[string]string
	Cleaning     calendar.Roster
	MeetingTypes calendar.MeetingTypes
	Temple       TempleSchedule
}

// Files lists every lookup file path under dir, used by the watcher
func Files(dir string) []string {
	names := []string{HymnsFile, ArtLinksFile, CleaningFile, MeetingTypesFile, TempleDayFile}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths
}

// Load reads all lookup files from dir.
// The hymn catalog and art links are required; the rest may be absent.
func Load(dir string, logger *zap.Logger) (*Set, error) {
	set := &Set{
		Cleaning:     calendar.Roster{},
		MeetingTypes: calendar.MeetingTypes{},
	}

	var err error
	if set.Hymns, err = LoadHymns(filepath.Join(dir, HymnsFile)); err != nil {
		return nil, err
	}
	if set.ArtLinks, err = LoadArtLinks(filepath.Join(dir, ArtLinksFile)); err != nil {
		return nil, err
	}

	cleaningPath := filepath.Join(dir, CleaningFile)
	if roster, err := LoadCleaning(cleaningPath); err == nil {
		set.Cleaning = roster
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	} else {
		logger.Warn("Cleaning roster not found, no assignments will be shown", zap.String("file", cleaningPath))
	}

	meetingPath := filepath.Join(dir, MeetingTypesFile)
	if types, err := LoadMeetingTypes(meetingPath); err == nil {
		set.MeetingTypes = types
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	} else {
		logger.Warn("Meeting type calendar not found", zap.String("file", meetingPath))
	}

	templePath := filepath.Join(dir, TempleDayFile)
	if schedule, err := LoadTempleSchedule(templePath); err == nil {
		set.Temple = schedule
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	} else {
		logger.Warn("Temple day schedule not found", zap.String("file", templePath))
	}

	logger.Info("Lookup files loaded",
		zap.String("dir", dir),
		zap.Int("hymns", len(set.Hymns)),
		zap.Int("artlinks", len(set.ArtLinks)),
		zap.Int("cleaning_days", len(set.Cleaning)),
		zap.Int("meeting_types", len(set.MeetingTypes)),
		zap.Int("temple_closures", len(set.Temple.Closures)))

	return set, nil
}

// readJSON decodes path into v. A missing file keeps os.ErrNotExist in the chain.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
