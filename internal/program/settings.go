// Package program merges the weekly settings file with the lookup tables and
// the computed calendar facts into the data handed to the page templates.
package program

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the parsed settings.yaml. Values keeps every top level key so
// the template can reach fields the aggregator knows nothing about
// (speakers, prayers, announcements).
type Settings struct {
	Values map[string]any

	// Hymns maps a program slot ("opening", "sacrament", ...) to its
	// settings entry, which carries at least "number".
	Hymns map[string]map[string]any

	CoverImage  string
	MeetingType string
	// MeetingTypeSet is true when settings.yaml overrides the meeting type
	MeetingTypeSet bool
}

type settingsView struct {
	Hymns           map[string]map[string]any `yaml:"hymns"`
	MeetingCoverImg any                       `yaml:"meeting_cover_img"`
	MeetingType     *string                   `yaml:"meeting_type"`
}

// LoadSettings reads and parses the settings file
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings, err := ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return settings, nil
}

// ParseSettings parses settings YAML
func ParseSettings(data []byte) (*Settings, error) {
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}

	var view settingsView
	if err := yaml.Unmarshal(data, &view); err != nil {
		return nil, err
	}

	settings := &Settings{
		Values: values,
		Hymns:  view.Hymns,
	}
	if settings.Hymns == nil {
		settings.Hymns = map[string]map[string]any{}
	}
	if view.MeetingCoverImg != nil {
		settings.CoverImage = strings.TrimSpace(fmt.Sprint(view.MeetingCoverImg))
	}
	if view.MeetingType != nil {
		settings.MeetingType = *view.MeetingType
		settings.MeetingTypeSet = true
	}

	return settings, nil
}

// HymnNumber returns the catalog number of a slot entry as a string
func HymnNumber(entry map[string]any) string {
	number, ok := entry["number"]
	if !ok || number == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(number))
}
