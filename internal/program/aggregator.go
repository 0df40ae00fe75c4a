package program

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/username/ward-program/internal/calendar"
	"github.com/username/ward-program/internal/lookup"
	"github.com/username/ward-program/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	// DefaultTempleDayTitle labels the temple day line on the page
	DefaultTempleDayTitle = "Next ward temple day: "
	// DefaultCleaningCount is how many Saturdays of the roster are shown
	DefaultCleaningCount = 3
	// CoverImageNotFound replaces the cover URL when the image id is unknown
	CoverImageNotFound = "NOT FOUND"
)

// Template data keys of the index page
const (
	KeyDate            = "date"
	KeyMeetingType     = "meeting_type"
	KeyHymns           = "hymns"
	KeyCoverImageURL   = "meeting_cover_img_url"
	KeyTempleDayTitle  = "next_temple_day_title"
	KeyTempleDay       = "next_temple_day"
	KeyCleaning        = "next_cleaning_assignments"
	KeyArtLinks        = "artlinks"
	cleaningDateKey    = "date"
	cleaningPersonsKey = "assignment"
)

// Options tune the aggregator
type Options struct {
	CleaningCount      int
	TempleSearchMonths int
	TempleDayTitle     string
}

// ArtLink is one row of the art links page
type ArtLink struct {
	ID  string
	URL string
}

// Page is everything the renderer needs for one run
type Page struct {
	// Data is the index template data
	Data map[string]any

	ArtLinks  []ArtLink
	Sunday    calendar.Sunday
	TempleDay dateutil.Date
	Cleaning  []calendar.Assignment
}

// ArtLinksData is the art links template data
func (p *Page) ArtLinksData() map[string]any {
	return map[string]any{KeyArtLinks: p.ArtLinks}
}

// Aggregator builds pages. It is created once per run.
type Aggregator struct {
	lookups *lookup.Set
	opts    Options
	logger  *zap.Logger
}

// NewAggregator creates an aggregator over the loaded lookup tables
func NewAggregator(lookups *lookup.Set, opts Options, logger *zap.Logger) *Aggregator {
	if opts.CleaningCount <= 0 {
		opts.CleaningCount = DefaultCleaningCount
	}
	if opts.TempleSearchMonths <= 0 {
		opts.TempleSearchMonths = calendar.TempleSearchMonths
	}
	if opts.TempleDayTitle == "" {
		opts.TempleDayTitle = DefaultTempleDayTitle
	}

	return &Aggregator{
		lookups: lookups,
		opts:    opts,
		logger:  logger,
	}
}

// Build merges settings, lookups and the calendar facts as of today
func (a *Aggregator) Build(settings *Settings, today dateutil.Date) (*Page, error) {
	data := make(map[string]any, len(settings.Values)+8)
	for k, v := range settings.Values {
		data[k] = v
	}

	page := &Page{Data: data}

	data[KeyHymns] = a.hymns(settings)
	data[KeyCoverImageURL] = a.coverImageURL(settings.CoverImage)

	page.Sunday = calendar.UpcomingSunday(a.lookups.MeetingTypes, today)
	data[KeyDate] = dateutil.FormatOrdinal(page.Sunday.Date)
	if settings.MeetingTypeSet {
		data[KeyMeetingType] = settings.MeetingType
	} else if page.Sunday.Known {
		data[KeyMeetingType] = page.Sunday.MeetingType
	} else {
		data[KeyMeetingType] = nil
		a.logger.Warn("No meeting type for upcoming Sunday",
			zap.Stringer("sunday", page.Sunday.Date))
	}

	data[KeyTempleDayTitle] = a.opts.TempleDayTitle
	data[KeyTempleDay] = ""
	if a.lookups.Temple.Configured {
		templeDay, err := calendar.NextTempleDayWithin(
			a.lookups.Temple.Spec,
			a.lookups.Temple.Closures,
			today,
			a.opts.TempleSearchMonths,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to compute next temple day: %w", err)
		}
		page.TempleDay = templeDay
		data[KeyTempleDay] = dateutil.FormatLong(templeDay)
	}

	page.Cleaning = calendar.NextCleaningAssignments(a.lookups.Cleaning, today, a.opts.CleaningCount)
	cleaning := make([]map[string]string, len(page.Cleaning))
	for i, assignment := range page.Cleaning {
		cleaning[i] = map[string]string{
			cleaningDateKey:    dateutil.FormatLong(assignment.Date),
			cleaningPersonsKey: assignment.Assignment,
		}
	}
	data[KeyCleaning] = cleaning

	page.ArtLinks = sortedArtLinks(a.lookups.ArtLinks)

	a.logger.Info("Program assembled",
		zap.Stringer("today", today),
		zap.Stringer("sunday", page.Sunday.Date),
		zap.Any("meeting_type", data[KeyMeetingType]),
		zap.Stringer("temple_day", page.TempleDay),
		zap.Int("cleaning_assignments", len(page.Cleaning)))

	return page, nil
}

func (a *Aggregator) hymns(settings *Settings) map[string]map[string]any {
	hymns := make(map[string]map[string]any, len(settings.Hymns))
	for slot, entry := range settings.Hymns {
		merged := make(map[string]any, len(entry)+2)
		for k, v := range entry {
			merged[k] = v
		}

		number := HymnNumber(entry)
		hymn, ok := a.lookups.Hymns[number]
		if !ok {
			a.logger.Warn("Hymn not in catalog",
				zap.String("slot", slot),
				zap.String("number", number))
		}
		merged["title"] = hymn.Title
		merged["url"] = hymn.URL
		hymns[slot] = merged
	}
	return hymns
}

func (a *Aggregator) coverImageURL(id string) string {
	if id == "" {
		id = "0"
	}
	if url, ok := a.lookups.ArtLinks[id]; ok {
		return url
	}
	a.logger.Warn("Cover image not in art links", zap.String("id", id))
	return CoverImageNotFound
}

// sortedArtLinks orders ids numerically when they are numbers, otherwise by text
func sortedArtLinks(links map[string]string) []ArtLink {
	result := make([]ArtLink, 0, len(links))
	for id, url := range links {
		result = append(result, ArtLink{ID: id, URL: url})
	}

	sort.Slice(result, func(i, j int) bool {
		ni, erri := strconv.Atoi(result[i].ID)
		nj, errj := strconv.Atoi(result[j].ID)
		switch {
		case erri == nil && errj == nil:
			return ni < nj
		case erri == nil:
			return true
		case errj == nil:
			return false
		}
		return result[i].ID < result[j].ID
	})
	return result
}
