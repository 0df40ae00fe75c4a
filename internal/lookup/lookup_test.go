package lookup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/username/ward-program/internal/calendar"
	"github.com/username/ward-program/pkg/dateutil"
	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func writeRequired(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, HymnsFile, `{"2": ["The Spirit of God", "https://example.org/hymns/2"], "169": ["As Now We Take the Sacrament"]}`)
	writeFile(t, dir, ArtLinksFile, `{"1": "https://example.org/art/1.jpg"}`)
}

func TestLoad_AllFiles(t *testing.T) {
	dir := t.TempDir()
	writeRequired(t, dir)
	writeFile(t, dir, CleaningFile, `{"30 November 2024": "Alice, Bob", "14 December 2024": "Carl"}`)
	writeFile(t, dir, MeetingTypesFile, `{"December 01": "Fast and Testimony"}`)
	writeFile(t, dir, TempleDayFile, `{
		"temple_day": "saturday",
		"temple_week": 3,
		"temple_closures": [{"start": "16 November 2024", "end": "16 November 2024"}]
	}`)

	set, err := Load(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantHymns := map[string]Hymn{
		"2":   {Title: "The Spirit of God", URL: "https://example.org/hymns/2"},
		"169": {Title: "As Now We Take the Sacrament"},
	}
	if diff := cmp.Diff(wantHymns, set.Hymns); diff != "" {
		t.Errorf("Hymns mismatch (-want +got):\n%s", diff)
	}

	wantRoster := calendar.Roster{
		dateutil.NewDate(2024, 11, 30): "Alice, Bob",
		dateutil.NewDate(2024, 12, 14): "Carl",
	}
	if diff := cmp.Diff(wantRoster, set.Cleaning); diff != "" {
		t.Errorf("Cleaning mismatch (-want +got):\n%s", diff)
	}

	if got := set.MeetingTypes["December 01"]; got != "Fast and Testimony" {
		t.Errorf("MeetingTypes[December 01] = %q, want Fast and Testimony", got)
	}

	wantTemple := TempleSchedule{
		Spec: calendar.WeekdaySpec{Weekday: time.Saturday, Week: 3},
		Closures: calendar.Closures{
			{Start: dateutil.NewDate(2024, 11, 16), End: dateutil.NewDate(2024, 11, 16)},
		},
		Configured: true,
	}
	if diff := cmp.Diff(wantTemple, set.Temple); diff != "" {
		t.Errorf("Temple mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_OptionalFilesMissing(t *testing.T) {
	dir := t.TempDir()
	writeRequired(t, dir)

	set, err := Load(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(set.Cleaning) != 0 || len(set.MeetingTypes) != 0 || set.Temple.Configured {
		t.Errorf("Load() with only required files = %+v, want empty optional tables", set)
	}
}

func TestLoad_RequiredFileMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ArtLinksFile, `{}`)

	_, err := Load(dir, zaptest.NewLogger(t))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() without hymns.json error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadCleaning_BadDate(t *testing.T) {
	path := writeFile(t, t.TempDir(), CleaningFile, `{"sometime soon": "Alice"}`)

	if _, err := LoadCleaning(path); err == nil {
		t.Error("LoadCleaning() expected error for unparseable date, got nil")
	}
}

func TestLoadCleaning_SameDayTwice(t *testing.T) {
	path := writeFile(t, t.TempDir(), CleaningFile, `{"5 November 2022": "Alice", "05 November 2022": "Bob"}`)

	if _, err := LoadCleaning(path); err == nil {
		t.Error("LoadCleaning() expected error for duplicate date, got nil")
	}
}

func TestLoadTempleSchedule(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		want    calendar.WeekdaySpec
	}{
		{
			name:    "week as string",
			content: `{"temple_day": "Friday", "temple_week": "-1"}`,
			want:    calendar.WeekdaySpec{Weekday: time.Friday, Week: -1},
		},
		{
			name:    "unknown weekday",
			content: `{"temple_day": "Funday", "temple_week": 3}`,
			wantErr: dateutil.ErrInvalidWeekday,
		},
		{
			name:    "missing week",
			content: `{"temple_day": "Saturday"}`,
			wantErr: calendar.ErrInvalidWeekOfMonth,
		},
		{
			name:    "reversed closure",
			content: `{"temple_day": "Saturday", "temple_week": 3, "temple_closures": [{"start": "20 December 2024", "end": "1 December 2024"}]}`,
			wantErr: calendar.ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), TempleDayFile, tt.content)

			schedule, err := LoadTempleSchedule(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadTempleSchedule() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTempleSchedule() error = %v", err)
			}
			if schedule.Spec != tt.want {
				t.Errorf("Spec = %+v, want %+v", schedule.Spec, tt.want)
			}
		})
	}
}

func TestFiles(t *testing.T) {
	paths := Files("lookup")
	if len(paths) != 5 || paths[0] != filepath.Join("lookup", HymnsFile) {
		t.Errorf("Files() = %v", paths)
	}
}
