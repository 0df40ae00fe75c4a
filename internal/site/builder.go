// Package site runs one program build: load lookups and settings, assemble
// the page as of a given day, render it and write the output files.
package site

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/username/ward-program/internal/config"
	"github.com/username/ward-program/internal/lookup"
	"github.com/username/ward-program/internal/program"
	"github.com/username/ward-program/internal/render"
	"github.com/username/ward-program/pkg/dateutil"
	"go.uber.org/zap"
)

// Result summarizes one build
type Result struct {
	Today    dateutil.Date
	Page     *program.Page
	Outputs  []render.Output
	Written  bool
	Duration time.Duration
}

// Builder reads its inputs from disk on every call, so a long running
// process picks up edits without restarting.
type Builder struct {
	cfg    *config.Config
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewBuilder creates a builder for the given configuration
func NewBuilder(cfg *config.Config, logger *zap.Logger) *Builder {
	return &Builder{
		cfg:    cfg,
		loc:    cfg.Schedule.GetLocation(),
		now:    time.Now,
		logger: logger,
	}
}

// Today returns the current date in the configured timezone
func (b *Builder) Today() dateutil.Date {
	return dateutil.FromTime(b.now().In(b.loc))
}

// Assemble loads every input and merges them as of today
func (b *Builder) Assemble(today dateutil.Date) (*program.Page, error) {
	lookups, err := lookup.Load(b.cfg.Paths.LookupDir, b.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load lookups: %w", err)
	}

	settings, err := program.LoadSettings(b.cfg.Paths.SettingsFile)
	if err != nil {
		return nil, err
	}

	agg := program.NewAggregator(lookups, program.Options{
		CleaningCount:      b.cfg.Schedule.CleaningCount,
		TempleSearchMonths: b.cfg.Schedule.TempleSearchMonths,
		TempleDayTitle:     b.cfg.Schedule.TempleDayTitle,
	}, b.logger)

	return agg.Build(settings, today)
}

// Build assembles and renders the pages. Unless dryRun is set both files are written.
func (b *Builder) Build(today dateutil.Date, dryRun bool) (*Result, error) {
	start := time.Now()

	page, err := b.Assemble(today)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(render.Options{
		IndexTemplate:    b.cfg.Paths.IndexTemplate,
		ArtLinksTemplate: b.cfg.Paths.ArtLinksTemplate,
		Location:         b.loc,
		Now:              b.now,
	}, b.logger)
	if err != nil {
		return nil, err
	}

	result := &Result{Today: today, Page: page}
	if dryRun {
		result.Outputs, err = renderer.Render(page, b.cfg.Paths.IndexOutput, b.cfg.Paths.ArtLinksOutput)
	} else {
		result.Outputs, err = renderer.WriteFiles(page, b.cfg.Paths.IndexOutput, b.cfg.Paths.ArtLinksOutput)
		result.Written = err == nil
	}
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	b.logger.Info("Build finished",
		zap.Stringer("today", today),
		zap.Bool("dry_run", dryRun),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// WatchedFiles lists every input a rebuild depends on
func (b *Builder) WatchedFiles() []string {
	files := lookup.Files(b.cfg.Paths.LookupDir)
	files = append(files, b.cfg.Paths.SettingsFile)
	if b.cfg.Paths.IndexTemplate != "" {
		files = append(files, b.cfg.Paths.IndexTemplate)
	}
	if b.cfg.Paths.ArtLinksTemplate != "" {
		files = append(files, b.cfg.Paths.ArtLinksTemplate)
	}
	for i, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			files[i] = abs
		}
	}
	return files
}
