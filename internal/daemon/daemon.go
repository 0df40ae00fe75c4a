package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/username/ward-program/internal/site"
	"github.com/username/ward-program/pkg/dateutil"
	"go.uber.org/zap"
)

// Builder is what the daemon rebuilds
type Builder interface {
	Build(today dateutil.Date, dryRun bool) (*site.Result, error)
	WatchedFiles() []string
}

// Daemon rebuilds the program when an input file changes and once a day,
// so the page rolls over to the next Sunday without anyone editing it.
type Daemon struct {
	builder     Builder
	loc         *time.Location
	dailyHour   int // Hour to run the daily rebuild (0-23)
	dailyMinute int // Minute to run the daily rebuild (0-59)
	debounce    time.Duration
	logger      *zap.Logger
	now         func() time.Time
	tick        time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex // Serializes rebuilds
	lastRunDate string     // Date of the last daily rebuild
	builds      int
}

// NewDaemon creates a daemon that rebuilds daily at dailyHour:dailyMinute in loc
func NewDaemon(builder Builder, loc *time.Location, dailyHour, dailyMinute int, debounce time.Duration, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())
	if loc == nil {
		loc = time.Local
	}

	return &Daemon{
		builder:     builder,
		loc:         loc,
		dailyHour:   dailyHour,
		dailyMinute: dailyMinute,
		debounce:    debounce,
		logger:      logger,
		now:         time.Now,
		tick:        time.Minute,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start runs the daemon until SIGINT/SIGTERM or Stop
func (d *Daemon) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()
		case <-d.ctx.Done():
		}
	}()

	return d.Run()
}

// Run builds once, then watches inputs and the clock until stopped
func (d *Daemon) Run() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range d.builder.WatchedFiles() {
		watched[filepath.Clean(f)] = true
		dirs[filepath.Dir(f)] = true
	}
	// Watch directories: editors save by renaming a new file over the old one
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	d.logger.Info("Watching program inputs",
		zap.Int("files", len(watched)),
		zap.Int("dirs", len(dirs)),
		zap.Duration("debounce", d.debounce),
		zap.Int("daily_hour", d.dailyHour),
		zap.Int("daily_minute", d.dailyMinute),
		zap.String("timezone", d.loc.String()))

	d.rebuild("startup")
	d.mu.Lock()
	d.lastRunDate = d.now().In(d.loc).Format(dateutil.ISOLayout)
	d.mu.Unlock()

	d.logger.Info("Next daily rebuild scheduled", zap.Time("next_run", d.calculateNextRun()))

	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	var settle <-chan time.Time
	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !d.relevant(event, watched) {
				continue
			}
			d.logger.Debug("Input changed",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()))
			settle = time.After(d.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Warn("File watcher error", zap.Error(err))

		case <-settle:
			settle = nil
			d.rebuild("input changed")

		case <-ticker.C:
			now := d.now().In(d.loc)
			if !d.shouldRunAt(now) {
				continue
			}
			today := now.Format(dateutil.ISOLayout)
			d.mu.Lock()
			already := d.lastRunDate == today
			d.lastRunDate = today
			d.mu.Unlock()
			if already {
				d.logger.Debug("Already rebuilt today, skipping")
				continue
			}
			d.rebuild("daily")
			d.logger.Info("Next daily rebuild scheduled", zap.Time("next_run", d.calculateNextRun()))
		}
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// Builds returns how many rebuilds have succeeded
func (d *Daemon) Builds() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.builds
}

func (d *Daemon) relevant(event fsnotify.Event, watched map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return watched[filepath.Clean(event.Name)]
}

// rebuild runs one build. Failures are logged and the daemon keeps running;
// the last good page stays on disk.
func (d *Daemon) rebuild(reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := dateutil.FromTime(d.now().In(d.loc))
	d.logger.Info("Rebuilding program", zap.String("reason", reason), zap.Stringer("today", today))

	result, err := d.builder.Build(today, false)
	if err != nil {
		d.logger.Error("Rebuild failed", zap.String("reason", reason), zap.Error(err))
		return
	}

	d.builds++
	d.logger.Info("Rebuild completed",
		zap.String("reason", reason),
		zap.Int("outputs", len(result.Outputs)),
		zap.Duration("duration", result.Duration))
}

// calculateNextRun calculates the next scheduled daily rebuild
func (d *Daemon) calculateNextRun() time.Time {
	now := d.now().In(d.loc)

	// Create target time for today
	today := time.Date(now.Year(), now.Month(), now.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, d.loc)

	// If target time already passed today, schedule for tomorrow
	if !now.Before(today) {
		return today.AddDate(0, 0, 1)
	}

	return today
}

// shouldRunAt checks if the daily rebuild is due at the given time
func (d *Daemon) shouldRunAt(now time.Time) bool {
	local := now.In(d.loc)
	return local.Hour() == d.dailyHour && local.Minute() == d.dailyMinute
}
