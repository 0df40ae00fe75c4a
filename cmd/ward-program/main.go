package main

import (
	"fmt"
	"io"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/spf13/cobra"
	"github.com/username/ward-program/internal/config"
	"github.com/username/ward-program/internal/daemon"
	"github.com/username/ward-program/internal/program"
	"github.com/username/ward-program/internal/site"
	"github.com/username/ward-program/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
	out        io.Writer = os.Stdout
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ward-program",
		Short: "Ward sacrament meeting program generator",
		Long:  "Merge hymn, art, cleaning and temple lookups with the weekly settings and render the program web page",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default ./config.yaml if present)")

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(nextCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var dryRun bool
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render index.html and artlinks.html once",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := newBuilder()
			if err != nil {
				return err
			}

			today, err := resolveToday(dateFlag, builder)
			if err != nil {
				return err
			}

			result, err := builder.Build(today, dryRun)
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}

			printBuild(out, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render in memory without writing files")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Build as of this date (YYYY-MM-DD) instead of today")

	return cmd
}

func nextCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the upcoming Sunday, temple day and cleaning assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := newBuilder()
			if err != nil {
				return err
			}

			today, err := resolveToday(dateFlag, builder)
			if err != nil {
				return err
			}

			page, err := builder.Assemble(today)
			if err != nil {
				return err
			}

			printNext(out, today, page)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Compute as of this date (YYYY-MM-DD) instead of today")

	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild on every input change and once a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			hour, minute := cfg.Watch.GetDailyTime()
			d := daemon.NewDaemon(
				site.NewBuilder(cfg, logger),
				cfg.Schedule.GetLocation(),
				hour, minute,
				cfg.Watch.GetDebounce(),
				logger,
			)
			return d.Start()
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	return cfg, nil
}

func newBuilder() (*site.Builder, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return site.NewBuilder(cfg, logger), nil
}

type clock interface {
	Today() dateutil.Date
}

// resolveToday prefers the --date flag over the configured wall clock
func resolveToday(flag string, c clock) (dateutil.Date, error) {
	if flag == "" {
		return c.Today(), nil
	}
	d, err := dateutil.ParseDate(flag)
	if err != nil {
		return dateutil.Date{}, fmt.Errorf("invalid --date: %w", err)
	}
	return d, nil
}

func printBuild(w io.Writer, result *site.Result) {
	fmt.Fprintf(w, "%s Program for %s (as of %s)\n",
		getIcon(!result.Written),
		dateutil.FormatOrdinal(result.Page.Sunday.Date),
		result.Today)
	for _, o := range result.Outputs {
		verb := "rendered"
		if result.Written {
			verb = "wrote"
		}
		fmt.Fprintf(w, "   • %s %s (%d bytes)\n", verb, o.Path, len(o.HTML))
	}
	fmt.Fprintf(w, "   • took %s\n", result.Duration.Round(time.Millisecond))
	if !result.Written {
		fmt.Fprintln(w, "\n[DRY RUN] No files were written")
	}
}

func printNext(w io.Writer, today dateutil.Date, page *program.Page) {
	fmt.Fprintf(w, "📅 As of %s\n", today)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")

	meetingType := "-"
	if mt, ok := page.Data[program.KeyMeetingType].(string); ok && mt != "" {
		meetingType = mt
	}
	fmt.Fprintf(w, "  Sunday:        %s (%s)\n", dateutil.FormatOrdinal(page.Sunday.Date), page.Sunday.Date)
	fmt.Fprintf(w, "  Meeting type:  %s\n", meetingType)

	if page.TempleDay.IsZero() {
		fmt.Fprintln(w, "  Temple day:    not scheduled")
	} else {
		fmt.Fprintf(w, "  Temple day:    %s\n", dateutil.FormatLong(page.TempleDay))
	}

	if len(page.Cleaning) == 0 {
		fmt.Fprintln(w, "  Cleaning:      none assigned")
		return
	}
	fmt.Fprintln(w, "  Cleaning:")
	for _, a := range page.Cleaning {
		fmt.Fprintf(w, "    %s  %s\n", dateutil.FormatLong(a.Date), a.Assignment)
	}
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}

func getIcon(dryRun bool) string {
	if dryRun {
		return "📋"
	}
	return "✅"
}
