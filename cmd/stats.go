package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/watcher"
)

var flagWatch bool

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"summary", "analytics"},
	Short:   "Show progress statistics",
	Long: `Displays task counts, completion rate, priority and difficulty mix,
per-category progress and the completion streak.

Use --watch to keep the display live-updating whenever task files change.
Press Ctrl+C to stop.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update on file changes")
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := renderStats(cfg); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}
	return watchStats(cfg)
}

// snapshot computes statistics, streak and badges over one read of the board.
func snapshot(cfg *config.Config) (output.StatsReport, error) {
	tasks, err := loadTasks(cfg)
	if err != nil {
		return output.StatsReport{}, err
	}

	stats, err := metrics.ComputeStatistics(tasks, cfg.Categories)
	if err != nil {
		return output.StatsReport{}, err
	}
	streak, err := metrics.Streak(tasks, now())
	if err != nil {
		return output.StatsReport{}, err
	}

	return output.StatsReport{
		Board:      cfg.Board.Name,
		Statistics: stats,
		Streak:     streak,
		Badges:     metrics.EvaluateBadges(stats, streak.Current),
	}, nil
}

func renderStats(cfg *config.Config) error {
	report, err := snapshot(cfg)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, report)
	case output.FormatCompact:
		output.StatsCompact(os.Stdout, report.Board, report.Statistics, report.Streak)
	default:
		output.StatsTable(os.Stdout, report.Board, report.Statistics, report.Streak)
	}
	return nil
}

func watchStats(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New([]string{cfg.TasksPath(), cfg.Dir()}, watcher.Options{Exts: []string{".md", ".yml"}}, func() {
		clearScreen()
		// Categories may have changed too.
		freshCfg, _, loadErr := config.Load(cfg.Dir())
		if loadErr != nil {
			logger.Warn("reloading config", zap.Error(loadErr))
			freshCfg = cfg
		}
		if renderErr := renderStats(freshCfg); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", engineError(renderErr))
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		logger.Warn("file watcher", zap.Error(watchErr))
	})
	return nil
}

// clearScreen clears the terminal and homes the cursor.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
