// Package cmd implements the studytrack CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/studytrack/internal/activity"
	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/logging"
	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Environment variables.
const (
	envDir      = "STUDYTRACK_DIR"
	envLogLevel = "STUDYTRACK_LOG_LEVEL"
)

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
	flagNow     string
	flagVerbose bool
)

// logger is replaced once the board config is known.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "studytrack",
	Short: "Track learning tasks, streaks and achievements",
	Long: `studytrack keeps learning tasks as markdown files and derives progress
statistics, completion streaks and achievement badges from them.
Run studytrack without a subcommand to open the dashboard.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
		logger = logging.New(logging.Config{Level: logLevelOverride()})
		if flagNow != "" {
			if _, err := parseNow(flagNow); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the board directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&flagNow, "now", "", "evaluate as of this time (RFC3339 or YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")
}

// Execute runs the root command.
func Execute() {
	_ = godotenv.Load(".env")

	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	err = engineError(err)

	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv(output.EnvOutput) == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// engineError maps metrics errors onto coded CLI errors that carry the
// offending task id.
func engineError(err error) error {
	var invalid *metrics.InvalidInputError
	if errors.As(err, &invalid) {
		return clierr.Wrap(clierr.InvalidInput, err).WithDetails(map[string]any{
			"task_id": invalid.TaskID,
			"field":   invalid.Field,
		})
	}
	var unrecognized *metrics.UnrecognizedValueError
	if errors.As(err, &unrecognized) {
		return clierr.Wrap(clierr.UnrecognizedValue, err).WithDetails(map[string]any{
			"task_id": unrecognized.TaskID,
			"field":   unrecognized.Field,
			"value":   unrecognized.Value,
		})
	}
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) && errors.Is(err, metrics.ErrInvalidInput) {
		return clierr.Wrap(clierr.InvalidInput, err)
	}
	return err
}

// logLevelOverride returns the level forced by --verbose or the
// environment, or "" when the board config decides.
func logLevelOverride() string {
	if flagVerbose {
		return "debug"
	}
	return os.Getenv(envLogLevel)
}

// configureLogger rebuilds the logger from the board's log settings.
func configureLogger(cfg *config.Config) {
	lc := cfg.LoggingConfig()
	if lvl := logLevelOverride(); lvl != "" {
		lc.Level = lvl
	}
	logger = logging.New(lc).With(zap.String("board", cfg.Board.Name))
}

// parseNow accepts RFC3339 timestamps and YYYY-MM-DD dates (midnight UTC).
func parseNow(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return time.Time{}, task.ValidateDate("now", s, err)
	}
	return d.Time, nil
}

// now returns the clock for engine calls: --now when given, else the
// current time.
func now() time.Time {
	if flagNow != "" {
		if t, err := parseNow(flagNow); err == nil {
			return t
		}
	}
	return time.Now()
}

// defaultHomeDir returns the path to ~/.config/studytrack.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", config.DefaultDir), nil
}

// resolveDir returns the board directory: --dir, then STUDYTRACK_DIR, then
// the nearest studytrack/ above the working directory, then
// ~/.config/studytrack.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if dir := os.Getenv(envDir); dir != "" {
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the board config. The home board is created
// on first use.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, migrated, err := config.Load(dir)
	if err == nil {
		configureLogger(cfg)
		if migrated {
			logger.Info("config migrated", zap.String("path", cfg.ConfigPath()), zap.Int("version", cfg.Version))
		}
		logger.Debug("config loaded", zap.String("dir", cfg.Dir()))
		return cfg, nil
	}

	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, clierr.New(clierr.BoardNotFound, err.Error()).WithDetails(map[string]any{"dir": dir})
	}

	cfg, err = config.Init(homeDir, "My Learning")
	if err != nil {
		return nil, err
	}
	configureLogger(cfg)
	logger.Info("created home board", zap.String("dir", homeDir))
	return cfg, nil
}

// loadTasks reads every task of the board, logging and printing files
// that could not be parsed.
func loadTasks(cfg *config.Config) ([]*task.Task, error) {
	tasks, warnings, err := task.ReadAllLenient(cfg.TasksPath())
	if err != nil {
		return nil, err
	}
	printWarnings(warnings)
	logger.Debug("tasks loaded", zap.Int("count", len(tasks)), zap.Int("skipped", len(warnings)))
	return tasks, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printWarnings writes task read warnings to stderr.
func printWarnings(warnings []task.ReadWarning) {
	for _, w := range warnings {
		logger.Warn("skipping malformed task file", zap.String("file", w.File), zap.Error(w.Err))
		fmt.Fprintf(os.Stderr, "Warning: skipping malformed file %s: %v\n", w.File, w.Err)
	}
}

// logActivity appends an entry to the activity log. A failed write never
// fails the command.
func logActivity(cfg *config.Config, action string, taskID int, detail string) {
	err := activity.Append(cfg.Dir(), activity.Entry{
		Timestamp: now(),
		Action:    action,
		TaskID:    taskID,
		Detail:    detail,
	})
	if err != nil {
		logger.Warn("activity log write failed", zap.String("action", action), zap.Error(err))
	}
}

// parseIDs splits a comma-separated ID string into deduplicated int IDs.
func parseIDs(arg string) ([]int, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[int]bool, len(parts))
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.Atoi(strings.TrimPrefix(p, "#"))
		if err != nil || id <= 0 {
			return nil, task.ValidateTaskID(p)
		}
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidTaskID, "no valid task IDs provided")
	}
	return ids, nil
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []int, fn func(int) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		err := fn(id)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{ID: id, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task #%d: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
