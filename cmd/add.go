package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/filelock"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

const lockFileName = ".lock"

var addCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create"},
	Short:   "Add a learning task",
	Long: `Creates a new task file with the given title and optional fields.

Title can be provided as a positional argument or via --title flag.
The scheduled date defaults to today (UTC).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	addCmd.Flags().String("status", "", "task status (default pending)")
	addCmd.Flags().String("priority", "", "task priority (default from config)")
	addCmd.Flags().String("difficulty", "", "difficulty (beginner, intermediate, advanced, expert)")
	addCmd.Flags().String("category", "", "category id or name")
	addCmd.Flags().String("scheduled", "", "scheduled date (YYYY-MM-DD)")
	addCmd.Flags().Int("estimate", 0, "time estimate in minutes")
	addCmd.Flags().StringSlice("tags", nil, "comma-separated tags")
	addCmd.Flags().String("body", "", "task description (markdown)")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "tag":
			name = "tags"
		case "description":
			name = "body"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, err := resolveAddTitle(cmd, args)
	if err != nil {
		return err
	}

	dir, err := resolveDir()
	if err != nil {
		return err
	}

	var created *task.Task
	err = filelock.WithLock(filepath.Join(dir, lockFileName), func() error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		created, err = createTask(cmd, cfg, title)
		return err
	})
	if err != nil {
		return err
	}

	return outputAddResult(created)
}

// createTask writes a new task with the next free id. The caller holds the
// board lock so concurrent adds never share an id.
func createTask(cmd *cobra.Command, cfg *config.Config, title string) (*task.Task, error) {
	ts := now()
	t := &task.Task{
		ID:         cfg.NextID,
		Title:      title,
		Status:     task.StatusPending,
		Priority:   cfg.Defaults.Priority,
		Difficulty: cfg.Defaults.Difficulty,
		Scheduled:  date.FromTime(ts).Time,
		Created:    ts,
		Updated:    ts,
	}

	if err := applyAddFlags(cmd, t, cfg); err != nil {
		return nil, err
	}
	if t.Status == task.StatusCompleted {
		task.SetStatus(t, t.Status, ts)
	}

	path := filepath.Join(cfg.TasksPath(), task.GenerateFilename(t.ID, task.GenerateSlug(title)))
	if err := task.Write(path, t); err != nil {
		return nil, fmt.Errorf("writing task: %w", err)
	}
	t.File = path

	cfg.NextID++
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	logger.Info("task created", zap.Int("id", t.ID), zap.String("file", path))
	logActivity(cfg, "add", t.ID, t.Title)
	return t, nil
}

func outputAddResult(t *task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  File: %s", t.File)
	output.Messagef(os.Stdout, "  Status: %s | Priority: %s", t.Status, t.Priority)
	if t.Category != "" {
		output.Messagef(os.Stdout, "  Category: %s", t.Category)
	}
	if len(t.Tags) > 0 {
		output.Messagef(os.Stdout, "  Tags: %s", strings.Join(t.Tags, ", "))
	}
	return nil
}

// resolveAddTitle returns the task title from either the positional arg or --title flag.
func resolveAddTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional && strings.TrimSpace(args[0]) != "":
		return strings.TrimSpace(args[0]), nil
	case hasFlag:
		return strings.TrimSpace(flagTitle), nil
	default:
		return "", clierr.Wrap(clierr.InvalidInput,
			errors.New("title is required: provide it as an argument or with --title"))
	}
}

func applyAddFlags(cmd *cobra.Command, t *task.Task, cfg *config.Config) error {
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		s, err := task.ParseStatus(v)
		if err != nil {
			return err
		}
		t.Status = s
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		p, err := task.ParsePriority(v)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if v, _ := cmd.Flags().GetString("difficulty"); v != "" {
		d, err := task.ParseDifficulty(v)
		if err != nil {
			return err
		}
		t.Difficulty = d
	}
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		id, err := resolveCategoryRef(cfg, v)
		if err != nil {
			return err
		}
		t.Category = id
	}
	if v, _ := cmd.Flags().GetString("scheduled"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return task.ValidateDate("scheduled", v, err)
		}
		t.Scheduled = d.Time
	}
	if cmd.Flags().Changed("estimate") {
		v, _ := cmd.Flags().GetInt("estimate")
		if err := task.ValidateTimeEstimate(v); err != nil {
			return err
		}
		t.TimeEstimate = &v
	}
	if v, _ := cmd.Flags().GetStringSlice("tags"); len(v) > 0 {
		t.Tags = appendUnique(nil, v...)
	}
	if v, _ := cmd.Flags().GetString("body"); v != "" {
		t.Description = v
	}
	return nil
}

// resolveCategoryRef accepts a category id or display name.
func resolveCategoryRef(cfg *config.Config, ref string) (string, error) {
	if task.FindCategory(cfg.Categories, ref) >= 0 {
		return ref, nil
	}
	if id := task.CategoryID(ref); task.FindCategory(cfg.Categories, id) >= 0 {
		return id, nil
	}
	return "", task.ValidateCategory(ref, cfg.Categories)
}

// appendUnique appends values to slice, skipping blanks and duplicates.
func appendUnique(slice []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		found := false
		for _, existing := range slice {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			slice = append(slice, v)
		}
	}
	return slice
}

// removeAll removes every occurrence of values from slice.
func removeAll(slice []string, values ...string) []string {
	drop := make(map[string]bool, len(values))
	for _, v := range values {
		drop[strings.TrimSpace(v)] = true
	}
	out := slice[:0]
	for _, s := range slice {
		if !drop[s] {
			out = append(out, s)
		}
	}
	return out
}
