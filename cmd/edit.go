package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var editCmd = &cobra.Command{
	Use:   "edit ID[,ID,...]",
	Short: "Edit a task",
	Long: `Modifies fields of an existing task. Only specified fields are changed.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("status", "", "new status")
	editCmd.Flags().String("priority", "", "new priority")
	editCmd.Flags().String("difficulty", "", "new difficulty")
	editCmd.Flags().Bool("clear-difficulty", false, "mark the task as unrated")
	editCmd.Flags().String("category", "", "new category id or name")
	editCmd.Flags().Bool("clear-category", false, "remove the category")
	editCmd.Flags().String("scheduled", "", "new scheduled date (YYYY-MM-DD)")
	editCmd.Flags().Int("estimate", 0, "new time estimate in minutes")
	editCmd.Flags().Bool("clear-estimate", false, "remove the time estimate")
	editCmd.Flags().StringSlice("add-tag", nil, "add tags")
	editCmd.Flags().StringSlice("remove-tag", nil, "remove tags")
	editCmd.Flags().String("body", "", "new description (replaces the whole body)")
	editCmd.Flags().StringP("append-body", "a", "", "append text to the description")
	editCmd.Flags().BoolP("timestamp", "t", false, "prefix a timestamp line when appending")
	editCmd.Flags().String("completed", "", "mark completed on this date (YYYY-MM-DD)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		return editSingleTask(cfg, ids[0], cmd)
	}

	return runBatch(ids, func(id int) error {
		_, err := executeEdit(cfg, id, cmd)
		return err
	})
}

func editSingleTask(cfg *config.Config, id int, cmd *cobra.Command) error {
	t, err := executeEdit(cfg, id, cmd)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Updated task #%d: %s", t.ID, t.Title)
	return nil
}

// executeEdit performs the core edit: find, read, apply, write, log.
func executeEdit(cfg *config.Config, id int, cmd *cobra.Command) (*task.Task, error) {
	path, err := task.FindByID(cfg.TasksPath(), id)
	if err != nil {
		return nil, err
	}

	t, err := task.Read(path)
	if err != nil {
		return nil, err
	}

	oldTitle := t.Title
	changed, err := applyEditFlags(cmd, t, cfg)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, clierr.New(clierr.NoChanges, "no changes specified")
	}

	t.Updated = now()

	newPath, err := writeAndRename(path, t, oldTitle)
	if err != nil {
		return nil, err
	}
	t.File = newPath

	logger.Debug("task edited", zap.Int("id", t.ID), zap.String("file", newPath))
	logActivity(cfg, "edit", t.ID, t.Title)
	return t, nil
}

// writeAndRename writes the task and renames the file if the title changed.
func writeAndRename(path string, t *task.Task, oldTitle string) (string, error) {
	newPath := path
	if t.Title != oldTitle {
		newPath = filepath.Join(filepath.Dir(path), task.GenerateFilename(t.ID, task.GenerateSlug(t.Title)))
	}

	if err := task.Write(newPath, t); err != nil {
		return "", fmt.Errorf("writing task: %w", err)
	}

	if newPath != path {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("removing old file: %w", err)
		}
	}
	return newPath, nil
}

func applyEditFlags(cmd *cobra.Command, t *task.Task, cfg *config.Config) (bool, error) {
	changed := false
	for _, fn := range []func(*cobra.Command, *task.Task, *config.Config) (bool, error){
		applyFieldFlags,
		applyClassificationFlags,
		applyBodyFlags,
		applyCompletedFlag,
	} {
		c, err := fn(cmd, t, cfg)
		if err != nil {
			return false, err
		}
		if c {
			changed = true
		}
	}
	return changed, nil
}

func applyFieldFlags(cmd *cobra.Command, t *task.Task, _ *config.Config) (bool, error) {
	changed := false

	if v, _ := cmd.Flags().GetString("title"); strings.TrimSpace(v) != "" {
		t.Title = strings.TrimSpace(v)
		changed = true
	}
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		s, err := task.ParseStatus(v)
		if err != nil {
			return false, err
		}
		if task.SetStatus(t, s, now()) {
			changed = true
		}
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		p, err := task.ParsePriority(v)
		if err != nil {
			return false, err
		}
		t.Priority = p
		changed = true
	}
	if v, _ := cmd.Flags().GetString("scheduled"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return false, task.ValidateDate("scheduled", v, err)
		}
		t.Scheduled = d.Time
		changed = true
	}

	estimateSet := cmd.Flags().Changed("estimate")
	clearEstimate, _ := cmd.Flags().GetBool("clear-estimate")
	if estimateSet && clearEstimate {
		return false, clierr.New(clierr.InvalidInput, "cannot use --estimate and --clear-estimate together")
	}
	if estimateSet {
		v, _ := cmd.Flags().GetInt("estimate")
		if err := task.ValidateTimeEstimate(v); err != nil {
			return false, err
		}
		t.TimeEstimate = &v
		changed = true
	}
	if clearEstimate {
		t.TimeEstimate = nil
		changed = true
	}

	if v, _ := cmd.Flags().GetStringSlice("add-tag"); len(v) > 0 {
		t.Tags = appendUnique(t.Tags, v...)
		changed = true
	}
	if v, _ := cmd.Flags().GetStringSlice("remove-tag"); len(v) > 0 {
		t.Tags = removeAll(t.Tags, v...)
		changed = true
	}
	return changed, nil
}

func applyClassificationFlags(cmd *cobra.Command, t *task.Task, cfg *config.Config) (bool, error) {
	changed := false

	difficultySet := cmd.Flags().Changed("difficulty")
	clearDifficulty, _ := cmd.Flags().GetBool("clear-difficulty")
	if difficultySet && clearDifficulty {
		return false, clierr.New(clierr.InvalidInput, "cannot use --difficulty and --clear-difficulty together")
	}
	if difficultySet {
		v, _ := cmd.Flags().GetString("difficulty")
		d, err := task.ParseDifficulty(v)
		if err != nil {
			return false, err
		}
		t.Difficulty = d
		changed = true
	}
	if clearDifficulty {
		t.Difficulty = ""
		changed = true
	}

	categorySet := cmd.Flags().Changed("category")
	clearCategory, _ := cmd.Flags().GetBool("clear-category")
	if categorySet && clearCategory {
		return false, clierr.New(clierr.InvalidInput, "cannot use --category and --clear-category together")
	}
	if categorySet {
		v, _ := cmd.Flags().GetString("category")
		id, err := resolveCategoryRef(cfg, v)
		if err != nil {
			return false, err
		}
		t.Category = id
		changed = true
	}
	if clearCategory {
		t.Category = ""
		changed = true
	}
	return changed, nil
}

func applyBodyFlags(cmd *cobra.Command, t *task.Task, _ *config.Config) (bool, error) {
	bodySet := cmd.Flags().Changed("body")
	appendSet := cmd.Flags().Changed("append-body")
	if bodySet && appendSet {
		return false, clierr.New(clierr.InvalidInput, "cannot use --body and --append-body together")
	}
	if bodySet {
		v, _ := cmd.Flags().GetString("body")
		t.Description = v
		return true, nil
	}
	if appendSet {
		v, _ := cmd.Flags().GetString("append-body")
		ts, _ := cmd.Flags().GetBool("timestamp")
		t.Description = appendBody(t.Description, v, ts)
		return true, nil
	}
	return false, nil
}

// applyCompletedFlag backfills a completion on a given day, which is how
// past study sessions enter the streak.
func applyCompletedFlag(cmd *cobra.Command, t *task.Task, _ *config.Config) (bool, error) {
	v, _ := cmd.Flags().GetString("completed")
	if v == "" {
		return false, nil
	}
	d, err := date.Parse(v)
	if err != nil {
		return false, task.ValidateDate("completed", v, err)
	}
	if cmd.Flags().Changed("status") && t.Status != task.StatusCompleted {
		return false, clierr.New(clierr.InvalidInput, "--completed requires the completed status")
	}
	task.SetStatus(t, task.StatusCompleted, d.Time)
	stamp := d.Time
	t.CompletedAt = &stamp
	t.Updated = now()
	return true, nil
}

// appendBody appends text to an existing description, separated by a blank
// line, optionally prefixed with a timestamp line.
func appendBody(existing, text string, timestamp bool) string {
	if timestamp {
		text = "[" + now().Format("2006-01-02 15:04") + "]\n" + text
	}
	existing = strings.TrimRight(existing, "\n")
	if existing == "" {
		return text
	}
	return existing + "\n\n" + text
}
