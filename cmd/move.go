package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var moveCmd = &cobra.Command{
	Use:   "move ID[,ID,...] [STATUS]",
	Short: "Move a task to a different status",
	Long: `Changes the status of a task. Provide the new status directly,
or use --next/--prev to step through pending, in_progress and completed.
Moving to completed stamps the completion time; moving away clears it.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.RangeArgs(1, 2), //nolint:mnd // 1 or 2 positional args
	RunE: runMove,
}

var doneCmd = &cobra.Command{
	Use:   "done ID[,ID,...]",
	Short: "Mark tasks completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMove(cmd, []string{args[0], string(task.StatusCompleted)})
	},
}

func init() {
	moveCmd.Flags().Bool("next", false, "move to next status")
	moveCmd.Flags().Bool("prev", false, "move to previous status")
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(doneCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		return moveSingleTask(cfg, ids[0], cmd, args)
	}

	return runBatch(ids, func(id int) error {
		_, _, err := executeMove(cfg, id, cmd, args)
		return err
	})
}

// moveResult wraps a task with a changed flag for JSON output.
type moveResult struct {
	*task.Task
	Changed bool `json:"changed"`
}

func moveSingleTask(cfg *config.Config, id int, cmd *cobra.Command, args []string) error {
	t, oldStatus, err := executeMove(cfg, id, cmd, args)
	if err != nil {
		return err
	}

	changed := oldStatus != ""
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, moveResult{Task: t, Changed: changed})
	}
	if !changed {
		output.Messagef(os.Stdout, "Task #%d is already %s", t.ID, t.Status)
		return nil
	}
	output.Messagef(os.Stdout, "Moved task #%d: %s -> %s", id, oldStatus, t.Status)
	return nil
}

// executeMove finds, reads, resolves the target, writes and logs. When the
// task already had the target status (and a consistent completion stamp),
// oldStatus is empty and nothing is written.
func executeMove(cfg *config.Config, id int, cmd *cobra.Command, args []string) (*task.Task, task.Status, error) {
	path, err := task.FindByID(cfg.TasksPath(), id)
	if err != nil {
		return nil, "", err
	}

	t, err := task.Read(path)
	if err != nil {
		return nil, "", err
	}

	newStatus, err := resolveTargetStatus(cmd, args, t)
	if err != nil {
		return nil, "", err
	}

	oldStatus := t.Status
	if !task.SetStatus(t, newStatus, now()) {
		return t, "", nil
	}

	if err := task.Write(path, t); err != nil {
		return nil, "", fmt.Errorf("writing task: %w", err)
	}
	t.File = path

	logActivity(cfg, "move", id, string(oldStatus)+" -> "+string(newStatus))
	return t, oldStatus, nil
}

func resolveTargetStatus(cmd *cobra.Command, args []string, t *task.Task) (task.Status, error) {
	next, _ := cmd.Flags().GetBool("next")
	prev, _ := cmd.Flags().GetBool("prev")
	order := task.AllStatuses()
	idx := slices.Index(order, t.Status)

	switch {
	case len(args) == 2: //nolint:mnd // positional arg
		return task.ParseStatus(args[1])
	case next:
		if idx < 0 || idx >= len(order)-1 {
			return "", boundaryError(t, "last")
		}
		return order[idx+1], nil
	case prev:
		if idx <= 0 {
			return "", boundaryError(t, "first")
		}
		return order[idx-1], nil
	default:
		return "", clierr.New(clierr.InvalidInput, "provide a target status or use --next/--prev")
	}
}

func boundaryError(t *task.Task, which string) error {
	return clierr.Newf(clierr.InvalidInput, "task #%d is at the %s status (%s)", t.ID, which, t.Status).
		WithDetails(map[string]any{"id": t.ID, "status": t.Status})
}
