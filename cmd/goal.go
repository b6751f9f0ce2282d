package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/planner"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Manage learning goals",
	RunE:    runGoalList,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals, newest first",
	RunE:  runGoalList,
}

var goalAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalAdd,
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress ID PERCENT",
	Short: "Set goal progress (0-100)",
	Args:  cobra.ExactArgs(2), //nolint:mnd // id and percent
	RunE:  runGoalProgress,
}

var goalDoneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Toggle a goal's completed flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalDone,
}

var goalRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm"},
	Short:   "Remove a goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalRemove,
}

func init() {
	goalAddCmd.Flags().String("target", "", "target date (YYYY-MM-DD)")
	goalAddCmd.Flags().Int("progress", 0, "initial progress (0-100)")
	goalCmd.AddCommand(goalListCmd, goalAddCmd, goalProgressCmd, goalDoneCmd, goalRemoveCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalList(_ *cobra.Command, _ []string) error {
	return withPlanner(func(_ *config.Config, kv store.KV) error {
		goals, err := planner.NewGoals(kv).List()
		if err != nil {
			return err
		}
		switch outputFormat() {
		case output.FormatJSON:
			if goals == nil {
				goals = []planner.Goal{}
			}
			return output.JSON(os.Stdout, goals)
		case output.FormatCompact:
			output.GoalCompact(os.Stdout, goals)
		default:
			output.GoalTable(os.Stdout, goals)
		}
		return nil
	})
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	var target *date.Date
	if v, _ := cmd.Flags().GetString("target"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return task.ValidateDate("target", v, err)
		}
		target = &d
	}
	progress, _ := cmd.Flags().GetInt("progress")

	return withPlanner(func(cfg *config.Config, kv store.KV) error {
		goal, err := planner.NewGoals(kv).Add(args[0], target, progress, now())
		if err != nil {
			return err
		}
		logActivity(cfg, "goal-add", 0, goal.Title)
		return outputGoal(goal, "Added goal %s: %s")
	})
}

func runGoalProgress(_ *cobra.Command, args []string) error {
	progress, err := parsePercent(args[1])
	if err != nil {
		return err
	}
	return withPlanner(func(cfg *config.Config, kv store.KV) error {
		goal, err := planner.NewGoals(kv).SetProgress(args[0], progress)
		if err != nil {
			return err
		}
		logActivity(cfg, "goal-progress", 0, goal.Title)
		return outputGoal(goal, "Updated goal %s: %s")
	})
}

func runGoalDone(_ *cobra.Command, args []string) error {
	return withPlanner(func(cfg *config.Config, kv store.KV) error {
		goal, err := planner.NewGoals(kv).ToggleComplete(args[0])
		if err != nil {
			return err
		}
		logActivity(cfg, "goal-done", 0, goal.Title)
		if goal.Completed {
			return outputGoal(goal, "Completed goal %s: %s")
		}
		return outputGoal(goal, "Reopened goal %s: %s")
	})
}

func runGoalRemove(_ *cobra.Command, args []string) error {
	return withPlanner(func(cfg *config.Config, kv store.KV) error {
		goal, err := planner.NewGoals(kv).Remove(args[0])
		if err != nil {
			return err
		}
		logActivity(cfg, "goal-remove", 0, goal.Title)
		return outputGoal(goal, "Removed goal %s: %s")
	})
}

func outputGoal(goal planner.Goal, format string) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, goal)
	}
	output.Messagef(os.Stdout, format, goal.ID[:8], goal.Title)
	return nil
}

// parsePercent accepts "40" or "40%".
func parsePercent(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, clierr.Newf(clierr.InvalidInput, "invalid progress %q: must be an integer percent", s).
			WithDetails(map[string]any{"input": s})
	}
	return n, nil
}
