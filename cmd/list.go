package cmd

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks sorted by priority (critical first), or with --recent the
ten most recently created tasks, newest first.

--status accepts all, active, pending, in_progress or completed.
--priority accepts all, critical, high, medium or low.
--group-by accepts status, priority, category, difficulty or tag.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("status", "all", "status filter (all, active, pending, in_progress, completed)")
	listCmd.Flags().String("priority", "all", "priority filter (all, critical, high, medium, low)")
	listCmd.Flags().Bool("recent", false, "show the most recently created tasks")
	listCmd.Flags().String("category", "", "only tasks in this category (id or name)")
	listCmd.Flags().String("tag", "", "only tasks with this tag")
	listCmd.Flags().StringP("search", "s", "", "search title, description and tags (case-insensitive)")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.Flags().String("group-by", "", "group results by "+strings.Join(metrics.GroupByFields(), ", "))
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	statusFlag, _ := cmd.Flags().GetString("status")
	priorityFlag, _ := cmd.Flags().GetString("priority")
	recent, _ := cmd.Flags().GetBool("recent")
	category, _ := cmd.Flags().GetString("category")
	tag, _ := cmd.Flags().GetString("tag")
	search, _ := cmd.Flags().GetString("search")
	limit, _ := cmd.Flags().GetInt("limit")
	groupBy, _ := cmd.Flags().GetString("group-by")

	status, err := metrics.ParseStatusFilter(statusFlag)
	if err != nil {
		return err
	}
	priority, err := metrics.ParsePriorityFilter(priorityFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if category != "" {
		if category, err = resolveCategoryRef(cfg, category); err != nil {
			return err
		}
	}

	all, err := loadTasks(cfg)
	if err != nil {
		return err
	}

	opts := metrics.FilterOptions{Status: status, Priority: priority}
	var tasks []*task.Task
	if recent {
		tasks, err = metrics.Recent(all, opts)
	} else {
		tasks, err = metrics.TaskList(all, opts)
	}
	if err != nil {
		return err
	}

	tasks = refine(tasks, category, tag, search)
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	if groupBy != "" {
		groups, err := metrics.GroupBy(tasks, groupBy, cfg.Categories)
		if err != nil {
			return err
		}
		return outputGroups(cfg, groups)
	}
	return outputTaskList(cfg, tasks, recent)
}

// refine applies the CLI-only filters, keeping the engine's order.
func refine(tasks []*task.Task, category, tag, search string) []*task.Task {
	search = strings.ToLower(search)
	out := tasks[:0:0]
	for _, t := range tasks {
		if category != "" && t.Category != category {
			continue
		}
		if tag != "" && !slices.Contains(t.Tags, tag) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t *task.Task, needle string) bool {
	if strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func outputTaskList(cfg *config.Config, tasks []*task.Task, recent bool) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		if recent {
			output.RecentTable(os.Stdout, tasks, now())
		} else {
			output.TaskTable(os.Stdout, tasks, cfg.Categories)
		}
	}
	return nil
}

func outputGroups(cfg *config.Config, groups []metrics.Group) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, groups)
	case output.FormatCompact:
		output.GroupCompact(os.Stdout, groups)
	default:
		output.GroupedTable(os.Stdout, groups, cfg.Categories)
	}
	return nil
}
