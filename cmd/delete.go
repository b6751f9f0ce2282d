package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID[,ID,...]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Removes a task file. Prompts for confirmation in interactive mode.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")

	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch delete requires --yes")
	}

	if len(ids) == 1 {
		return deleteSingleTask(cfg, ids[0], yes)
	}

	return runBatch(ids, func(id int) error {
		path, t, err := findTask(cfg, id)
		if err != nil {
			return err
		}
		return removeAndLog(cfg, path, t)
	})
}

func deleteSingleTask(cfg *config.Config, id int, yes bool) error {
	path, t, err := findTask(cfg, id)
	if err != nil {
		return err
	}

	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete task #%d %q? [y/N] ", t.ID, t.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if err := removeAndLog(cfg, path, t); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "deleted",
			"id":     t.ID,
			"title":  t.Title,
		})
	}

	output.Messagef(os.Stdout, "Deleted task #%d: %s", t.ID, t.Title)
	return nil
}

// findTask locates and reads task id.
func findTask(cfg *config.Config, id int) (string, *task.Task, error) {
	path, err := task.FindByID(cfg.TasksPath(), id)
	if err != nil {
		return "", nil, err
	}
	t, err := task.Read(path)
	if err != nil {
		return "", nil, err
	}
	return path, t, nil
}

func removeAndLog(cfg *config.Config, path string, t *task.Task) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing task file: %w", err)
	}
	logger.Info("task deleted", zap.Int("id", t.ID))
	logActivity(cfg, "delete", t.ID, t.Title)
	return nil
}
