package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/activity"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
)

var logCmd = &cobra.Command{
	Use:     "log",
	Aliases: []string{"activity"},
	Short:   "Show recent board activity",
	RunE:    runLog,
}

func init() {
	logCmd.Flags().IntP("limit", "n", 20, "number of entries (0 for all)") //nolint:mnd // default page
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := activity.Read(cfg.Dir(), limit)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		if entries == nil {
			entries = []activity.Entry{}
		}
		return output.JSON(os.Stdout, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity yet.")
		return nil
	}

	ts := now()
	for _, e := range entries {
		line := fmt.Sprintf("%-9s %-16s", output.RelativeTime(e.Timestamp, ts), e.Action)
		if e.TaskID > 0 {
			line += fmt.Sprintf(" #%d", e.TaskID)
		}
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
