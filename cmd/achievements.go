package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"badges"},
	Short:   "Show earned and locked badges",
	RunE:    runAchievements,
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

func runAchievements(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, err := snapshot(cfg)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, map[string]any{
			"badges": report.Badges,
			"earned": metrics.EarnedCount(report.Badges),
			"streak": report.Streak,
		})
	case output.FormatCompact:
		output.BadgeCompact(os.Stdout, report.Badges)
	default:
		output.BadgeTable(os.Stdout, report.Badges)
	}
	return nil
}
