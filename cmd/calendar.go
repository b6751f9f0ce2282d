package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"agenda"},
	Short:   "Show scheduled tasks day by day",
	Long: `Lists tasks by scheduled day, starting today (UTC). The window defaults
to calendar.days from the config; the usual ranges are 7, 14 and 30 days.`,
	RunE: runCalendar,
}

func init() {
	calendarCmd.Flags().IntP("days", "d", 0, "number of days to show (default from config)")
	calendarCmd.Flags().String("from", "", "first day (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	days, _ := cmd.Flags().GetInt("days")
	if !cmd.Flags().Changed("days") {
		days = cfg.Calendar.Days
	}
	from := now()
	if v, _ := cmd.Flags().GetString("from"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return task.ValidateDate("from", v, err)
		}
		from = d.Time
	}

	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}

	agenda, err := metrics.Agenda(tasks, from, days)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, agenda)
	case output.FormatCompact:
		output.AgendaCompact(os.Stdout, agenda)
	default:
		output.AgendaTable(os.Stdout, agenda, now())
	}
	return nil
}
