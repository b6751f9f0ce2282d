package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/planner"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show preference switches",
	Long:  `Shows the preference switches: ` + strings.Join(planner.SettingKeys(), ", ") + `.`,
	RunE:  runSettingsShow,
}

var settingsToggleCmd = &cobra.Command{
	Use:   "toggle KEY",
	Short: "Flip a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsToggle,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY on|off",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsToggleCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	return withPlanner(func(_ *config.Config, kv store.KV) error {
		s, err := planner.NewSettings(kv).Load()
		if err != nil {
			return err
		}
		return outputSettings(s)
	})
}

func runSettingsToggle(_ *cobra.Command, args []string) error {
	key := settingKey(args[0])
	return withPlanner(func(cfg *config.Config, kv store.KV) error {
		s, err := planner.NewSettings(kv).Toggle(key)
		if err != nil {
			return err
		}
		logActivity(cfg, "setting", 0, key)
		return outputSettings(s)
	})
}

func runSettingsSet(_ *cobra.Command, args []string) error {
	key := settingKey(args[0])
	value, err := parseSwitch(args[1])
	if err != nil {
		return err
	}
	return withPlanner(func(cfg *config.Config, kv store.KV) error {
		s, err := planner.NewSettings(kv).Set(key, value)
		if err != nil {
			return err
		}
		logActivity(cfg, "setting", 0, key)
		return outputSettings(s)
	})
}

func outputSettings(s planner.Settings) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, s)
	}
	output.SettingsTable(os.Stdout, s)
	return nil
}

// settingKey accepts weekly-summary and weeklySummary spellings.
func settingKey(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r == '-':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, clierr.Newf(clierr.InvalidInput, "invalid value %q (expected on or off)", s)
	}
	return v, nil
}
