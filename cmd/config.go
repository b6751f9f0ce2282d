package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/logging"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify board configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"board.name": {
			get:      func(c *config.Config) any { return c.Board.Name },
			set:      func(c *config.Config, v string) error { c.Board.Name = v; return nil },
			writable: true,
		},
		"board.description": {
			get:      func(c *config.Config) any { return c.Board.Description },
			set:      func(c *config.Config, v string) error { c.Board.Description = v; return nil },
			writable: true,
		},
		"tasks_dir": {
			get: func(c *config.Config) any { return c.TasksDir },
		},
		"categories": {
			get: func(c *config.Config) any {
				ids := make([]string, len(c.Categories))
				for i, cat := range c.Categories {
					ids[i] = cat.ID
				}
				return ids
			},
		},
		"defaults.priority": {
			get: func(c *config.Config) any { return c.Defaults.Priority },
			set: func(c *config.Config, v string) error {
				p, err := task.ParsePriority(v)
				if err != nil {
					return err
				}
				c.Defaults.Priority = p
				return nil
			},
			writable: true,
		},
		"defaults.difficulty": {
			get: func(c *config.Config) any { return c.Defaults.Difficulty },
			set: func(c *config.Config, v string) error {
				d, err := task.ParseDifficulty(v)
				if err != nil {
					return err
				}
				c.Defaults.Difficulty = d
				return nil
			},
			writable: true,
		},
		"calendar.days": {
			get: func(c *config.Config) any { return c.Calendar.Days },
			set: func(c *config.Config, v string) error {
				n, err := strconv.Atoi(v)
				if err != nil {
					return clierr.Newf(clierr.InvalidInput,
						"invalid calendar.days %q: must be an integer", v)
				}
				c.Calendar.Days = n
				return nil // validation handles range check
			},
			writable: true,
		},
		"log.level": {
			get: func(c *config.Config) any { return c.Log.Level },
			set: func(c *config.Config, v string) error {
				if !logging.ValidLevel(v) {
					return clierr.Newf(clierr.InvalidInput, "invalid log.level %q", v)
				}
				c.Log.Level = v
				return nil
			},
			writable: true,
		},
		"log.encoding": {
			get: func(c *config.Config) any { return c.Log.Encoding },
			set: func(c *config.Config, v string) error {
				allowed := []string{logging.EncodingConsole, logging.EncodingJSON}
				if !slices.Contains(allowed, v) {
					return clierr.Newf(clierr.InvalidInput,
						"invalid log.encoding %q; allowed: %s", v, strings.Join(allowed, ", "))
				}
				c.Log.Encoding = v
				return nil
			},
			writable: true,
		},
		"next_id": {
			get: func(c *config.Config) any { return c.NextID },
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"board.name",
		"board.description",
		"tasks_dir",
		"categories",
		"defaults.priority",
		"defaults.difficulty",
		"calendar.days",
		"log.level",
		"log.encoding",
		"next_id",
	}
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()

	if outputFormat() == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(os.Stdout, m)
	}

	for _, key := range allConfigKeys() {
		val := accessors[key].get(cfg)
		fmt.Fprintf(os.Stdout, "%-20s %v\n", key, formatConfigValue(val))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key := args[0]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}

	val := acc.get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}

	fmt.Fprintln(os.Stdout, formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, ok := configAccessors()[key]
	if !ok {
		return unknownConfigKey(key)
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.InvalidInput, err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}

	output.Messagef(os.Stdout, "Set %s = %v", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func unknownConfigKey(key string) error {
	return clierr.Newf(clierr.InvalidInput, "unknown config key %q", key).
		WithDetails(map[string]any{"key": key, "allowed": allConfigKeys()})
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case []string:
		if len(v) == 0 {
			return "--"
		}
		return strings.Join(v, ", ")
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
