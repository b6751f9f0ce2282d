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
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new study board",
	Long:  `Creates a studytrack directory with config.yml and a tasks/ subdirectory.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("name", "", "board name (defaults to current directory name)")
	initCmd.Flags().StringSlice("categories", nil, "comma-separated category names (replaces the default category)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.BoardAlreadyExists, "board already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		name = filepath.Base(cwd)
	}

	cfg := config.NewDefault(name)
	cfg.SetDir(absDir)

	if names, _ := cmd.Flags().GetStringSlice("categories"); len(names) > 0 {
		cfg.Categories = nil
		for _, n := range names {
			if _, err := cfg.AddCategory(n, ""); err != nil {
				return err
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	const dirMode = 0o750
	if err := os.MkdirAll(cfg.TasksPath(), dirMode); err != nil {
		return fmt.Errorf("creating tasks directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	configureLogger(cfg)
	logger.Info("board initialized", zap.String("dir", absDir))

	categories := make([]string, len(cfg.Categories))
	for i, c := range cfg.Categories {
		categories[i] = c.Name
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":     "initialized",
			"dir":        absDir,
			"name":       name,
			"config":     cfg.ConfigPath(),
			"tasks":      cfg.TasksPath(),
			"categories": strings.Join(categories, ","),
		})
	}

	output.Messagef(os.Stdout, "Initialized board %q in %s", name, absDir)
	output.Messagef(os.Stdout, "  Config:     %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Tasks:      %s", cfg.TasksPath())
	output.Messagef(os.Stdout, "  Categories: %s", strings.Join(categories, ", "))
	return nil
}
