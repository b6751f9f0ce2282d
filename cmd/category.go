package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/output"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage task categories",
	RunE:    runCategoryList,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their task counts",
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm"},
	Short:   "Remove a category (its tasks become uncategorized)",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryRemove,
}

func init() {
	categoryAddCmd.Flags().String("color", "", "hex color (#rrggbb)")
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRemoveCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}
	counts := make(map[string]int, len(cfg.Categories))
	for _, t := range tasks {
		counts[t.Category]++
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, cfg.Categories)
	}
	output.CategoryTable(os.Stdout, cfg.Categories, counts)
	return nil
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	color, _ := cmd.Flags().GetString("color")
	cat, err := cfg.AddCategory(args[0], color)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	logActivity(cfg, "category-add", 0, cat.ID)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, cat)
	}
	output.Messagef(os.Stdout, "Added category %s (%s)", cat.Name, cat.ID)
	return nil
}

func runCategoryRemove(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	id, err := resolveCategoryRef(cfg, args[0])
	if err != nil {
		return err
	}
	cat, err := cfg.RemoveCategory(id)
	if err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	logActivity(cfg, "category-remove", 0, cat.ID)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"status": "removed", "category": cat})
	}
	output.Messagef(os.Stdout, "Removed category %s", cat.Name)
	return nil
}
