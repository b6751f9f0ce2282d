package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/output"
	"github.com/twiced-technology-gmbh/studytrack/internal/planner"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

var resourceCmd = &cobra.Command{
	Use:     "resource",
	Aliases: []string{"resources"},
	Short:   "Manage bookmarked learning resources",
	RunE:    runResourceList,
}

var resourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources, newest first",
	RunE:  runResourceList,
}

var resourceAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Bookmark a resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runResourceAdd,
}

var resourceRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm"},
	Short:   "Remove a resource",
	Args:    cobra.ExactArgs(1),
	RunE:    runResourceRemove,
}

func init() {
	resourceAddCmd.Flags().String("url", "", "link to the resource")
	resourceAddCmd.Flags().String("notes", "", "free-form notes")
	resourceCmd.AddCommand(resourceListCmd, resourceAddCmd, resourceRemoveCmd)
	rootCmd.AddCommand(resourceCmd)
}

func runResourceList(_ *cobra.Command, _ []string) error {
	return withPlanner(func(_ *config.Config, kv store.KV) error {
		items, err := planner.NewResources(kv).List()
		if err != nil {
			return err
		}
		switch outputFormat() {
		case output.FormatJSON:
			if items == nil {
				items = []planner.Resource{}
			}
			return output.JSON(os.Stdout, items)
		case output.FormatCompact:
			output.ResourceCompact(os.Stdout, items)
		default:
			output.ResourceTable(os.Stdout, items)
		}
		return nil
	})
}

func runResourceAdd(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("url")
	notes, _ := cmd.Flags().GetString("notes")

	return withPlanner(func(cfg *config.Config, kv store.KV) error {
		item, err := planner.NewResources(kv).Add(args[0], url, notes, now())
		if err != nil {
			return err
		}
		logActivity(cfg, "resource-add", 0, item.Title)
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, item)
		}
		output.Messagef(os.Stdout, "Added resource %s: %s", item.ID[:8], item.Title)
		return nil
	})
}

func runResourceRemove(_ *cobra.Command, args []string) error {
	return withPlanner(func(cfg *config.Config, kv store.KV) error {
		item, err := planner.NewResources(kv).Remove(args[0])
		if err != nil {
			return err
		}
		logActivity(cfg, "resource-remove", 0, item.Title)
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, map[string]any{"status": "removed", "resource": item})
		}
		output.Messagef(os.Stdout, "Removed resource %s: %s", item.ID[:8], item.Title)
		return nil
	})
}
