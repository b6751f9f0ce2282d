package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/studytrack/internal/tui"
	"github.com/twiced-technology-gmbh/studytrack/internal/watcher"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"dashboard"},
	Short:   "Open the interactive dashboard",
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model := tui.NewDashboard(cfg)
	model.SetLogger(logger)
	if flagNow != "" {
		model.SetNow(now)
	}
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startTUIWatcher(ctx, model, p)

	_, err = p.Run()
	return err
}

func startTUIWatcher(ctx context.Context, model *tui.Dashboard, p *tea.Program) {
	w, err := watcher.New(model.WatchPaths(), watcher.Options{}, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		logger.Warn("dashboard runs without live reload", zap.Error(err))
		return
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		logger.Debug("file watcher", zap.Error(err))
	})
}
