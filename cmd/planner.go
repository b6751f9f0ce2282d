package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

// withPlanner opens the board's planner database for the duration of fn.
func withPlanner(fn func(cfg *config.Config, kv store.KV) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.OpenBolt(cfg.PlannerPath(), "")
	if err != nil {
		return fmt.Errorf("opening planner: %w", err)
	}
	logger.Debug("planner opened", zap.String("path", cfg.PlannerPath()))
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("closing planner", zap.Error(err))
		}
	}()

	return fn(cfg, db)
}
