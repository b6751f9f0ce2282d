package config

import (
	"fmt"

	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// migrate upgrades a config from its current version to CurrentVersion.
// Each migration function transforms the config one version forward.
// Returns an error if the config version is newer than what this binary supports.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade studytrack)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}

	return nil
}

// migrations maps each version to the function that migrates it to the next version.
// The migration function must increment cfg.Version after a successful migration.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
	2: migrateV2ToV3,
}

// migrateV1ToV2 adds categories. Boards that had none get the defaults;
// v1 category entries without an id get one derived from the name.
func migrateV1ToV2(cfg *Config) error {
	if len(cfg.Categories) == 0 {
		cfg.Categories = append([]task.Category{}, DefaultCategories...)
	}
	for i := range cfg.Categories {
		if cfg.Categories[i].ID == "" {
			cfg.Categories[i].ID = task.CategoryID(cfg.Categories[i].Name)
		}
	}
	cfg.Version = 2
	return nil
}

// migrateV2ToV3 adds the calendar and log sections.
func migrateV2ToV3(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.Calendar.Days == 0 {
		cfg.Calendar.Days = DefaultCalendarDays
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Encoding == "" {
		cfg.Log.Encoding = DefaultLogEncoding
	}
	cfg.Version = 3
	return nil
}
