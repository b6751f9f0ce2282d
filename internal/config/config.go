package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/logging"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no study board found (run 'studytrack init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Config represents the study board configuration.
type Config struct {
	Version    int             `yaml:"version"`
	Board      BoardConfig     `yaml:"board"`
	TasksDir   string          `yaml:"tasks_dir"`
	Categories []task.Category `yaml:"categories"`
	Defaults   DefaultsConfig  `yaml:"defaults"`
	Calendar   CalendarConfig  `yaml:"calendar"`
	Log        LogConfig       `yaml:"log"`
	NextID     int             `yaml:"next_id"`

	// dir is the absolute path to the board directory (not serialized).
	dir string `yaml:"-"`
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Priority   task.Priority   `yaml:"priority"`
	Difficulty task.Difficulty `yaml:"difficulty,omitempty"`
}

// CalendarConfig holds calendar view settings.
type CalendarConfig struct {
	Days int `yaml:"days"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Dir returns the absolute path to the board directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the board directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// TasksPath returns the absolute path to the tasks directory.
func (c *Config) TasksPath() string {
	return filepath.Join(c.dir, c.TasksDir)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// PlannerPath returns the absolute path to the planner database.
func (c *Config) PlannerPath() string {
	return filepath.Join(c.dir, PlannerFileName)
}

// LoggingConfig returns the logger settings.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{Level: c.Log.Level, Encoding: c.Log.Encoding}
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version:    CurrentVersion,
		Board:      BoardConfig{Name: name},
		TasksDir:   DefaultTasksDir,
		Categories: append([]task.Category{}, DefaultCategories...),
		Defaults:   DefaultsConfig{Priority: DefaultPriority},
		Calendar:   CalendarConfig{Days: DefaultCalendarDays},
		Log:        LogConfig{Level: DefaultLogLevel, Encoding: DefaultLogEncoding},
		NextID:     1,
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if c.TasksDir == "" {
		return fmt.Errorf("%w: tasks_dir is required", ErrInvalid)
	}
	if !c.Defaults.Priority.Valid() {
		return fmt.Errorf("%w: default priority %q is not one of %v", ErrInvalid, c.Defaults.Priority, task.AllPriorities())
	}
	if c.Defaults.Difficulty != "" && !c.Defaults.Difficulty.Valid() {
		return fmt.Errorf("%w: default difficulty %q is not one of %v", ErrInvalid, c.Defaults.Difficulty, task.AllDifficulties())
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	if c.Calendar.Days < 1 || c.Calendar.Days > maxCalendarDays {
		return fmt.Errorf("%w: calendar.days must be between 1 and %d", ErrInvalid, maxCalendarDays)
	}
	if err := c.validateLog(); err != nil {
		return err
	}
	if c.NextID < 1 {
		return fmt.Errorf("%w: next_id must be >= 1", ErrInvalid)
	}
	return nil
}

func (c *Config) validateCategories() error {
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("%w: categories[%d].id is required", ErrInvalid, i)
		}
		if cat.Name == "" {
			return fmt.Errorf("%w: categories[%d].name is required", ErrInvalid, i)
		}
		if seen[cat.ID] {
			return fmt.Errorf("%w: duplicate category id %q", ErrInvalid, cat.ID)
		}
		seen[cat.ID] = true
		if cat.Color != "" && !hexColor.MatchString(cat.Color) {
			return fmt.Errorf("%w: category %q color %q must be #rrggbb", ErrInvalid, cat.ID, cat.Color)
		}
	}
	return nil
}

func (c *Config) validateLog() error {
	if c.Log.Level != "" && !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q is not a valid level", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Encoding {
	case "", logging.EncodingConsole, logging.EncodingJSON:
		return nil
	default:
		return fmt.Errorf("%w: log.encoding must be %q or %q", ErrInvalid, logging.EncodingConsole, logging.EncodingJSON)
	}
}

// AddCategory appends a category derived from name. An empty color selects
// task.DefaultCategoryColor.
func (c *Config) AddCategory(name, color string) (task.Category, error) {
	name = strings.TrimSpace(name)
	id := task.CategoryID(name)
	if id == "" {
		return task.Category{}, clierr.Newf(clierr.InvalidInput, "invalid category name %q", name)
	}
	if task.FindCategory(c.Categories, id) >= 0 {
		return task.Category{}, clierr.Newf(clierr.CategoryExists, "category %q already exists", id).
			WithDetails(map[string]any{"category": id})
	}
	if color == "" {
		color = task.DefaultCategoryColor
	}
	if !hexColor.MatchString(color) {
		return task.Category{}, clierr.Newf(clierr.InvalidInput, "invalid color %q (expected #rrggbb)", color)
	}
	cat := task.Category{ID: id, Name: name, Color: strings.ToLower(color)}
	c.Categories = append(c.Categories, cat)
	return cat, nil
}

// RemoveCategory removes the category with the given id. Tasks keep the
// id and render as uncategorized.
func (c *Config) RemoveCategory(id string) (task.Category, error) {
	i := task.FindCategory(c.Categories, id)
	if i < 0 {
		return task.Category{}, clierr.Newf(clierr.CategoryNotFound, "unknown category %q", id).
			WithDetails(map[string]any{"category": id})
	}
	removed := c.Categories[i]
	c.Categories = append(c.Categories[:i], c.Categories[i+1:]...)
	return removed, nil
}

// Init creates a new board in the given directory with default settings.
// It creates the board directory, tasks subdirectory, and config file.
func Init(dir, name string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)

	if err := os.MkdirAll(cfg.TasksPath(), dirMode); err != nil {
		return nil, fmt.Errorf("creating tasks directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads, migrates and validates a config from the given board
// directory. migrated reports whether the file was rewritten at the
// current version.
func Load(dir string) (cfg *Config, migrated bool, err error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, false, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, ErrNotFound
		}
		return nil, false, fmt.Errorf("reading config: %w", err)
	}

	cfg = &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, false, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(cfg); err != nil {
		return nil, false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, false, fmt.Errorf("saving migrated config: %w", err)
		}
		migrated = true
	}

	return cfg, migrated, nil
}

// FindDir walks upward from startDir looking for a board directory
// containing config.yml. Returns the absolute path to the board directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the board directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound, ErrNotFound.Error())
		}
		dir = parent
	}
}
