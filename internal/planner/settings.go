package planner

import (
	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

// Settings are the user's preference switches.
type Settings struct {
	Notifications  bool `json:"notifications"`
	WeeklySummary  bool `json:"weekly_summary"`
	FocusReminders bool `json:"focus_reminders"`
	CompactMode    bool `json:"compact_mode"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{Notifications: true, WeeklySummary: true}
}

// SettingKeys lists the setting names in display order.
func SettingKeys() []string {
	return []string{"notifications", "weekly_summary", "focus_reminders", "compact_mode"}
}

func (s *Settings) field(key string) (*bool, bool) {
	switch key {
	case "notifications":
		return &s.Notifications, true
	case "weekly_summary":
		return &s.WeeklySummary, true
	case "focus_reminders":
		return &s.FocusReminders, true
	case "compact_mode":
		return &s.CompactMode, true
	default:
		return nil, false
	}
}

// Get returns the value of the named setting.
func (s Settings) Get(key string) (bool, error) {
	p, ok := s.field(key)
	if !ok {
		return false, unknownSetting(key)
	}
	return *p, nil
}

// SettingsStore loads and saves Settings.
type SettingsStore struct {
	kv store.KV
}

// NewSettings returns a SettingsStore backed by kv.
func NewSettings(kv store.KV) *SettingsStore {
	return &SettingsStore{kv: kv}
}

// Load returns the saved settings, or the defaults when none are saved.
// Keys absent from the saved document keep their default.
func (s *SettingsStore) Load() (Settings, error) {
	settings := DefaultSettings()
	if err := load(s.kv, SettingsKey, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Toggle flips the named setting and returns the updated settings.
func (s *SettingsStore) Toggle(key string) (Settings, error) {
	return s.update(key, func(v *bool) { *v = !*v })
}

// Set assigns the named setting.
func (s *SettingsStore) Set(key string, value bool) (Settings, error) {
	return s.update(key, func(v *bool) { *v = value })
}

func (s *SettingsStore) update(key string, fn func(*bool)) (Settings, error) {
	settings, err := s.Load()
	if err != nil {
		return Settings{}, err
	}
	p, ok := settings.field(key)
	if !ok {
		return Settings{}, unknownSetting(key)
	}
	fn(p)
	if err := save(s.kv, SettingsKey, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func unknownSetting(key string) *clierr.Error {
	return clierr.Newf(clierr.UnknownSetting, "unknown setting %q", key).
		WithDetails(map[string]any{
			"key":     key,
			"allowed": SettingKeys(),
		})
}
