// Package planner keeps learning goals, resources and settings in a
// store.KV, one JSON document per collection.
package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

// Storage keys.
const (
	GoalsKey     = "learning_goals"
	ResourcesKey = "learning_resources"
	SettingsKey  = "learning_settings"
)

// minPrefix is the shortest id prefix accepted when looking up items.
const minPrefix = 4

// load decodes the document under key into v. A missing key leaves v untouched.
func load(kv store.KV, key string, v any) error {
	data, err := kv.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func save(kv store.KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := kv.Set(key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// matchID returns the index of the single id equal to ref or starting with
// it. notFound builds the error for zero or ambiguous matches.
func matchID(ids []string, ref string, notFound func() *clierr.Error) (int, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	for i, id := range ids {
		if id == ref {
			return i, nil
		}
	}
	if len(ref) < minPrefix {
		return -1, notFound()
	}

	match := -1
	for i, id := range ids {
		if strings.HasPrefix(id, ref) {
			if match >= 0 {
				return -1, notFound().WithDetails(map[string]any{"id": ref, "ambiguous": true})
			}
			match = i
		}
	}
	if match < 0 {
		return -1, notFound()
	}
	return match, nil
}
