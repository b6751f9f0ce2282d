package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

// Resource is a bookmarked learning resource.
type Resource struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	URL     string    `json:"url,omitempty"`
	Notes   string    `json:"notes,omitempty"`
	Created time.Time `json:"created"`
}

// Resources manages the resource collection.
type Resources struct {
	kv store.KV
}

// NewResources returns a Resources backed by kv.
func NewResources(kv store.KV) *Resources {
	return &Resources{kv: kv}
}

// List returns all resources, newest first.
func (r *Resources) List() ([]Resource, error) {
	var items []Resource
	if err := load(r.kv, ResourcesKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Add stores a resource. The title is required.
func (r *Resources) Add(title, url, notes string, now time.Time) (Resource, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Resource{}, clierr.New(clierr.InvalidInput, "resource title is required")
	}

	items, err := r.List()
	if err != nil {
		return Resource{}, err
	}
	item := Resource{
		ID:      uuid.NewString(),
		Title:   title,
		URL:     strings.TrimSpace(url),
		Notes:   notes,
		Created: now,
	}
	if err := save(r.kv, ResourcesKey, append([]Resource{item}, items...)); err != nil {
		return Resource{}, err
	}
	return item, nil
}

// Remove deletes the resource identified by ref (id or unique id prefix).
func (r *Resources) Remove(ref string) (Resource, error) {
	items, err := r.List()
	if err != nil {
		return Resource{}, err
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	i, err := matchID(ids, ref, func() *clierr.Error {
		return clierr.Newf(clierr.ResourceNotFound, "resource not found: %s", ref).
			WithDetails(map[string]any{"id": ref})
	})
	if err != nil {
		return Resource{}, err
	}

	removed := items[i]
	items = append(items[:i], items[i+1:]...)
	if err := save(r.kv, ResourcesKey, items); err != nil {
		return Resource{}, err
	}
	return removed, nil
}
