package task

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSlugLength = 50

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug converts a title to a filename-friendly slug, cut at a word
// boundary when longer than maxSlugLength.
func GenerateSlug(title string) string {
	slug := strings.Trim(nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(slug) <= maxSlugLength {
		return slug
	}

	truncated := slug[:maxSlugLength]
	if slug[maxSlugLength] != '-' {
		if idx := strings.LastIndex(truncated, "-"); idx > 0 {
			truncated = truncated[:idx]
		}
	}
	return strings.TrimRight(truncated, "-")
}

// GenerateFilename creates a task filename from an ID and slug, zero-padded
// to at least three digits ("007-read-chapter-3.md").
func GenerateFilename(id int, slug string) string {
	if slug == "" {
		slug = "task"
	}
	return fmt.Sprintf("%03d-%s%s", id, slug, fileExt)
}

// CategoryID derives a stable category id from a display name.
func CategoryID(name string) string {
	return GenerateSlug(name)
}
