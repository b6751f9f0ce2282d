package task

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
)

const fileExt = ".md"

// FindByID scans the tasks directory for a file whose numeric prefix is id.
// Returns the full path to the task file.
func FindByID(tasksDir string, id int) (string, error) {
	entries, err := os.ReadDir(tasksDir)
	if err != nil {
		return "", fmt.Errorf("reading tasks directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		if n, ok := idFromFilename(entry.Name()); ok && n == id {
			return filepath.Join(tasksDir, entry.Name()), nil
		}
	}

	return "", clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
		WithDetails(map[string]any{"id": id})
}

// ReadWarning describes a file that could not be parsed during lenient reading.
type ReadWarning struct {
	File string // base filename
	Err  error
}

// ReadAllLenient reads every task file in tasksDir, skipping malformed files
// instead of aborting. Tasks are returned in ID order. A missing directory
// yields no tasks.
func ReadAllLenient(tasksDir string) ([]*Task, []ReadWarning, error) {
	entries, err := os.ReadDir(tasksDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading tasks directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == fileExt {
			names = append(names, entry.Name())
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, _ := idFromFilename(names[i])
		b, _ := idFromFilename(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})

	var tasks []*Task
	var warnings []ReadWarning
	for _, name := range names {
		t, readErr := Read(filepath.Join(tasksDir, name))
		if readErr != nil {
			warnings = append(warnings, ReadWarning{File: name, Err: readErr})
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, warnings, nil
}

// idFromFilename extracts the numeric ID prefix ("007-title.md" -> 7).
func idFromFilename(name string) (int, bool) {
	dash := strings.IndexByte(name, '-')
	if dash < 1 {
		return 0, false
	}
	n, err := strconv.Atoi(name[:dash])
	if err != nil {
		return 0, false
	}
	return n, true
}
