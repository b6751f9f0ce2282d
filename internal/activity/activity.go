// Package activity keeps an append-only JSON-lines log of task mutations
// in the board directory.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// FileName is the log file inside the board directory.
	FileName   = "activity.jsonl"
	fileMode   = 0o600
	maxEntries = 10000 // oldest entries are dropped beyond this
)

// Entry is one logged mutation.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    int       `json:"task_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Append writes e to the log in dir, then trims the log to maxEntries.
func Append(dir string, e Entry) error {
	path := filepath.Join(dir, FileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // path inside board dir
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling activity entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing activity entry: %w", err)
	}

	_ = trim(path, maxEntries)
	return nil
}

// Read returns up to limit of the most recent entries, newest first.
// A limit <= 0 returns every entry. Unparseable lines are skipped.
func Read(dir string, limit int) ([]Entry, error) {
	lines, err := readLines(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}

	var entries []Entry
	for i := len(lines) - 1; i >= 0; i-- {
		var e Entry
		if json.Unmarshal([]byte(lines[i]), &e) != nil {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func trim(path string, keep int) error {
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	if len(lines) <= keep {
		return nil
	}

	var buf strings.Builder
	for _, line := range lines[len(lines)-keep:] {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(buf.String()), fileMode)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path inside board dir
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
