package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History manages input history with file persistence. A History with an
// empty path is kept in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// modePrefix marks each persisted line with the mode it was entered in.
var modePrefix = map[inputMode]string{
	modeEval: "E:",
	modeCtrl: "C:",
}

// Load reads history entries from the history file. A missing file is not
// an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := HistoryEntry{Line: line, Mode: modeEval}

		for mode, prefix := range modePrefix {
			if s, ok := strings.CutPrefix(line, prefix); ok {
				entry = HistoryEntry{Line: s, Mode: mode}

				break
			}
		}

		h.entries = append(h.entries, entry)
	}

	return scanner.Err()
}

// WriteWithMode appends a new entry to the history with the specified mode.
// An older entry with the same line and mode is moved to the end.
func (h *History) WriteWithMode(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	entry := HistoryEntry{Line: line, Mode: mode}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	i := slices.Index(h.entries, entry)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, entry)

	if h.path == "" {
		return nil
	}

	if i >= 0 {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(modePrefix[mode] + line + "\n")

	return err
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns all history entries.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, entry := range h.entries {
		if _, err := w.WriteString(modePrefix[entry.Mode] + entry.Line + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}
