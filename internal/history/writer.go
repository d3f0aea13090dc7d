// Package history keeps a log of the releases made in a repository.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the history location relative to the repository root.
const DefaultFile = ".relbump/history.yml"

// DefaultMaxEntries bounds the history when no limit is configured.
const DefaultMaxEntries = 100

// Entry records one release.
type Entry struct {
	Timestamp time.Time `yaml:"timestamp"`
	From      string    `yaml:"from"`
	To        string    `yaml:"to"`
	// Request is the transition that was asked for, e.g. "minor" or "major+alpha".
	Request string   `yaml:"request"`
	Files   []string `yaml:"files,omitempty"`
}

// History is the on-disk document, oldest entry first.
type History struct {
	Entries []Entry `yaml:"entries"`
}

// Last returns the n most recent entries, newest first.
func (h *History) Last(n int) []Entry {
	if n <= 0 || n > len(h.Entries) {
		n = len(h.Entries)
	}
	out := make([]Entry, 0, n)
	for i := len(h.Entries) - 1; i >= len(h.Entries)-n; i-- {
		out = append(out, h.Entries[i])
	}
	return out
}

// Load reads the history at path. A missing file is an empty history.
func Load(fsys afero.Fs, path string) (*History, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &History{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var h History
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", path, err)
	}
	return &h, nil
}

// Save writes h to path, creating its directory.
func Save(fsys afero.Fs, path string, h *History) error {
	data, err := yaml.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Writer appends entries to a history file with automatic pruning.
type Writer struct {
	fs afero.Fs
	// Path is the history file. An empty path disables the history.
	Path string
	// MaxEntries is the maximum number of entries to retain.
	MaxEntries int
}

// NewWriter creates a new history writer.
func NewWriter(fsys afero.Fs, path string, maxEntries int) *Writer {
	return &Writer{fs: fsys, Path: path, MaxEntries: maxEntries}
}

// Append loads the history, appends entry, drops the oldest entries beyond
// MaxEntries and saves it.
func (w *Writer) Append(entry Entry) error {
	if w.Path == "" {
		return nil
	}

	h, err := Load(w.fs, w.Path)
	if err != nil {
		return err
	}

	h.Entries = append(h.Entries, entry)
	if w.MaxEntries > 0 && len(h.Entries) > w.MaxEntries {
		excess := len(h.Entries) - w.MaxEntries
		h.Entries = h.Entries[excess:]
	}

	return Save(w.fs, w.Path, h)
}
