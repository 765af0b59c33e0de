// Package prefs persists small user preferences as a TOML file.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// ErrCorrupt reports a prefs file that exists but cannot be parsed.
var ErrCorrupt = errors.New("prefs: corrupt file")

// Prefs holds user-toggled settings that survive restarts.
type Prefs struct {
	ReviewEnabled bool `toml:"review_enabled"`
}

// File reads and writes Prefs at a fixed path.
type File struct {
	path string
	mu   sync.Mutex
}

// Open returns a File for path. The file need not exist.
func Open(path string) *File {
	return &File{path: path}
}

// DefaultPath returns the prefs file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("prefs: %w", err)
	}
	return filepath.Join(dir, "strictwatch", "prefs.toml"), nil
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Load reads the file. A missing file yields zero Prefs.
func (f *File) Load() (Prefs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var p Prefs
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("prefs: read %s: %w", f.path, err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}, fmt.Errorf("%w %s: %w", ErrCorrupt, f.path, err)
	}
	return p, nil
}

// Save replaces the file atomically.
func (f *File) Save(p Prefs) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("prefs: %w", err)
	}
	return nil
}
