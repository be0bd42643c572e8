package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Keys the engine persists under. Fixed so stored values survive upgrades.
const (
	PrefSort     = "sort"
	PrefSearch   = "search"
	PrefStatus   = "status"
	PrefPlatform = "platform"
)

// Prefs persists view choices across runs, the way a browser client keeps
// them in localStorage. Get returns "" for unset keys.
type Prefs interface {
	Get(key string) string
	Set(key, value string) error
}

// FilePrefs stores preferences as a flat JSON object in a single file.
type FilePrefs struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// OpenFilePrefs loads preferences from path, starting empty if the file
// does not exist yet. A corrupt file is discarded rather than refusing to
// start.
func OpenFilePrefs(path string) (*FilePrefs, error) {
	p := &FilePrefs{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		p.values = make(map[string]string)
	}
	return p, nil
}

func (p *FilePrefs) Get(key string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[key]
}

func (p *FilePrefs) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value

	data, err := json.MarshalIndent(p.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create prefs dir: %w", err)
		}
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
