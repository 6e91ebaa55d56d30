package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// PluginState is the persisted enable record for one plugin.
type PluginState struct {
	Enabled bool            `json:"enabled"`
	Binds   map[string]bool `json:"binds,omitempty"`
}

// Store reads and writes the plugin enable-state document. A missing
// file is not an error; it means everything defaults to enabled.
type Store struct {
	path string
}

// NewStore creates a store at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted states. Absent or unreadable documents
// yield an empty map; a malformed document is an error.
func (s *Store) Load() (map[string]PluginState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]PluginState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("plugin state load: %w", err)
	}
	states := map[string]PluginState{}
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, fmt.Errorf("plugin state parse %s: %w", s.path, err)
	}
	return states, nil
}

// Save writes the states, creating the parent directory if needed.
func (s *Store) Save(states map[string]PluginState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("plugin state save: %w", err)
	}
	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return fmt.Errorf("plugin state encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("plugin state save: %w", err)
	}
	return nil
}
