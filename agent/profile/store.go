package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists user profile data as a single JSON object of string keys
// to string values. It is read-modify-write with no locking: acceptable for
// the single-user deployments this targets.
type Store struct {
	path string
}

// NewStore creates a store backed by the JSON file at path. The file is
// lazily created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Read returns the stored profile. A missing, empty, or malformed file
// yields an empty map, never an error.
func (s *Store) Read() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil || len(data) == 0 {
		return map[string]string{}
	}

	var profile map[string]string
	if err := json.Unmarshal(data, &profile); err != nil || profile == nil {
		return map[string]string{}
	}
	return profile
}

// Set updates a single key and writes the full mapping back, preserving
// unrelated keys.
func (s *Store) Set(key, value string) error {
	profile := s.Read()
	profile[key] = value

	data, err := json.MarshalIndent(profile, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
