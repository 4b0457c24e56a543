// Package state persists the small key-value state shared by the engine
// components: the last resolved question/answer, daily fallback usage, the
// installation ID and user settings. The state survives process restarts as
// a single JSON file.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Usage is the per-day fallback call counter.
type Usage struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Settings holds user-controlled toggles.
type Settings struct {
	AIEnabled bool `json:"aiEnabled"`
}

// State is the durable schema. Field names match the persisted format.
type State struct {
	LastAnswer   string   `json:"lastAnswer,omitempty"`
	LastQuestion string   `json:"lastQuestion,omitempty"`
	AIUsage      Usage    `json:"aiUsage"`
	InstanceID   string   `json:"instanceId,omitempty"`
	Settings     Settings `json:"settings"`
}

// Store owns the state file. All read-modify-write sequences are serialized
// behind a single mutex so concurrent resolves cannot lose updates.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// NewStore creates a store backed by the given file path. A missing file
// yields the default state with the fallback enabled.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  path,
		state: State{Settings: Settings{AIEnabled: true}},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}

	return s, nil
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the state under the store lock and persists the
// result before returning. This is the single write path; callers compose
// their read-modify-write logic inside fn.
func (s *Store) Update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)
	return s.persist()
}

// InstanceID returns the per-installation identifier, generating and
// persisting one on first use.
func (s *Store) InstanceID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.InstanceID != "" {
		return s.state.InstanceID, nil
	}

	s.state.InstanceID = uuid.NewString()
	if err := s.persist(); err != nil {
		return "", err
	}
	return s.state.InstanceID, nil
}

// persist writes the state atomically (temp file + rename). Callers must
// hold the lock.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}
