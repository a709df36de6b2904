package store

import (
	"fmt"
	"os"

	"github.com/mcpotools/mcpoctl/pkg/fileutil"
	"github.com/mcpotools/mcpoctl/pkg/gateway"
)

// DraftStore holds the staged, not-yet-deployed copy of the
// configuration. Its defining constraint is where it lives: the staging
// path must be outside any directory the mcpo watcher monitors, so
// buffered edits never trigger a restart.
type DraftStore struct {
	path string
}

// NewDraftStore creates a store for the staging path.
func NewDraftStore(path string) *DraftStore {
	return &DraftStore{path: path}
}

// Path returns the staging file path.
func (s *DraftStore) Path() string { return s.path }

// Load returns the staged draft, or nil if there is none. An absent or
// unparsable staging file both mean "no draft"; a corrupt draft must
// never block the operator.
func (s *DraftStore) Load() *gateway.Config {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	cfg, err := gateway.Parse(data)
	if err != nil {
		return nil
	}
	return cfg
}

// Save stages a config, creating parent directories as needed.
func (s *DraftStore) Save(cfg *gateway.Config) error {
	data, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	if err := fileutil.AtomicWriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing draft %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the staging file. Removing an absent file is a no-op.
func (s *DraftStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing draft %s: %w", s.path, err)
	}
	return nil
}
