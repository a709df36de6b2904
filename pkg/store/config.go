// Package store owns the two on-disk copies of the gateway
// configuration: the canonical file the mcpo watcher observes, and the
// staging draft that edits are buffered in so they don't restart the
// gateway prematurely.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mcpotools/mcpoctl/pkg/fileutil"
	"github.com/mcpotools/mcpoctl/pkg/gateway"
)

// ConfigStore reads and writes the canonical config file. Every write
// to this path is observed by the external watcher and restarts mcpo,
// so callers must only Save configurations that are meant to go live.
type ConfigStore struct {
	path        string
	keepBackups int
}

// NewConfigStore creates a store for the canonical path.
func NewConfigStore(path string, keepBackups int) *ConfigStore {
	if keepBackups <= 0 {
		keepBackups = fileutil.DefaultBackupCount
	}
	return &ConfigStore{path: path, keepBackups: keepBackups}
}

// Path returns the canonical config path.
func (s *ConfigStore) Path() string { return s.path }

// Load reads the canonical config. A missing, unreadable, or
// malformed file falls back to the bundled example and is persisted
// immediately. Valid JSON whose server mapping is missing or empty is
// repaired in place (the example servers are substituted into the
// mapping only; preserved top-level keys survive) and persisted. The
// returned config never has an empty server mapping. The only error
// Load can return is a write failure from the self-healing persist.
func (s *ConfigStore) Load() (*gateway.Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return s.heal()
	}

	cfg, err := gateway.Parse(data)
	if err != nil {
		var verr *gateway.ValidationError
		if !errors.As(err, &verr) {
			// Malformed JSON. The canonical file isn't operator input;
			// it is replaced, not rejected.
			return s.heal()
		}
		// Valid JSON missing the mcpServers key: keep the rest of the
		// document and repair the mapping alone.
		cfg = &gateway.Config{}
		if err := json.Unmarshal(data, cfg); err != nil {
			return s.heal()
		}
	}

	if cfg.Empty() {
		repair(cfg)
		if err := s.Save(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// Save repairs an empty server mapping, then writes the config
// pretty-printed to the canonical path, creating parent directories as
// needed. The write is backup-then-atomic-rename so the watcher never
// sees a partial file. Write failures are returned, never swallowed.
func (s *ConfigStore) Save(cfg *gateway.Config) error {
	repair(cfg)

	data, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := fileutil.SafeWriteFile(s.path, data, 0644, s.keepBackups); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// Touch bumps the canonical file's mtime without changing content, the
// manual restart signal for the watcher.
func (s *ConfigStore) Touch() error {
	return fileutil.Touch(s.path)
}

// ModTime returns the canonical file's modification time, or the zero
// time if the file doesn't exist. The watcher restarts mcpo on mtime
// changes, so a recent ModTime means a restart is likely in flight.
func (s *ConfigStore) ModTime() time.Time {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Backups lists the retained backups of the canonical file, oldest
// first.
func (s *ConfigStore) Backups() ([]string, error) {
	return fileutil.ListBackups(s.path)
}

func (s *ConfigStore) heal() (*gateway.Config, error) {
	cfg := gateway.Example()
	if err := s.Save(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// repair substitutes the bundled example servers when the mapping is
// empty or missing. This guards mcpo's at-least-one-server requirement;
// it never touches a non-empty mapping.
func repair(cfg *gateway.Config) {
	if !cfg.Empty() {
		return
	}
	cfg.MCPServers = gateway.Example().MCPServers
}
