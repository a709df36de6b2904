// Package workflow implements the draft/commit/deploy state machine.
// Edits are buffered in the draft store so the external watcher never
// sees them; Deploy promotes the draft to the canonical path in one
// logical step, which is what actually restarts the gateway.
package workflow

import (
	"time"

	"github.com/mcpotools/mcpoctl/pkg/diff"
	"github.com/mcpotools/mcpoctl/pkg/gateway"
	"github.com/mcpotools/mcpoctl/pkg/store"
)

// Controller coordinates the canonical and draft stores. It owns the
// transition discipline; the Session it is handed owns the phase.
type Controller struct {
	canonical *store.ConfigStore
	draft     *store.DraftStore
}

// New creates a controller over the two stores.
func New(canonical *store.ConfigStore, draft *store.DraftStore) *Controller {
	return &Controller{canonical: canonical, draft: draft}
}

// NewSession creates the session state for a fresh observer. A leftover
// draft from a previous run starts the session in PhaseDraftPending.
func (c *Controller) NewSession() *Session {
	s := &Session{Phase: PhaseIdle}
	if c.draft.Load() != nil {
		s.Phase = PhaseDraftPending
	}
	return s
}

// RestoreSession is NewSession for short-lived processes: a canonical
// file modified within the grace period means a deploy from a previous
// invocation is still settling, so the session resumes in
// PhaseDeploying measured from the file's mtime.
func (c *Controller) RestoreSession(grace time.Duration) *Session {
	s := c.NewSession()
	if mtime := c.canonical.ModTime(); !mtime.IsZero() && time.Since(mtime) < grace {
		s.startDeploy(mtime)
	}
	return s
}

// Canonical exposes the canonical store (the reconciler and CLI need
// its path and touch signal).
func (c *Controller) Canonical() *store.ConfigStore { return c.canonical }

// Draft exposes the draft store.
func (c *Controller) Draft() *store.DraftStore { return c.draft }

// WorkingConfig returns the configuration all editing surfaces must
// read and mutate: the draft if one is staged, otherwise the canonical
// config.
func (c *Controller) WorkingConfig() (*gateway.Config, error) {
	if draft := c.draft.Load(); draft != nil {
		return draft, nil
	}
	return c.canonical.Load()
}

// HasDivergence reports whether the staged draft actually differs from
// the canonical config.
func (c *Controller) HasDivergence() (bool, error) {
	draft := c.draft.Load()
	if draft == nil {
		return false, nil
	}
	canonical, err := c.canonical.Load()
	if err != nil {
		return false, err
	}
	return diff.HasDivergence(draft, canonical), nil
}

// ApplyEdit validates a full replacement configuration and stages it.
// The canonical store is not touched, so the gateway does not restart.
// Validation failures leave the previous working configuration
// completely unchanged.
func (c *Controller) ApplyEdit(sess *Session, cfg *gateway.Config) error {
	if cfg.MCPServers == nil {
		return &gateway.ValidationError{Reason: "config must contain " + gateway.ServersKey + " key"}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := c.draft.Save(cfg); err != nil {
		return err
	}

	if sess.Phase == PhaseIdle {
		sess.Phase = PhaseDraftPending
	}
	return nil
}

// AddServer inserts a new server into the working configuration and
// stages the result. The name must not already be taken.
func (c *Controller) AddServer(sess *Session, name string, spec *gateway.ServerSpec) error {
	if err := spec.Validate(name); err != nil {
		return err
	}

	working, err := c.WorkingConfig()
	if err != nil {
		return err
	}
	if _, exists := working.MCPServers[name]; exists {
		return &DuplicateNameError{Name: name}
	}

	next := working.Clone()
	next.MCPServers[name] = spec.Clone()
	return c.ApplyEdit(sess, next)
}

// DeleteServer removes a server from the working configuration and
// stages the result.
func (c *Controller) DeleteServer(sess *Session, name string) error {
	working, err := c.WorkingConfig()
	if err != nil {
		return err
	}
	if _, exists := working.MCPServers[name]; !exists {
		return &NotFoundError{Name: name}
	}

	next := working.Clone()
	delete(next.MCPServers, name)
	return c.ApplyEdit(sess, next)
}

// Deploy promotes the draft to the canonical path. The canonical write
// lands first and the draft is cleared only after it succeeds: a crash
// or write failure in between leaves the draft intact so the operator
// can retry, and re-running Deploy with the same content is harmless.
// The canonical write is what triggers the watcher restart; the session
// enters PhaseDeploying for the health reconciler to settle.
func (c *Controller) Deploy(sess *Session) error {
	draft := c.draft.Load()
	if draft == nil {
		return ErrNoDraft
	}

	if err := c.canonical.Save(draft); err != nil {
		// Draft deliberately preserved for retry.
		return err
	}

	if err := c.draft.Clear(); err != nil {
		return err
	}

	sess.startDeploy(time.Now())
	return nil
}

// Discard drops the staged draft and returns to idle. Discarding when
// nothing is staged is a no-op.
func (c *Controller) Discard(sess *Session) error {
	if err := c.draft.Clear(); err != nil {
		return err
	}
	if sess.Phase == PhaseDraftPending {
		sess.Phase = PhaseIdle
	}
	return nil
}

// RestartOnly bumps the canonical file's mtime without changing its
// content, forcing a watcher-triggered restart with no config change.
func (c *Controller) RestartOnly(sess *Session) error {
	if err := c.canonical.Touch(); err != nil {
		return err
	}
	sess.startDeploy(time.Now())
	return nil
}
