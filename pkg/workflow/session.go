package workflow

import "time"

// Phase is where the edit/deploy lifecycle currently stands.
type Phase int

const (
	// PhaseIdle means the canonical config is the working config and
	// nothing is staged or in flight.
	PhaseIdle Phase = iota
	// PhaseDraftPending means edits are staged and waiting for a deploy
	// or discard.
	PhaseDraftPending
	// PhaseDeploying means a deploy (or manual restart) has perturbed
	// the watched file and the gateway is expected to be restarting.
	PhaseDeploying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDraftPending:
		return "draft-pending"
	case PhaseDeploying:
		return "deploying"
	default:
		return "unknown"
	}
}

// Session is the caller-owned transient state for one operator session:
// the current phase and, while deploying, when the deploy started. It
// is passed into every controller call instead of living in ambient
// process globals, so two observers never share flags by accident.
type Session struct {
	Phase Phase
	// DeployStarted is set when Phase becomes PhaseDeploying and is
	// what the health reconciler measures the grace period from.
	DeployStarted time.Time
}

// startDeploy moves the session into the deploying phase.
func (s *Session) startDeploy(now time.Time) {
	s.Phase = PhaseDeploying
	s.DeployStarted = now
}

// SettleDeploy returns the session to idle once the reconciler has seen
// the gateway healthy again.
func (s *Session) SettleDeploy() {
	if s.Phase == PhaseDeploying {
		s.Phase = PhaseIdle
		s.DeployStarted = time.Time{}
	}
}

// Deploying reports whether the session is inside a deploy window and,
// if so, how long ago it started.
func (s *Session) Deploying(now time.Time) (time.Duration, bool) {
	if s.Phase != PhaseDeploying {
		return 0, false
	}
	return now.Sub(s.DeployStarted), true
}
