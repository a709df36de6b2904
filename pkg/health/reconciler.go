package health

import (
	"context"
	"time"

	"github.com/mcpotools/mcpoctl/pkg/workflow"
)

// State is what the operator sees for the gateway.
type State string

const (
	// StateOnline means the gateway answered with a real schema.
	StateOnline State = "online"
	// StateStarting means the gateway is reachable or expected back
	// shortly, a restart is in progress.
	StateStarting State = "starting"
	// StateDeploying means we are inside the post-deploy grace window
	// and deliberately not probing yet.
	StateDeploying State = "deploying"
	// StateOffline means the gateway is unreachable outside any deploy
	// window.
	StateOffline State = "offline"
)

// Status is one rendered observation. Phase is the workflow phase as
// it stood after this evaluation: observers render from the Status they
// received instead of reading the live session, which Tick mutates.
type Status struct {
	State     State
	Detail    string
	Phase     workflow.Phase
	CheckedAt time.Time
}

// Reconciler evaluates the gateway's health against the workflow phase.
// It is demand-driven: a Tick per observation, or a Watch whose ticker
// stops with its context. No probe failure is fatal; every failure just
// re-arms the next tick.
type Reconciler struct {
	prober  *Prober
	session *workflow.Session
	grace   time.Duration

	now func() time.Time // test hook
}

// NewReconciler creates a reconciler for one observed session.
func NewReconciler(prober *Prober, session *workflow.Session, grace time.Duration) *Reconciler {
	return &Reconciler{
		prober:  prober,
		session: session,
		grace:   grace,
		now:     time.Now,
	}
}

// Tick performs one reconciliation pass:
//
//  1. Inside the post-deploy grace window, render deploying and don't
//     probe: the gateway is mid-restart and a failed probe would only
//     mislead.
//  2. Otherwise probe. Success renders online and settles a deploying
//     session back to idle. Failure renders starting while a deploy is
//     pending or the endpoint is half-up, offline otherwise.
func (r *Reconciler) Tick(ctx context.Context) Status {
	now := r.now()
	status := Status{CheckedAt: now}

	if elapsed, deploying := r.session.Deploying(now); deploying && elapsed < r.grace {
		status.State = StateDeploying
		status.Detail = "config changed, waiting for restart"
		status.Phase = r.session.Phase
		return status
	}

	result := r.prober.Probe(ctx)
	switch {
	case result.Online:
		status.State = StateOnline
		r.session.SettleDeploy()
	case r.session.Phase == workflow.PhaseDeploying:
		status.State = StateStarting
		status.Detail = result.Detail
	case result.Reachable:
		// Answering but not serving a real schema yet.
		status.State = StateStarting
		status.Detail = result.Detail
	default:
		status.State = StateOffline
		status.Detail = result.Detail
	}
	status.Phase = r.session.Phase
	return status
}

// Watch re-evaluates on a fixed interval and publishes each rendered
// status. It emits one status immediately, then one per tick, and stops
// when ctx is cancelled, so polling only lives as long as someone is
// observing.
func (r *Reconciler) Watch(ctx context.Context, interval time.Duration) <-chan Status {
	out := make(chan Status, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		send := func() {
			select {
			case out <- r.Tick(ctx):
			case <-ctx.Done():
			}
		}

		send()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				send()
			}
		}
	}()

	return out
}
