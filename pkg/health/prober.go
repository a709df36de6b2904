// Package health renders the gateway's restart lifecycle back to the
// operator. There is no direct signal from the restarted process, only
// an HTTP liveness endpoint, so everything here is polling: a probe per
// tick, cross-referenced with the workflow phase.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MinBodyBytes is the smallest schema body accepted as proof of life.
// mcpo serves a trivial stub while still wiring up servers; a 200 with
// a near-empty body means "not yet ready", not "online".
const MinBodyBytes = 100

// maxBodyBytes bounds how much of the schema is read per probe.
const maxBodyBytes = 1 << 20

// Result is the outcome of a single liveness probe.
type Result struct {
	// Online means reachable, status OK, and a body recognizable as the
	// gateway's schema.
	Online bool
	// Reachable means the endpoint answered at all, even if the answer
	// wasn't a usable schema yet.
	Reachable bool
	Detail    string
	Latency   time.Duration
}

// Prober issues bounded-timeout GETs against the gateway's schema
// endpoint.
type Prober struct {
	baseURL string
	client  *http.Client
}

// NewProber creates a prober for the gateway at baseURL.
func NewProber(baseURL string, timeout time.Duration) *Prober {
	return &Prober{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// URL returns the liveness endpoint being probed.
func (p *Prober) URL() string { return p.baseURL + "/openapi.json" }

// Probe performs one liveness check. Probe never returns an error:
// every failure mode is a Result the reconciler simply retries on the
// next tick.
func (p *Prober) Probe(ctx context.Context) Result {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL(), nil)
	if err != nil {
		return Result{Detail: err.Error(), Latency: time.Since(start)}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{Detail: err.Error(), Latency: time.Since(start)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{Reachable: true, Detail: err.Error(), Latency: time.Since(start)}
	}

	if resp.StatusCode != http.StatusOK {
		return Result{
			Reachable: true,
			Detail:    fmt.Sprintf("status %d", resp.StatusCode),
			Latency:   time.Since(start),
		}
	}

	if len(body) < MinBodyBytes {
		return Result{
			Reachable: true,
			Detail:    fmt.Sprintf("body too small (%d bytes)", len(body)),
			Latency:   time.Since(start),
		}
	}

	// The body must actually look like an OpenAPI document, not just be
	// long enough.
	var schema struct {
		OpenAPI string `json:"openapi"`
	}
	if err := json.Unmarshal(body, &schema); err != nil || schema.OpenAPI == "" {
		return Result{
			Reachable: true,
			Detail:    "body is not an OpenAPI schema",
			Latency:   time.Since(start),
		}
	}

	return Result{Online: true, Reachable: true, Latency: time.Since(start)}
}
