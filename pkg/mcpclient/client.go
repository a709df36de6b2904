// Package mcpclient connects directly to a configured MCP server to
// verify the definition actually works before it is deployed to the
// gateway. This is a pre-flight aid only; the deploy workflow never
// depends on it.
package mcpclient

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mcpotools/mcpoctl/pkg/gateway"
)

// Tool represents an MCP tool exposed by a server
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CheckResult represents the result of a pre-flight server check
type CheckResult struct {
	Healthy bool          `json:"healthy"`
	Tools   []Tool        `json:"tools,omitempty"`
	Error   error         `json:"error,omitempty"`
	Latency time.Duration `json:"latency"`
}

// Client wraps the MCP SDK client for pre-flight checks
type Client struct {
	timeout time.Duration
}

// New creates a new MCP client wrapper
func New() *Client {
	return &Client{
		timeout: 10 * time.Second,
	}
}

// WithTimeout sets the timeout for client operations
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// Check connects to a server definition, performs the initialize
// handshake, and lists its tools.
func (c *Client) Check(ctx context.Context, spec *gateway.ServerSpec) CheckResult {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result := CheckResult{}

	transport, err := c.createTransport(spec)
	if err != nil {
		result.Error = fmt.Errorf("failed to create transport: %w", err)
		result.Latency = time.Since(start)
		return result
	}

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "mcpoctl",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		result.Error = fmt.Errorf("failed to connect: %w", err)
		result.Latency = time.Since(start)
		return result
	}
	defer session.Close()

	toolsResult, err := session.ListTools(ctx, nil)
	if err != nil {
		result.Error = fmt.Errorf("failed to list tools: %w", err)
		result.Latency = time.Since(start)
		return result
	}

	result.Healthy = true
	result.Latency = time.Since(start)

	for _, t := range toolsResult.Tools {
		result.Tools = append(result.Tools, Tool{
			Name:        t.Name,
			Description: t.Description,
		})
	}

	return result
}

// createTransport creates the appropriate transport for the spec's
// variant. The three gateway variants map directly onto the SDK: stdio
// to a command transport, sse and streamable-http to the streamable
// HTTP client.
func (c *Client) createTransport(spec *gateway.ServerSpec) (mcpsdk.Transport, error) {
	switch spec.Transport() {
	case gateway.TransportSSE, gateway.TransportStreamableHTTP:
		if spec.URL == "" {
			return nil, fmt.Errorf("%s server requires url", spec.Transport())
		}
		return &mcpsdk.StreamableClientTransport{
			Endpoint: spec.URL,
			HTTPClient: &http.Client{
				Timeout: c.timeout,
			},
		}, nil

	case gateway.TransportStdio:
		if spec.Command == "" {
			return nil, fmt.Errorf("stdio server requires command")
		}
		cmd := exec.Command(spec.Command, spec.Args...)

		if len(spec.Env) > 0 {
			cmd.Env = os.Environ()
			for k, v := range spec.Env {
				cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
			}
		}

		return &mcpsdk.CommandTransport{
			Command: cmd,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported server type: %s", spec.Type)
	}
}
