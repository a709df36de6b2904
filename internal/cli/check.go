package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/mcpclient"
	"github.com/mcpotools/mcpoctl/pkg/output"
)

var checkCmd = &cobra.Command{
	Use:   "check <server>",
	Short: "Connect to a configured server and list its tools",
	Long: `Run a pre-flight check against a server in the working configuration:
connect over its transport, perform the MCP handshake, and list the
tools it exposes. Useful before deploying a new definition: a server
that fails here will also fail inside mcpo.

Examples:
  mcpoctl check time
  mcpoctl check memory --timeout 30s`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var checkTimeout time.Duration

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 10*time.Second, "Connection timeout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := output.DefaultWriter()

	ctrl, _ := newController()
	working, err := ctrl.WorkingConfig()
	if err != nil {
		return err
	}

	spec, ok := working.MCPServers[name]
	if !ok {
		return fmt.Errorf("server %q not found in working configuration", name)
	}

	if !JSONOutput {
		out.Info("Connecting to %q (%s)...", name, spec.Transport())
	}

	client := mcpclient.New().WithTimeout(checkTimeout)
	result := client.Check(context.Background(), spec)

	if JSONOutput {
		jw := output.NewJSONWriter()
		if !result.Healthy {
			return jw.WriteError(result.Error)
		}
		return jw.WriteSuccess(result)
	}

	if !result.Healthy {
		out.Error("Check failed after %s: %v", result.Latency.Round(time.Millisecond), result.Error)
		return fmt.Errorf("server %q failed its pre-flight check", name)
	}

	out.Success("Server %q is healthy (%s)", name, result.Latency.Round(time.Millisecond))
	if len(result.Tools) > 0 {
		out.Println("\nTools:")
		for _, tool := range result.Tools {
			desc := tool.Description
			if len(desc) > 60 {
				desc = desc[:57] + "..."
			}
			out.Println("  %s - %s", tool.Name, desc)
		}
	}
	return nil
}
