package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/health"
	"github.com/mcpotools/mcpoctl/pkg/output"
	"github.com/mcpotools/mcpoctl/pkg/settings"
	"github.com/mcpotools/mcpoctl/pkg/workflow"
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Promote the draft to the live configuration",
	Long: `Write the staged draft to the canonical config file. The watcher that
supervises mcpo sees the change and restarts the gateway.

The canonical write lands before the draft is cleared: if the write
fails, the draft is preserved and deploy can simply be retried.

Examples:
  mcpoctl deploy
  mcpoctl deploy --wait          # Block until the gateway is back online`,
	RunE: runDeploy,
}

var (
	deployWait    bool
	deployTimeout time.Duration
)

func init() {
	deployCmd.Flags().BoolVarP(&deployWait, "wait", "w", false, "Poll until the gateway reports healthy again")
	deployCmd.Flags().DurationVar(&deployTimeout, "timeout", 60*time.Second, "How long --wait polls before giving up")
}

func runDeploy(cmd *cobra.Command, args []string) error {
	ctrl, cfg := newController()
	sess := ctrl.NewSession()
	out := output.DefaultWriter()

	draft := ctrl.Draft().Load()
	if err := ctrl.Deploy(sess); err != nil {
		if errors.Is(err, workflow.ErrNoDraft) && !JSONOutput {
			out.Info("Nothing staged. Use 'mcpoctl add' or 'mcpoctl edit' first, or 'mcpoctl restart' for a config-free restart")
		}
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	if JSONOutput && !deployWait {
		return output.NewJSONWriter().WriteSuccess(output.DeployOutput{
			ConfigPath: ctrl.Canonical().Path(),
			Servers:    len(draft.MCPServers),
			Restarting: true,
		})
	}

	if !JSONOutput {
		out.Success("Deployed %d server(s) to %s", len(draft.MCPServers), ctrl.Canonical().Path())
		out.Info("mcpo is restarting")
	}

	if !deployWait {
		if !JSONOutput {
			out.Info("Run 'mcpoctl status --watch' to follow the restart")
		}
		return nil
	}

	return waitUntilOnline(sess, cfg, out)
}

// waitUntilOnline drives the reconciler until the gateway comes back or
// the timeout expires.
func waitUntilOnline(sess *workflow.Session, cfg settings.Settings, out *output.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), deployTimeout)
	defer cancel()

	prober := health.NewProber(settings.BaseURL(), cfg.ProbeTimeout)
	reconciler := health.NewReconciler(prober, sess, cfg.GracePeriod)

	var last health.Status
	for status := range reconciler.Watch(ctx, cfg.PollInterval) {
		last = status
		if status.State == health.StateOnline {
			if JSONOutput {
				return output.NewJSONWriter().WriteSuccess(output.StatusOutput{
					State:    string(status.State),
					Phase:    status.Phase.String(),
					ProbeURL: prober.URL(),
				})
			}
			out.Success("Gateway online")
			return nil
		}
		if !JSONOutput {
			out.Info("%s", describeStatus(status))
		}
	}

	err := fmt.Errorf("gateway did not come online within %s (last state: %s)", deployTimeout, last.State)
	if JSONOutput {
		return output.NewJSONWriter().WriteError(err)
	}
	return err
}
