package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/internal/tui"
	"github.com/mcpotools/mcpoctl/pkg/health"
	"github.com/mcpotools/mcpoctl/pkg/output"
	"github.com/mcpotools/mcpoctl/pkg/settings"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show gateway health and workflow state",
	Long: `Probe the gateway's OpenAPI endpoint and render its state: online,
starting, deploying, or offline. A config deployed moments ago is
reported as deploying until the restart grace period elapses.

Examples:
  mcpoctl status
  mcpoctl status --watch         # Keep polling until interrupted`,
	RunE: runStatus,
}

var statusWatch bool

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "W", false, "Keep polling and render updates live")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctrl, cfg := newController()
	// Short-lived process: recover an in-flight deploy from the
	// canonical file's mtime.
	sess := ctrl.RestoreSession(cfg.GracePeriod)

	prober := health.NewProber(settings.BaseURL(), cfg.ProbeTimeout)
	reconciler := health.NewReconciler(prober, sess, cfg.GracePeriod)

	if statusWatch {
		if err := requireInteractive("status"); err != nil {
			return err
		}
		return tui.RunStatusWatch(reconciler, cfg.PollInterval, prober.URL())
	}

	status := reconciler.Tick(context.Background())

	if JSONOutput {
		return output.NewJSONWriter().WriteSuccess(output.StatusOutput{
			State:    string(status.State),
			Detail:   status.Detail,
			Phase:    status.Phase.String(),
			ProbeURL: prober.URL(),
		})
	}

	out := output.DefaultWriter()
	switch status.State {
	case health.StateOnline:
		out.Success("%s", describeStatus(status))
	case health.StateOffline:
		out.Error("%s", describeStatus(status))
	default:
		out.Warning("%s", describeStatus(status))
	}

	if divergent, err := ctrl.HasDivergence(); err == nil && divergent {
		out.Warning("A draft with undeployed changes is staged; run 'mcpoctl diff' to review")
	}

	fmt.Printf("\n  phase: %s\n  probe: %s\n", status.Phase, prober.URL())
	return nil
}

// describeStatus renders a status line for humans.
func describeStatus(status health.Status) string {
	switch status.State {
	case health.StateOnline:
		return "mcpo online"
	case health.StateDeploying:
		return "deploying: config changed, gateway restarting"
	case health.StateStarting:
		if status.Detail != "" {
			return "mcpo starting (" + status.Detail + ")"
		}
		return "mcpo starting"
	default:
		if status.Detail != "" {
			return "mcpo offline (" + status.Detail + ")"
		}
		return "mcpo offline"
	}
}
