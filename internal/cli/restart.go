package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/output"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the gateway without changing its configuration",
	Long: `Bump the canonical config file's modification time without touching
its content. The watcher treats the mtime change like any other config
change and restarts mcpo. Use this when the gateway is wedged but the
configuration is fine.

Examples:
  mcpoctl restart
  mcpoctl restart --wait`,
	RunE: runRestart,
}

var restartWait bool

func init() {
	restartCmd.Flags().BoolVarP(&restartWait, "wait", "w", false, "Poll until the gateway reports healthy again")
	restartCmd.Flags().DurationVar(&deployTimeout, "timeout", 60*time.Second, "How long --wait polls before giving up")
}

func runRestart(cmd *cobra.Command, args []string) error {
	ctrl, cfg := newController()
	sess := ctrl.NewSession()
	out := output.DefaultWriter()

	if err := ctrl.RestartOnly(sess); err != nil {
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	if JSONOutput && !restartWait {
		return output.NewJSONWriter().WriteSuccess(output.DeployOutput{
			ConfigPath: ctrl.Canonical().Path(),
			Restarting: true,
		})
	}

	if !JSONOutput {
		out.Success("Touched %s, mcpo is restarting", ctrl.Canonical().Path())
	}

	if !restartWait {
		if !JSONOutput {
			out.Info("Run 'mcpoctl status --watch' to follow the restart")
		}
		return nil
	}

	return waitUntilOnline(sess, cfg, out)
}
