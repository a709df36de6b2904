package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/output"
)

var removeCmd = &cobra.Command{
	Use:     "remove <server>",
	Aliases: []string{"rm", "delete"},
	Short:   "Stage removal of an MCP server",
	Long: `Remove a server from the working configuration. Like add, the change
is staged in the draft and takes effect on deploy.

Examples:
  mcpoctl remove memory
  mcpoctl rm time`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	ctrl, _ := newController()
	sess := ctrl.NewSession()

	if err := ctrl.DeleteServer(sess, name); err != nil {
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	if JSONOutput {
		return output.NewJSONWriter().WriteSuccess(map[string]string{
			"name":  name,
			"draft": ctrl.Draft().Path(),
		})
	}

	out := output.DefaultWriter()
	out.Success("Staged removal of %q in draft", name)
	out.Info("Run 'mcpoctl deploy' to make it live (this restarts mcpo)")
	return nil
}
