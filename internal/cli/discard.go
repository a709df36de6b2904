package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/output"
)

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Drop the staged draft",
	Long: `Remove the staged draft without deploying it. The live configuration
is untouched and mcpo does not restart. Discarding when nothing is
staged is a no-op.`,
	RunE: runDiscard,
}

func runDiscard(cmd *cobra.Command, args []string) error {
	ctrl, _ := newController()
	sess := ctrl.NewSession()

	hadDraft := ctrl.Draft().Load() != nil
	if err := ctrl.Discard(sess); err != nil {
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	if JSONOutput {
		return output.NewJSONWriter().WriteSuccess(map[string]bool{"discarded": hadDraft})
	}

	out := output.DefaultWriter()
	if hadDraft {
		out.Success("Draft discarded")
	} else {
		out.Info("No draft to discard")
	}
	return nil
}
