package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/gateway"
	"github.com/mcpotools/mcpoctl/pkg/output"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Stage a full replacement configuration",
	Long: `Replace the entire working configuration with JSON from a file or
stdin. The JSON must contain the mcpServers key; each server entry is
validated before anything is staged, so a bad edit never clobbers the
draft.

Examples:
  mcpoctl edit --file new-config.json
  cat new-config.json | mcpoctl edit`,
	RunE: runEdit,
}

var editFile string

func init() {
	editCmd.Flags().StringVarP(&editFile, "file", "f", "", "Read the configuration from this file (default: stdin)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error

	if editFile != "" {
		data, err = os.ReadFile(editFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", editFile, err)
		}
	} else {
		if isInteractive() {
			return fmt.Errorf("no input: pass --file or pipe JSON on stdin")
		}
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	cfg, err := gateway.Parse(data)
	if err != nil {
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	ctrl, _ := newController()
	sess := ctrl.NewSession()

	if err := ctrl.ApplyEdit(sess, cfg); err != nil {
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	if JSONOutput {
		return output.NewJSONWriter().WriteSuccess(map[string]any{
			"servers": len(cfg.MCPServers),
			"draft":   ctrl.Draft().Path(),
		})
	}

	out := output.DefaultWriter()
	out.Success("Staged configuration with %d server(s) in draft", len(cfg.MCPServers))
	out.Info("Run 'mcpoctl diff' to review, 'mcpoctl deploy' to make it live")
	return nil
}
