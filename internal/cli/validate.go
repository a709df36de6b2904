package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/gateway"
	"github.com/mcpotools/mcpoctl/pkg/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Long: `Check that a config file is valid JSON, contains the mcpServers key,
and that every server entry has its variant-required fields. With no
argument, validates the staged draft if present, otherwise the live
config.

Examples:
  mcpoctl validate
  mcpoctl validate new-config.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := output.DefaultWriter()

	var data []byte
	var source string
	var err error

	if len(args) == 1 {
		source = args[0]
		data, err = os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("reading %s: %w", source, err)
		}
	} else {
		ctrl, _ := newController()
		source = ctrl.Draft().Path()
		data, err = os.ReadFile(source)
		if err != nil {
			source = ctrl.Canonical().Path()
			data, err = os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("reading %s: %w", source, err)
			}
		}
	}

	cfg, err := gateway.Parse(data)
	if err == nil {
		err = cfg.Validate()
	}

	if JSONOutput {
		jw := output.NewJSONWriter()
		if err != nil {
			return jw.WriteError(err)
		}
		return jw.WriteSuccess(map[string]any{
			"source":  source,
			"servers": len(cfg.MCPServers),
		})
	}

	if err != nil {
		out.Error("%s: %v", source, err)
		return fmt.Errorf("validation failed")
	}

	out.Success("%s is valid (%d server(s))", source, len(cfg.MCPServers))
	return nil
}
