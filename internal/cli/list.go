package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/gateway"
	"github.com/mcpotools/mcpoctl/pkg/output"
	"github.com/mcpotools/mcpoctl/pkg/settings"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured MCP servers",
	Long: `List the servers in the working configuration (the draft if one is
staged, otherwise the live config), with the endpoints mcpo serves them
under.

Examples:
  mcpoctl list
  mcpoctl list --json`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ctrl, _ := newController()
	out := output.DefaultWriter()

	working, err := ctrl.WorkingConfig()
	if err != nil {
		if JSONOutput {
			return output.NewJSONWriter().WriteError(err)
		}
		return err
	}

	hasDraft := ctrl.Draft().Load() != nil
	baseURL := settings.BaseURL()

	if JSONOutput {
		listOut := output.ListOutput{
			ConfigPath: ctrl.Canonical().Path(),
			HasDraft:   hasDraft,
			Servers:    []output.ServerInfo{},
		}
		if hasDraft {
			listOut.DraftPath = ctrl.Draft().Path()
		}
		for _, name := range gateway.SortedNames(working.MCPServers) {
			spec := working.MCPServers[name]
			listOut.Servers = append(listOut.Servers, output.ServerInfo{
				Name:       name,
				Type:       string(spec.Transport()),
				Summary:    spec.Summary(),
				Staged:     hasDraft,
				DocsURL:    gateway.DocsURL(baseURL, name),
				OpenAPIURL: gateway.OpenAPIURL(baseURL, name),
			})
		}
		return output.NewJSONWriter().WriteSuccess(listOut)
	}

	if hasDraft {
		out.Warning("Showing staged draft; run 'mcpoctl deploy' to make it live")
	}

	table := output.NewTable("name", "type", "definition", "docs")
	for _, name := range gateway.SortedNames(working.MCPServers) {
		spec := working.MCPServers[name]
		table.AddRow(name, string(spec.Transport()), spec.Summary(), gateway.DocsURL(baseURL, name))
	}
	table.Render()

	fmt.Println()
	out.Info("%d server(s) in %s", len(working.MCPServers), ctrl.Canonical().Path())
	return nil
}
