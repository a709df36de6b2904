package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mcpotools/mcpoctl/pkg/gateway"
	"github.com/mcpotools/mcpoctl/pkg/output"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Stage a new MCP server",
	Long: `Add a server to the working configuration. The change is staged in
the draft; mcpo does not restart until you run 'mcpoctl deploy'.

Quick-start presets: time, memory, docker-time.

Examples:
  mcpoctl add --preset time
  mcpoctl add memory --command npx --args "-y,@modelcontextprotocol/server-memory"
  mcpoctl add search --type sse --url http://127.0.0.1:8001/sse --header "Authorization=Bearer tok"
  mcpoctl add                    # Interactive form`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addPreset      string
	addType        string
	addCommand     string
	addArgs        []string
	addEnv         []string
	addURL         string
	addHeaders     []string
	addInteractive bool
)

func init() {
	addCmd.Flags().StringVar(&addPreset, "preset", "", "Quick-start preset: time, memory, docker-time")
	addCmd.Flags().StringVarP(&addType, "type", "t", "stdio", "Server type: stdio, sse, streamable-http")
	addCmd.Flags().StringVarP(&addCommand, "command", "c", "", "Command for stdio servers (uvx, npx, docker)")
	addCmd.Flags().StringSliceVar(&addArgs, "args", nil, "Comma-separated arguments for stdio servers")
	addCmd.Flags().StringArrayVarP(&addEnv, "env", "e", nil, "Environment variable KEY=VALUE (repeatable)")
	addCmd.Flags().StringVarP(&addURL, "url", "u", "", "Endpoint URL for sse/streamable-http servers")
	addCmd.Flags().StringArrayVar(&addHeaders, "header", nil, "HTTP header KEY=VALUE for sse servers (repeatable)")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "Fill in the server definition interactively")
}

func runAdd(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}

	var spec *gateway.ServerSpec
	switch {
	case addPreset != "":
		preset, ok := gateway.LookupPreset(addPreset)
		if !ok {
			return fmt.Errorf("unknown preset %q (have: time, memory, docker-time)", addPreset)
		}
		if name == "" {
			name = preset.Name
		}
		spec = preset.Spec

	case addInteractive || (name == "" && !cmd.Flags().Changed("command") && !cmd.Flags().Changed("url")):
		if err := requireInteractive("add"); err != nil {
			return err
		}
		var err error
		name, spec, err = addServerForm(name)
		if err != nil || spec == nil {
			return err
		}

	default:
		env, err := parseKeyValues(addEnv)
		if err != nil {
			return err
		}
		headers, err := parseKeyValues(addHeaders)
		if err != nil {
			return err
		}
		spec = &gateway.ServerSpec{
			Command: addCommand,
			Args:    addArgs,
			Env:     env,
			URL:     addURL,
			Headers: headers,
		}
		if addType != string(gateway.TransportStdio) {
			spec.Type = gateway.Transport(addType)
		}
	}

	ctrl, _ := newController()
	sess := ctrl.NewSession()

	if err := ctrl.AddServer(sess, name, spec); err != nil {
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
	out.Success("Staged server %q in draft", name)
	out.Info("Run 'mcpoctl deploy' to make it live (this restarts mcpo)")
	return nil
}

// addServerForm collects a server definition interactively, mirroring
// the flag surface.
func addServerForm(name string) (string, *gateway.ServerSpec, error) {
	serverType := string(gateway.TransportStdio)
	var command, argsText, envText, url, headersText string

	typeGroup := huh.NewGroup(
		huh.NewInput().
			Title("Server name").
			Description("Unique identifier, used as the URL path segment").
			Value(&name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Server type").
			Options(
				huh.NewOption("stdio: command-line tools (uvx, npx, docker)", string(gateway.TransportStdio)),
				huh.NewOption("sse: Server-Sent Events endpoint", string(gateway.TransportSSE)),
				huh.NewOption("streamable-http: HTTP streaming endpoint", string(gateway.TransportStreamableHTTP)),
			).
			Value(&serverType),
	)

	stdioGroup := huh.NewGroup(
		huh.NewInput().
			Title("Command").
			Placeholder("uvx, npx, or docker").
			Value(&command),
		huh.NewText().
			Title("Arguments (one per line)").
			Placeholder("-y\n@modelcontextprotocol/server-memory").
			Value(&argsText),
		huh.NewText().
			Title("Environment variables (optional, JSON)").
			Placeholder(`{"API_KEY": "your-key"}`).
			Value(&envText),
	).WithHideFunc(func() bool {
		return serverType != string(gateway.TransportStdio)
	})

	urlGroup := huh.NewGroup(
		huh.NewInput().
			Title("Endpoint URL").
			Placeholder("http://127.0.0.1:8001/sse").
			Value(&url),
		huh.NewText().
			Title("Headers (optional, JSON)").
			Placeholder(`{"Authorization": "Bearer token"}`).
			Value(&headersText),
	).WithHideFunc(func() bool {
		return serverType == string(gateway.TransportStdio)
	})

	done, err := runFormWithCancel(newStyledForm(typeGroup, stdioGroup, urlGroup), "add")
	if err != nil || !done {
		return "", nil, err
	}

	spec := &gateway.ServerSpec{}
	switch gateway.Transport(serverType) {
	case gateway.TransportStdio:
		spec.Command = strings.TrimSpace(command)
		for _, line := range strings.Split(argsText, "\n") {
			if arg := strings.TrimSpace(line); arg != "" {
				spec.Args = append(spec.Args, arg)
			}
		}
		if strings.TrimSpace(envText) != "" {
			if err := json.Unmarshal([]byte(envText), &spec.Env); err != nil {
				return "", nil, fmt.Errorf("invalid env JSON: %w", err)
			}
		}
	default:
		spec.Type = gateway.Transport(serverType)
		spec.URL = strings.TrimSpace(url)
		if serverType == string(gateway.TransportSSE) && strings.TrimSpace(headersText) != "" {
			if err := json.Unmarshal([]byte(headersText), &spec.Headers); err != nil {
				return "", nil, fmt.Errorf("invalid headers JSON: %w", err)
			}
		}
	}

	return name, spec, nil
}

// parseKeyValues turns repeated KEY=VALUE flags into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected KEY=VALUE, got %q", pair)
		}
		out[key] = value
	}
	return out, nil
}
