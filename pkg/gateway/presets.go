package gateway

import "sort"

// Preset is a ready-made server definition for the common quick-start
// servers.
type Preset struct {
	Name        string
	Description string
	Spec        *ServerSpec
}

var presets = map[string]Preset{
	"time": {
		Name:        "time",
		Description: "Time server via uvx",
		Spec: &ServerSpec{
			Command: "uvx",
			Args:    []string{"mcp-server-time", "--local-timezone=America/New_York"},
		},
	},
	"memory": {
		Name:        "memory",
		Description: "Memory server via npx",
		Spec: &ServerSpec{
			Command: "npx",
			Args:    []string{"-y", "@modelcontextprotocol/server-memory"},
		},
	},
	"docker-time": {
		Name:        "docker-time",
		Description: "Time server in a Docker container",
		Spec: &ServerSpec{
			Command: "docker",
			Args:    []string{"run", "-i", "--rm", "mcp/time"},
		},
	},
}

// LookupPreset returns the preset for a quick-start name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	if ok {
		p.Spec = p.Spec.Clone()
	}
	return p, ok
}

// Presets returns all quick-start presets sorted by name.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		p.Spec = p.Spec.Clone()
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
