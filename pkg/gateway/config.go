package gateway

import (
	"bytes"
	"embed"
	"encoding/json"
)

//go:embed config.example.json
var embeddedExample embed.FS

// ServersKey is the required top-level key of an mcpo config file.
const ServersKey = "mcpServers"

// Config is the mcpo configuration: a mapping from server name to
// ServerSpec. Top-level keys other than mcpServers are carried along
// untouched, the same way ServerSpec preserves its unknown fields.
type Config struct {
	MCPServers map[string]*ServerSpec
	Extra      map[string]json.RawMessage
}

// Parse decodes an operator-supplied configuration. Malformed JSON is a
// *ParseError; structurally valid JSON without the mcpServers key is a
// *ValidationError (an empty-but-present mapping is fine here; the
// canonical store repairs emptiness, see store.ConfigStore).
func Parse(data []byte) (*Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	serversRaw, ok := raw[ServersKey]
	if !ok {
		return nil, &ValidationError{Reason: "config must contain " + ServersKey + " key"}
	}

	servers := make(map[string]*ServerSpec)
	if err := json.Unmarshal(serversRaw, &servers); err != nil {
		return nil, &ParseError{Err: err}
	}

	cfg := &Config{MCPServers: servers}
	for key, val := range raw {
		if key == ServersKey {
			continue
		}
		if cfg.Extra == nil {
			cfg.Extra = make(map[string]json.RawMessage)
		}
		cfg.Extra[key] = val
	}
	return cfg, nil
}

// Validate checks every server entry against its variant rules.
func (c *Config) Validate() error {
	for _, name := range SortedNames(c.MCPServers) {
		if err := c.MCPServers[name].Validate(name); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON emits mcpServers first-class alongside any preserved
// top-level keys. Keys are sorted by the encoder, which makes the
// output byte-stable for identical configs.
func (c *Config) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.Extra)+1)

	servers := c.MCPServers
	if servers == nil {
		servers = map[string]*ServerSpec{}
	}
	b, err := json.Marshal(servers)
	if err != nil {
		return nil, err
	}
	out[ServersKey] = b

	for key, val := range c.Extra {
		out[key] = val
	}
	return json.Marshal(out)
}

// UnmarshalJSON mirrors Parse but treats a missing mcpServers key as an
// empty mapping; validation of operator input belongs to Parse.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Config{MCPServers: make(map[string]*ServerSpec)}
	if serversRaw, ok := raw[ServersKey]; ok {
		if err := json.Unmarshal(serversRaw, &c.MCPServers); err != nil {
			return err
		}
	}
	for key, val := range raw {
		if key == ServersKey {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]json.RawMessage)
		}
		c.Extra[key] = val
	}
	return nil
}

// Encode renders the config pretty-printed, without HTML escaping, the
// format the canonical file is written in.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := &Config{MCPServers: make(map[string]*ServerSpec, len(c.MCPServers))}
	for name, spec := range c.MCPServers {
		out.MCPServers[name] = spec.Clone()
	}
	if c.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Empty reports whether the server mapping is missing or has no entries.
func (c *Config) Empty() bool {
	return len(c.MCPServers) == 0
}

// Example returns the bundled fallback configuration (a single uvx time
// server). mcpo refuses to start with no servers, so this seeds any
// empty or missing canonical config.
func Example() *Config {
	data, err := embeddedExample.ReadFile("config.example.json")
	if err != nil {
		panic("gateway: bundled example config missing: " + err.Error())
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		panic("gateway: bundled example config invalid: " + err.Error())
	}
	return &cfg
}
