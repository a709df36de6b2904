package gateway

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Transport represents how mcpo talks to an MCP server
type Transport string

const (
	TransportStdio          Transport = "stdio"
	TransportSSE            Transport = "sse"
	TransportStreamableHTTP Transport = "streamable-http"
)

// ServerSpec is a single entry in the mcpServers mapping. The three
// variants match what mcpo accepts:
//
//	stdio           command + args (+ optional env)
//	sse             type=sse + url (+ optional headers)
//	streamable-http type=streamable-http + url
//
// Fields this tool does not know about are kept in Extra and written
// back verbatim, so editing a config never strips vendor extensions.
type ServerSpec struct {
	Type    Transport
	Command string
	Args    []string
	Env     map[string]string
	URL     string
	Headers map[string]string

	Extra map[string]json.RawMessage
}

// specKnownKeys are the JSON keys owned by ServerSpec itself.
var specKnownKeys = map[string]bool{
	"type":    true,
	"command": true,
	"args":    true,
	"env":     true,
	"url":     true,
	"headers": true,
}

// Transport returns the effective transport for the spec. An entry with
// no type field is a stdio server (mcpo's default).
func (s *ServerSpec) Transport() Transport {
	if s.Type == "" {
		return TransportStdio
	}
	return s.Type
}

// Validate checks the per-variant required fields. It returns a
// *ValidationError describing the first problem found.
func (s *ServerSpec) Validate(name string) error {
	if name == "" {
		return &ValidationError{Reason: "server name must not be empty"}
	}

	switch s.Transport() {
	case TransportStdio:
		if s.Command == "" {
			return &ValidationError{Server: name, Reason: "stdio server requires a command"}
		}
		if len(s.Args) == 0 {
			return &ValidationError{Server: name, Reason: "stdio server requires at least one argument"}
		}
		for i, arg := range s.Args {
			if arg == "" {
				return &ValidationError{Server: name, Reason: fmt.Sprintf("argument %d is empty", i)}
			}
		}
	case TransportSSE:
		if s.URL == "" {
			return &ValidationError{Server: name, Reason: "sse server requires a url"}
		}
	case TransportStreamableHTTP:
		if s.URL == "" {
			return &ValidationError{Server: name, Reason: "streamable-http server requires a url"}
		}
	default:
		return &ValidationError{Server: name, Reason: fmt.Sprintf("unknown server type %q", s.Type)}
	}

	return nil
}

// UnmarshalJSON keeps unrecognized keys in Extra so they survive a
// load/edit/save cycle.
func (s *ServerSpec) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type known struct {
		Type    Transport         `json:"type"`
		Command string            `json:"command"`
		Args    []string          `json:"args"`
		Env     map[string]string `json:"env"`
		URL     string            `json:"url"`
		Headers map[string]string `json:"headers"`
	}
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}

	*s = ServerSpec{
		Type:    k.Type,
		Command: k.Command,
		Args:    k.Args,
		Env:     k.Env,
		URL:     k.URL,
		Headers: k.Headers,
	}
	for key, val := range raw {
		if specKnownKeys[key] {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage)
		}
		s.Extra[key] = val
	}
	return nil
}

// MarshalJSON emits the known fields for the active variant plus any
// preserved Extra keys. Going through a map means keys come out in
// sorted order, which keeps serialization stable for fingerprinting.
func (s *ServerSpec) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Extra)+6)

	put := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		out[key] = b
		return nil
	}

	if s.Type != "" {
		if err := put("type", s.Type); err != nil {
			return nil, err
		}
	}
	if s.Command != "" {
		if err := put("command", s.Command); err != nil {
			return nil, err
		}
	}
	if s.Args != nil {
		if err := put("args", s.Args); err != nil {
			return nil, err
		}
	}
	if len(s.Env) > 0 {
		if err := put("env", s.Env); err != nil {
			return nil, err
		}
	}
	if s.URL != "" {
		if err := put("url", s.URL); err != nil {
			return nil, err
		}
	}
	if len(s.Headers) > 0 {
		if err := put("headers", s.Headers); err != nil {
			return nil, err
		}
	}
	for key, val := range s.Extra {
		out[key] = val
	}

	return json.Marshal(out)
}

// Clone returns a deep copy of the spec.
func (s *ServerSpec) Clone() *ServerSpec {
	c := &ServerSpec{
		Type:    s.Type,
		Command: s.Command,
		URL:     s.URL,
	}
	if s.Args != nil {
		c.Args = append([]string(nil), s.Args...)
	}
	if s.Env != nil {
		c.Env = make(map[string]string, len(s.Env))
		for k, v := range s.Env {
			c.Env[k] = v
		}
	}
	if s.Headers != nil {
		c.Headers = make(map[string]string, len(s.Headers))
		for k, v := range s.Headers {
			c.Headers[k] = v
		}
	}
	if s.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// Summary returns a short human-readable description of the spec for
// list output, e.g. "uvx mcp-server-time …" or "sse http://…".
func (s *ServerSpec) Summary() string {
	switch s.Transport() {
	case TransportStdio:
		if len(s.Args) > 0 {
			return s.Command + " " + s.Args[0]
		}
		return s.Command
	default:
		return string(s.Transport()) + " " + s.URL
	}
}

// SortedNames returns the keys of a server mapping in stable order.
func SortedNames(servers map[string]*ServerSpec) []string {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
