package gateway

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantServers int
		wantParse   bool
		wantInvalid bool
	}{
		{
			name:        "single stdio server",
			input:       `{"mcpServers": {"time": {"command": "uvx", "args": ["mcp-server-time"]}}}`,
			wantServers: 1,
		},
		{
			name:        "empty mapping is structurally valid",
			input:       `{"mcpServers": {}}`,
			wantServers: 0,
		},
		{
			name:        "missing mcpServers key",
			input:       `{"servers": {}}`,
			wantInvalid: true,
		},
		{
			name:      "malformed JSON",
			input:     `{"mcpServers": {`,
			wantParse: true,
		},
		{
			name:      "mcpServers is not an object",
			input:     `{"mcpServers": [1, 2]}`,
			wantParse: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))

			if tt.wantParse {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("expected *ParseError, got %v", err)
				}
				return
			}
			if tt.wantInvalid {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(cfg.MCPServers) != tt.wantServers {
				t.Errorf("got %d servers, want %d", len(cfg.MCPServers), tt.wantServers)
			}
		})
	}
}

func TestParsePreservesTopLevelExtras(t *testing.T) {
	input := `{
		"mcpServers": {"time": {"command": "uvx", "args": ["mcp-server-time"]}},
		"x-generated-by": "hand"
	}`

	cfg, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if string(cfg.Extra["x-generated-by"]) != `"hand"` {
		t.Errorf("top-level extra not preserved: %v", cfg.Extra)
	}

	out, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(out), "x-generated-by") {
		t.Errorf("encoded config lost top-level extra:\n%s", out)
	}
}

func TestConfigEncodeRoundTrip(t *testing.T) {
	cfg := &Config{MCPServers: map[string]*ServerSpec{
		"time": {Command: "uvx", Args: []string{"mcp-server-time"}},
		"stream": {
			Type:    TransportStreamableHTTP,
			URL:     "http://127.0.0.1:8002/mcp?token=a&b=c",
			Headers: map[string]string{"Authorization": "Bearer x"},
		},
	}}

	out, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(string(out), `&`) {
		t.Errorf("Encode should not HTML-escape URLs:\n%s", out)
	}

	back, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(back.MCPServers) != 2 {
		t.Fatalf("round trip lost servers: %d", len(back.MCPServers))
	}
	if back.MCPServers["stream"].URL != cfg.MCPServers["stream"].URL {
		t.Errorf("url changed across round trip: %s", back.MCPServers["stream"].URL)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{MCPServers: map[string]*ServerSpec{
		"ok":  {Command: "uvx", Args: []string{"mcp-server-time"}},
		"bad": {Type: TransportSSE},
	}}

	err := cfg.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Server != "bad" {
		t.Errorf("error should name the offending server, got %q", verr.Server)
	}
}

func TestConfigCloneIsDeep(t *testing.T) {
	cfg := &Config{MCPServers: map[string]*ServerSpec{
		"time": {Command: "uvx", Args: []string{"mcp-server-time"}},
	}}

	clone := cfg.Clone()
	clone.MCPServers["time"].Command = "changed"
	clone.MCPServers["extra"] = &ServerSpec{Command: "x", Args: []string{"y"}}

	if cfg.MCPServers["time"].Command != "uvx" {
		t.Error("clone shares specs with original")
	}
	if len(cfg.MCPServers) != 1 {
		t.Error("clone shares the server map with original")
	}
}

func TestExample(t *testing.T) {
	cfg := Example()

	if len(cfg.MCPServers) != 1 {
		t.Fatalf("example should hold exactly one server, got %d", len(cfg.MCPServers))
	}
	spec, ok := cfg.MCPServers["time"]
	if !ok {
		t.Fatal("example should contain a server named time")
	}
	if spec.Transport() != TransportStdio {
		t.Errorf("example server should be stdio, got %s", spec.Transport())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("bundled example must validate: %v", err)
	}
}

func TestSortedNames(t *testing.T) {
	servers := map[string]*ServerSpec{
		"zeta": {}, "alpha": {}, "mid": {},
	}
	got := SortedNames(servers)
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedNames() = %v, want %v", got, want)
		}
	}
}

func TestConfigUnmarshalMissingKeyIsEmpty(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{"other": 1}`), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !cfg.Empty() {
		t.Error("config without mcpServers should unmarshal empty")
	}
}
