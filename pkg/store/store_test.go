package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcpotools/mcpoctl/pkg/diff"
	"github.com/mcpotools/mcpoctl/pkg/gateway"
)

func TestConfigStoreLoadMissingFileSeedsExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewConfigStore(path, 3)

	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.MCPServers) != 1 {
		t.Fatalf("got %d servers, want 1", len(cfg.MCPServers))
	}
	spec, ok := cfg.MCPServers["time"]
	if !ok {
		t.Fatal("healed config should contain a server named time")
	}
	if spec.Transport() != gateway.TransportStdio {
		t.Errorf("healed server should be stdio, got %s", spec.Transport())
	}

	// The example must have been persisted, and a second load must see
	// exactly the same content.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("canonical file not persisted: %v", err)
	}
	onDisk, err := gateway.Parse(data)
	if err != nil {
		t.Fatalf("persisted config unparsable: %v", err)
	}
	if !diff.Equal(cfg, onDisk) {
		t.Error("persisted config differs from returned one")
	}

	again, err := s.Load()
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if !diff.Equal(cfg, again) {
		t.Error("second load should be idempotent")
	}
}

func TestConfigStoreLoadRepairsEmptyMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"mcpServers": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewConfigStore(path, 3)
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Empty() {
		t.Fatal("empty mapping should be repaired")
	}
	if _, ok := cfg.MCPServers["time"]; !ok {
		t.Error("repaired config should hold the example time server")
	}

	data, _ := os.ReadFile(path)
	onDisk, err := gateway.Parse(data)
	if err != nil {
		t.Fatalf("persisted config unparsable: %v", err)
	}
	if onDisk.Empty() {
		t.Error("repair was not persisted")
	}
}

func TestConfigStoreLoadHealsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{{{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewConfigStore(path, 3)
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Empty() {
		t.Fatal("corrupt canonical should heal to the example")
	}

	data, _ := os.ReadFile(path)
	if _, err := gateway.Parse(data); err != nil {
		t.Errorf("healed file should parse: %v", err)
	}
}

func TestConfigStoreLoadRepairsMissingServersKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"somethingElse": 1}`), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewConfigStore(path, 3)
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := cfg.MCPServers["time"]; !ok {
		t.Error("config without mcpServers key should gain the example servers")
	}
	// Only the mapping is repaired; preserved top-level keys survive.
	if string(cfg.Extra["somethingElse"]) != "1" {
		t.Errorf("top-level extra key dropped by repair: %v", cfg.Extra)
	}

	data, _ := os.ReadFile(path)
	onDisk, err := gateway.Parse(data)
	if err != nil {
		t.Fatalf("persisted config unparsable: %v", err)
	}
	if string(onDisk.Extra["somethingElse"]) != "1" {
		t.Errorf("persisted config lost the extra key:\n%s", data)
	}
	if onDisk.Empty() {
		t.Error("repair was not persisted")
	}
}

func TestConfigStoreLoadKeepsValidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"mcpServers": {"memory": {"command": "npx", "args": ["-y", "@modelcontextprotocol/server-memory"]}}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewConfigStore(path, 3)
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := cfg.MCPServers["memory"]; !ok {
		t.Error("valid config should load as-is")
	}
	if _, ok := cfg.MCPServers["time"]; ok {
		t.Error("valid config must not be polluted with example servers")
	}
}

func TestConfigStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewConfigStore(path, 3)

	cfg := &gateway.Config{MCPServers: map[string]*gateway.ServerSpec{
		"time":   {Command: "uvx", Args: []string{"mcp-server-time"}},
		"events": {Type: gateway.TransportSSE, URL: "http://127.0.0.1:8001/sse"},
	}}
	if err := s.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !diff.Equal(cfg, loaded) {
		t.Error("loaded config fingerprint differs from the saved one")
	}
}

func TestConfigStoreSaveCreatesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewConfigStore(path, 3)

	cfg := gateway.Example()
	if err := s.Save(cfg); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if err := s.Save(cfg); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	backups, err := s.Backups()
	if err != nil {
		t.Fatalf("Backups() error = %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1", len(backups))
	}
}

func TestConfigStoreModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewConfigStore(path, 3)

	if !s.ModTime().IsZero() {
		t.Error("missing file should report the zero mtime")
	}

	if err := s.Save(gateway.Example()); err != nil {
		t.Fatal(err)
	}
	if s.ModTime().IsZero() {
		t.Error("existing file should report a real mtime")
	}
}

func TestDraftStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	s := NewDraftStore(path)

	if got := s.Load(); got != nil {
		t.Fatalf("absent draft should load nil, got %+v", got)
	}

	cfg := &gateway.Config{MCPServers: map[string]*gateway.ServerSpec{
		"time": {Command: "uvx", Args: []string{"mcp-server-time"}},
	}}
	if err := s.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := s.Load()
	if got == nil {
		t.Fatal("saved draft should load")
	}
	if !diff.Equal(cfg, got) {
		t.Error("draft changed across round trip")
	}
}

func TestDraftStoreCorruptLoadsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	if err := os.WriteFile(path, []byte("][not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := NewDraftStore(path).Load(); got != nil {
		t.Errorf("corrupt draft should load nil, got %+v", got)
	}
}

func TestDraftStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")
	s := NewDraftStore(path)

	// Clearing an absent draft is a no-op.
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() on absent draft: %v", err)
	}

	if err := s.Save(gateway.Example()); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("draft file should be gone after Clear")
	}
}
