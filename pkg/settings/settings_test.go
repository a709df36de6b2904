package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStateDir(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected func() string
	}{
		{
			name: "MCPOCTL_HOME takes precedence",
			env: map[string]string{
				"MCPOCTL_HOME":    "/custom/mcpoctl",
				"XDG_CONFIG_HOME": "/xdg/config",
			},
			expected: func() string { return "/custom/mcpoctl" },
		},
		{
			name: "XDG_CONFIG_HOME when MCPOCTL_HOME unset",
			env: map[string]string{
				"MCPOCTL_HOME":    "",
				"XDG_CONFIG_HOME": "/xdg/config",
			},
			expected: func() string { return "/xdg/config/mcpoctl" },
		},
		{
			name: "falls back to home directory",
			env: map[string]string{
				"MCPOCTL_HOME":    "",
				"XDG_CONFIG_HOME": "",
			},
			expected: func() string {
				home, err := os.UserHomeDir()
				if err != nil {
					return ".mcpoctl"
				}
				return filepath.Join(home, ".config", "mcpoctl")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := StateDir(); got != tt.expected() {
				t.Errorf("StateDir() = %q, want %q", got, tt.expected())
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Setenv("MCPO_CONFIG_FILE", "")
	if got := ConfigFile(); got != DefaultConfigFile {
		t.Errorf("ConfigFile() = %q, want %q", got, DefaultConfigFile)
	}

	t.Setenv("MCPO_CONFIG_FILE", "/data/servers.json")
	if got := ConfigFile(); got != "/data/servers.json" {
		t.Errorf("ConfigFile() = %q", got)
	}
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "default port",
			env:  map[string]string{"MCPO_BASE_URL": "", "MCPO_PORT": ""},
			want: "http://localhost:8000",
		},
		{
			name: "custom port",
			env:  map[string]string{"MCPO_BASE_URL": "", "MCPO_PORT": "9100"},
			want: "http://localhost:9100",
		},
		{
			name: "explicit base url wins",
			env:  map[string]string{"MCPO_BASE_URL": "https://gw.example.com", "MCPO_PORT": "9100"},
			want: "https://gw.example.com",
		},
		{
			name: "trailing slash stripped",
			env:  map[string]string{"MCPO_BASE_URL": "https://gw.example.com/", "MCPO_PORT": ""},
			want: "https://gw.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if got := BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDraftPathOutsideWatchedTree(t *testing.T) {
	t.Setenv("MCPOCTL_HOME", "/state/mcpoctl")
	t.Setenv("MCPO_CONFIG_FILE", "/config/config.json")

	draft := DraftPath()
	watched := filepath.Dir(ConfigFile())
	if filepath.Dir(draft) == watched {
		t.Errorf("draft %s must not live in the watched directory %s", draft, watched)
	}
}

func TestLoadFromDefaults(t *testing.T) {
	s := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if s != Default() {
		t.Errorf("missing settings file should yield defaults, got %+v", s)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	content := "gracePeriod: 30s\nkeepBackups: 7\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := LoadFrom(path)
	if s.GracePeriod != 30*time.Second {
		t.Errorf("GracePeriod = %v, want 30s", s.GracePeriod)
	}
	if s.KeepBackups != 7 {
		t.Errorf("KeepBackups = %d, want 7", s.KeepBackups)
	}
	// Untouched fields keep their defaults.
	if s.PollInterval != Default().PollInterval {
		t.Errorf("PollInterval = %v, want default %v", s.PollInterval, Default().PollInterval)
	}
}

func TestLoadFromMalformedFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if s := LoadFrom(path); s != Default() {
		t.Errorf("malformed settings should fall back to defaults, got %+v", s)
	}
}
