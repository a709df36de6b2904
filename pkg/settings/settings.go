package settings

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults matching the mcpo container layout. The canonical config
// lives under /config, which is the directory the mcpo watcher
// monitors; everything mcpoctl owns (drafts, settings) must live
// elsewhere.
const (
	DefaultConfigFile = "/config/config.json"
	DefaultPort       = "8000"

	DraftFileName    = "draft.json"
	SettingsFileName = "mcpoctl.yaml"
)

// Settings holds the tool's own tunables. All fields have working
// defaults; an optional mcpoctl.yaml in the state directory overrides
// them.
type Settings struct {
	// GracePeriod is how long after a deploy the gateway is assumed to
	// be restarting before probes are trusted again.
	GracePeriod time.Duration `yaml:"gracePeriod"`
	// PollInterval is the delay between health reconciliation ticks.
	PollInterval time.Duration `yaml:"pollInterval"`
	// ProbeTimeout bounds a single liveness probe.
	ProbeTimeout time.Duration `yaml:"probeTimeout"`
	// KeepBackups is how many canonical-config backups to retain.
	KeepBackups int `yaml:"keepBackups"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		GracePeriod:  10 * time.Second,
		PollInterval: 2 * time.Second,
		ProbeTimeout: 3 * time.Second,
		KeepBackups:  3,
	}
}

// Load reads mcpoctl.yaml from the state directory if present. A
// missing or unreadable settings file just means defaults; the tool
// must keep working without one.
func Load() Settings {
	return LoadFrom(filepath.Join(StateDir(), SettingsFileName))
}

// LoadFrom loads settings from a specific path, falling back to
// defaults for any field left unset.
func LoadFrom(path string) Settings {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}

	var overrides Settings
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return s
	}

	if overrides.GracePeriod > 0 {
		s.GracePeriod = overrides.GracePeriod
	}
	if overrides.PollInterval > 0 {
		s.PollInterval = overrides.PollInterval
	}
	if overrides.ProbeTimeout > 0 {
		s.ProbeTimeout = overrides.ProbeTimeout
	}
	if overrides.KeepBackups > 0 {
		s.KeepBackups = overrides.KeepBackups
	}
	return s
}

// ConfigFile returns the canonical (watched) config path.
func ConfigFile() string {
	if path := os.Getenv("MCPO_CONFIG_FILE"); path != "" {
		return path
	}
	return DefaultConfigFile
}

// BaseURL returns the browser-facing base URL of the gateway:
// MCPO_BASE_URL if set, otherwise http://localhost:MCPO_PORT.
func BaseURL() string {
	if base := strings.TrimRight(os.Getenv("MCPO_BASE_URL"), "/"); base != "" {
		return base
	}
	port := os.Getenv("MCPO_PORT")
	if port == "" {
		port = DefaultPort
	}
	return "http://localhost:" + port
}

// StateDir returns the directory for mcpoctl's own state (draft,
// settings). This is deliberately outside the watched /config tree so
// staging a draft never restarts the gateway.
func StateDir() string {
	// Check MCPOCTL_HOME first
	if home := os.Getenv("MCPOCTL_HOME"); home != "" {
		return home
	}

	// Check XDG_CONFIG_HOME
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mcpoctl")
	}

	// Default to ~/.config/mcpoctl
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mcpoctl"
	}
	return filepath.Join(homeDir, ".config", "mcpoctl")
}

// DraftPath returns the staging file path for the draft configuration.
func DraftPath() string {
	return filepath.Join(StateDir(), DraftFileName)
}
