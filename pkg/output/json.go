package output

import (
	"encoding/json"
	"io"
	"os"
)

// CLIOutput represents a structured output for machine-parseable JSON responses
type CLIOutput struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSONWriter handles JSON output for CLI commands
type JSONWriter struct {
	Out io.Writer
}

// NewJSONWriter creates a new JSON writer that outputs to stdout
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{Out: os.Stdout}
}

// Write outputs a CLIOutput as JSON
func (w *JSONWriter) Write(output CLIOutput) error {
	encoder := json.NewEncoder(w.Out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// WriteSuccess outputs a successful result as JSON
func (w *JSONWriter) WriteSuccess(data interface{}) error {
	return w.Write(CLIOutput{
		Success: true,
		Data:    data,
	})
}

// WriteError outputs an error as JSON
func (w *JSONWriter) WriteError(err error) error {
	return w.Write(CLIOutput{
		Success: false,
		Error:   err.Error(),
	})
}

// JSON output types for specific commands

// ServerInfo represents one configured server in JSON output
type ServerInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Summary    string `json:"summary"`
	Staged     bool   `json:"staged,omitempty"`
	DocsURL    string `json:"docsUrl"`
	OpenAPIURL string `json:"openapiUrl"`
}

// ListOutput represents the JSON output for the list command
type ListOutput struct {
	ConfigPath string       `json:"configPath"`
	DraftPath  string       `json:"draftPath,omitempty"`
	HasDraft   bool         `json:"hasDraft"`
	Servers    []ServerInfo `json:"servers"`
}

// DiffOutput represents the JSON output for the diff command
type DiffOutput struct {
	HasDraft             bool     `json:"hasDraft"`
	HasDivergence        bool     `json:"hasDivergence"`
	DraftFingerprint     string   `json:"draftFingerprint,omitempty"`
	CanonicalFingerprint string   `json:"canonicalFingerprint"`
	Added                []string `json:"added,omitempty"`
	Removed              []string `json:"removed,omitempty"`
	Changed              []string `json:"changed,omitempty"`
}

// StatusOutput represents the JSON output for the status command
type StatusOutput struct {
	State    string `json:"state"`
	Detail   string `json:"detail,omitempty"`
	Phase    string `json:"phase"`
	ProbeURL string `json:"probeUrl"`
}

// DeployOutput represents the JSON output for deploy/restart commands
type DeployOutput struct {
	ConfigPath string `json:"configPath"`
	Servers    int    `json:"servers,omitempty"`
	Restarting bool   `json:"restarting"`
}
