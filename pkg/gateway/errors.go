package gateway

// ValidationError reports structurally valid JSON that doesn't describe
// a usable configuration: a missing mcpServers key, or a server entry
// missing a variant-required field. It is never auto-repaired; doing
// so would silently discard operator input.
type ValidationError struct {
	Server string // offending server name, if any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Server != "" {
		return "invalid server " + e.Server + ": " + e.Reason
	}
	return "invalid config: " + e.Reason
}

// ParseError wraps malformed JSON from an operator-submitted edit.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "invalid JSON: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }
