package gateway

import "strings"

// Each configured server is mounted by mcpo under its own path segment.
// These helpers derive the browser-facing URLs shown in list output.

// DocsURL returns the interactive API documentation URL for a server.
func DocsURL(baseURL, name string) string {
	return joinURL(baseURL, name, "docs")
}

// OpenAPIURL returns the OpenAPI schema URL for a server.
func OpenAPIURL(baseURL, name string) string {
	return joinURL(baseURL, name, "openapi.json")
}

func joinURL(base string, segments ...string) string {
	out := strings.TrimRight(base, "/")
	for _, seg := range segments {
		out += "/" + strings.Trim(seg, "/")
	}
	return out
}
