// Package secrets resolves indirect secret references against pluggable
// backends: the environment (always available) and configured secrets files.
// Resolution is deterministic — the environment is a supplied map, never the
// live process environment — and plaintext values never appear in errors.
package secrets

import (
	"os"
	"regexp"
	"strings"
)

// Source identifies the backend kind a reference resolves against.
type Source string

const (
	SourceEnv  Source = "env"
	SourceFile Source = "file"
)

// DefaultProvider is the implicit provider name for sources that need no
// configuration (currently only env).
const DefaultProvider = "default"

// Ref is an indirect secret value embedded in configuration or an auth
// profile in place of a literal string. For env refs, ID is the variable
// name. For file refs, ID is a slash-delimited path into the provider's
// JSON payload (ignored in text mode).
type Ref struct {
	Source   Source `json:"source"`
	Provider string `json:"provider,omitempty"`
	ID       string `json:"id"`
}

var inlinePattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// ParseInline reports whether s is an inline ${VAR} placeholder and, if so,
// returns the equivalent env reference. Both encodings funnel through the
// same registry lookup.
func ParseInline(s string) (Ref, bool) {
	m := inlinePattern.FindStringSubmatch(s)
	if m == nil {
		return Ref{}, false
	}
	return Ref{Source: SourceEnv, Provider: DefaultProvider, ID: m[1]}, true
}

// EnvMap snapshots the process environment into the map form the registry
// consumes. Call once at the process edge; tests build their own maps.
func EnvMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
