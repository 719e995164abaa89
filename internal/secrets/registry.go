package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// FileMode selects how a file provider's payload is interpreted.
type FileMode string

const (
	// FileModeJSON parses the payload as a JSON object and resolves the
	// reference ID as a slash-delimited path into it.
	FileModeJSON FileMode = "json"

	// FileModeText returns the whole trimmed payload regardless of ID.
	FileModeText FileMode = "text"
)

// ProviderSpec declares one configured file provider
// (secrets.providers.<name> in the gateway configuration).
type ProviderSpec struct {
	Source Source   `json:"source"`
	Path   string   `json:"path"`
	Mode   FileMode `json:"mode,omitempty"`
}

// Defaults names the fallback provider per source kind
// (secrets.defaults in the gateway configuration).
type Defaults struct {
	File string `json:"file,omitempty"`
}

// Registry resolves secret references for one snapshot preparation. Each
// distinct path+mode is read and parsed at most once per registry, so build
// a fresh registry per preparation to avoid serving stale file content.
// Safe for concurrent Resolve calls.
type Registry struct {
	env       map[string]string
	providers map[string]ProviderSpec
	defaults  Defaults

	mu      sync.Mutex
	cache   map[fileCacheKey]*filePayload
	tracker func(value string)
}

type fileCacheKey struct {
	path string
	mode FileMode
}

type filePayload struct {
	text string
	obj  map[string]any
	err  error
}

// NewRegistry builds a registry over a fixed resolution environment and the
// declared file providers.
func NewRegistry(env map[string]string, providers map[string]ProviderSpec, defaults Defaults) *Registry {
	return &Registry{
		env:       env,
		providers: providers,
		defaults:  defaults,
		cache:     make(map[fileCacheKey]*filePayload),
	}
}

// SetTracker registers a callback invoked with every successfully resolved
// value, typically RedactHandler.AddSecret so plaintext never reaches logs.
func (r *Registry) SetTracker(fn func(value string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracker = fn
}

// Resolve looks up a reference and returns the plain value. Errors name
// only identifiers (variable names, provider names, file paths), never
// resolved values.
func (r *Registry) Resolve(ref Ref) (string, error) {
	var value string
	var err error
	switch ref.Source {
	case SourceEnv:
		value, err = r.resolveEnv(ref.ID)
	case SourceFile:
		value, err = r.resolveFile(ref)
	default:
		return "", fmt.Errorf("unsupported secret source %q", ref.Source)
	}
	if err != nil {
		return "", err
	}
	r.track(value)
	return value, nil
}

func (r *Registry) track(value string) {
	r.mu.Lock()
	fn := r.tracker
	r.mu.Unlock()
	if fn != nil && value != "" {
		fn(value)
	}
}

// Empty values count as unset: an empty secret is never usable and hiding
// the misconfiguration behind "" helps nobody.
func (r *Registry) resolveEnv(name string) (string, error) {
	if v, ok := r.env[name]; ok && v != "" {
		return v, nil
	}
	return "", &MissingEnvVarError{Var: name}
}

func (r *Registry) resolveFile(ref Ref) (string, error) {
	name := ref.Provider
	if name == "" || name == DefaultProvider {
		name = r.defaults.File
	}
	spec, ok := r.providers[name]
	if !ok || spec.Source != SourceFile {
		return "", &UnknownProviderError{Name: name}
	}

	mode := spec.Mode
	if mode == "" {
		mode = FileModeJSON
	}
	payload := r.loadFile(spec.Path, mode)
	if payload.err != nil {
		return "", payload.err
	}
	if mode == FileModeText {
		return payload.text, nil
	}
	return lookupFileKey(spec.Path, payload.obj, ref.ID)
}

// loadFile reads and parses a secrets file once per path+mode. Failures are
// cached too: every slot referencing the same broken file sees one error.
func (r *Registry) loadFile(path string, mode FileMode) *filePayload {
	key := fileCacheKey{path: path, mode: mode}

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.cache[key]; ok {
		return p
	}

	p := &filePayload{}
	data, err := os.ReadFile(path)
	switch {
	case err != nil:
		p.err = fmt.Errorf("reading secrets file %s: %w", path, err)
	case mode == FileModeText:
		p.text = strings.TrimSpace(string(data))
	default:
		var root any
		if err := json.Unmarshal(data, &root); err != nil {
			p.err = fmt.Errorf("parsing secrets file %s: %w", path, err)
		} else if obj, ok := root.(map[string]any); ok {
			p.obj = obj
		} else {
			p.err = &InvalidFilePayloadError{Path: path}
		}
	}
	r.cache[key] = p
	return p
}

// lookupFileKey walks a slash-delimited path (a leading slash is optional)
// into a parsed JSON object.
func lookupFileKey(path string, obj map[string]any, id string) (string, error) {
	cur := any(obj)
	for _, seg := range strings.Split(strings.TrimPrefix(id, "/"), "/") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", &MissingFileKeyError{Path: path, Key: id}
		}
		if cur, ok = m[seg]; !ok {
			return "", &MissingFileKeyError{Path: path, Key: id}
		}
	}
	s, ok := cur.(string)
	if !ok {
		return "", fmt.Errorf("secrets file %s: key %q is not a string", path, id)
	}
	return s, nil
}
