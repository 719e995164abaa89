package secrets

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

const redactedPlaceholder = "***REDACTED***"

// redactState is shared across handler clones produced by WithAttrs and
// WithGroup, so a value registered on any clone is scrubbed by all of them.
type redactState struct {
	mu       sync.RWMutex
	values   map[string]struct{}
	replacer *strings.Replacer // rebuilt lazily after AddSecret
}

func (s *redactState) add(value string) {
	if value == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[value]; ok {
		return
	}
	s.values[value] = struct{}{}
	s.replacer = nil
}

func (s *redactState) scrub(in string) string {
	s.mu.RLock()
	rep := s.replacer
	empty := len(s.values) == 0
	s.mu.RUnlock()
	if empty {
		return in
	}
	if rep == nil {
		rep = s.rebuild()
	}
	return rep.Replace(in)
}

func (s *redactState) rebuild() *strings.Replacer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replacer == nil {
		pairs := make([]string, 0, 2*len(s.values))
		for v := range s.values {
			pairs = append(pairs, v, redactedPlaceholder)
		}
		s.replacer = strings.NewReplacer(pairs...)
	}
	return s.replacer
}

// RedactHandler is a slog.Handler that scrubs registered secret values from
// message text and string attributes before delegating to the wrapped
// handler. The snapshot preparer registers every resolved value here via
// the registry tracker.
type RedactHandler struct {
	inner slog.Handler
	state *redactState
}

// NewRedactHandler wraps inner with secret-value redaction.
func NewRedactHandler(inner slog.Handler) *RedactHandler {
	return &RedactHandler{
		inner: inner,
		state: &redactState{values: make(map[string]struct{})},
	}
}

// AddSecret registers a value to be scrubbed from all future log output.
func (h *RedactHandler) AddSecret(value string) {
	h.state.add(value)
}

// Scrub replaces registered secret values in s with a placeholder. Useful
// for non-slog output paths (CLI diagnostics).
func (h *RedactHandler) Scrub(s string) string {
	return h.state.scrub(s)
}

func (h *RedactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RedactHandler) Handle(ctx context.Context, record slog.Record) error {
	out := slog.NewRecord(record.Time, record.Level, h.state.scrub(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.scrubAttr(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

func (h *RedactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	scrubbed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		scrubbed[i] = h.scrubAttr(a)
	}
	return &RedactHandler{inner: h.inner.WithAttrs(scrubbed), state: h.state}
}

func (h *RedactHandler) WithGroup(name string) slog.Handler {
	return &RedactHandler{inner: h.inner.WithGroup(name), state: h.state}
}

func (h *RedactHandler) scrubAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, h.state.scrub(a.Value.String()))
	}
	return a
}
