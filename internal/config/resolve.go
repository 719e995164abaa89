package config

import (
	"encoding/json"
	"fmt"

	"github.com/szaher/agentden/internal/secrets"
)

// ResolveSecrets returns a structural copy of cfg in which every manifest
// slot holds a plain string. Slots already holding literals pass through
// unchanged; cfg itself is never mutated. Resolution is all-or-nothing: the
// first failing slot aborts with an error naming it, and no half-resolved
// configuration is ever returned — downstream code could not tell "not
// configured" from "failed to resolve".
func ResolveSecrets(cfg *Config, reg *secrets.Registry) (*Config, error) {
	resolved, err := cloneConfig(cfg)
	if err != nil {
		return nil, err
	}

	for _, s := range secretSlots(resolved) {
		if s.value.Ref == nil {
			continue
		}
		plain, err := reg.Resolve(*s.value.Ref)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", s.path, err)
		}
		*s.value = SecretValue{Literal: plain}
	}
	return resolved, nil
}

// cloneConfig deep-copies via a JSON round trip. SecretValue marshals back
// to its reference form, so the copy is faithful for unresolved slots.
func cloneConfig(cfg *Config) (*Config, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("copying config: %w", err)
	}
	var out Config
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("copying config: %w", err)
	}
	return &out, nil
}
