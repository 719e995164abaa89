package authstore

import (
	"fmt"
	"sort"

	"github.com/szaher/agentden/internal/secrets"
)

// Resolve returns a copy of store with every profile's reference fields
// resolved to plain values. The input store is never mutated and nothing is
// written back to disk; the returned warnings flag profiles whose on-disk
// plaintext was superseded by a freshly resolved value (a data-hygiene
// signal for operators, not an error).
func Resolve(store *Store, reg *secrets.Registry) (*Store, []string, error) {
	out := &Store{Version: store.Version}
	if store.Profiles == nil {
		return out, nil, nil
	}

	out.Profiles = make(map[string]Profile, len(store.Profiles))
	var warnings []string
	for _, id := range sortedProfileIDs(store.Profiles) {
		profile, warns, err := resolveProfile(id, store.Profiles[id], reg)
		if err != nil {
			return nil, nil, err
		}
		out.Profiles[id] = profile
		warnings = append(warnings, warns...)
	}
	return out, warnings, nil
}

func resolveProfile(id string, p Profile, reg *secrets.Registry) (Profile, []string, error) {
	var warnings []string

	key, warn, err := resolveField(id, "key", p.Key, p.KeyRef, reg)
	if err != nil {
		return Profile{}, nil, err
	}
	if warn != "" {
		warnings = append(warnings, warn)
	}

	token, warn, err := resolveField(id, "token", p.Token, p.TokenRef, reg)
	if err != nil {
		return Profile{}, nil, err
	}
	if warn != "" {
		warnings = append(warnings, warn)
	}

	p.Key, p.Token = key, token
	// References are consumed: the snapshot copy holds plain values only.
	p.KeyRef, p.TokenRef = nil, nil
	return p, warnings, nil
}

// resolveField funnels both reference encodings through one registry
// lookup: a structured ref wins; otherwise a literal that is exactly
// ${VAR} resolves as an env lookup. Anything else passes through silently.
func resolveField(profileID, field, literal string, ref *secrets.Ref, reg *secrets.Registry) (value, warning string, err error) {
	use := ref
	inline := false
	if use == nil {
		if r, ok := secrets.ParseInline(literal); ok {
			use = &r
			inline = true
		}
	}
	if use == nil {
		return literal, "", nil
	}

	resolved, err := reg.Resolve(*use)
	if err != nil {
		return "", "", fmt.Errorf("auth profile %q %s: %w", profileID, field, err)
	}

	// Warn when a previously stored literal is superseded: the on-disk store
	// still carries the stale plaintext even though the snapshot now holds
	// the resolved value.
	if !inline && literal != "" {
		if _, placeholder := secrets.ParseInline(literal); !placeholder {
			warning = fmt.Sprintf("auth profile %q: stored %s superseded by resolved reference; remove the stale plaintext from the store", profileID, field)
		}
	}
	return resolved, warning, nil
}

func sortedProfileIDs(profiles map[string]Profile) []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
