// Package authstore loads per-agent credential profile stores and merges
// them with resolved secret references. Stores are read-only here: nothing
// in this package ever writes a store file, and agents without a store on
// disk never gain one as a side effect.
package authstore

import (
	"context"

	"github.com/szaher/agentden/internal/secrets"
)

// ProfileType distinguishes the credential kinds a profile can hold.
type ProfileType string

const (
	ProfileTypeAPIKey ProfileType = "api_key"
	ProfileTypeToken  ProfileType = "token"
)

// Profile is one stored credential. A *Ref field, when present, takes
// precedence over the stored literal: resolution overwrites the literal in
// the in-memory copy. Literals whose entire value is ${VAR} are legacy
// inline placeholders resolved as env lookups.
type Profile struct {
	Type     ProfileType  `json:"type"`
	Provider string       `json:"provider"`
	Key      string       `json:"key,omitempty"`
	Token    string       `json:"token,omitempty"`
	KeyRef   *secrets.Ref `json:"keyRef,omitempty"`
	TokenRef *secrets.Ref `json:"tokenRef,omitempty"`
}

// Store is one agent's persisted profile collection, keyed
// "<provider>:<profileId>".
type Store struct {
	Version  int                `json:"version"`
	Profiles map[string]Profile `json:"profiles,omitempty"`
}

// Loader obtains the persisted store for one agent directory. Storage
// errors propagate to the caller verbatim. Implementations must not create
// or modify files.
type Loader func(ctx context.Context, agentDir string) (*Store, error)
