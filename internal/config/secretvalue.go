package config

import (
	"encoding/json"
	"fmt"

	"github.com/szaher/agentden/internal/secrets"
)

// SecretValue is a configuration field that holds either a literal string
// or a secret reference awaiting resolution. After ResolveSecrets only the
// literal remains; the reference is not recoverable from a snapshot.
type SecretValue struct {
	Literal string
	Ref     *secrets.Ref
}

// Value returns the plain string. It is empty while an unresolved reference
// is still attached.
func (v *SecretValue) Value() string {
	if v == nil {
		return ""
	}
	return v.Literal
}

// UnmarshalJSON accepts either a JSON string (literal) or a reference
// object {"source": ..., "provider": ..., "id": ...}.
func (v *SecretValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = SecretValue{Literal: s}
		return nil
	}

	var ref secrets.Ref
	if err := json.Unmarshal(data, &ref); err != nil {
		return fmt.Errorf("secret value must be a string or a reference object: %w", err)
	}
	switch ref.Source {
	case secrets.SourceEnv, secrets.SourceFile:
	default:
		return fmt.Errorf("secret reference has unsupported source %q", ref.Source)
	}
	if ref.ID == "" && ref.Source == secrets.SourceEnv {
		return fmt.Errorf("env secret reference is missing an id")
	}
	*v = SecretValue{Ref: &ref}
	return nil
}

// MarshalJSON writes the reference form while one is attached, so a
// structural copy of an unresolved configuration stays faithful.
func (v SecretValue) MarshalJSON() ([]byte, error) {
	if v.Ref != nil {
		return json.Marshal(v.Ref)
	}
	return json.Marshal(v.Literal)
}
