package secrets

import "fmt"

// MissingEnvVarError reports an env reference whose variable is absent from
// the resolution environment.
type MissingEnvVarError struct {
	Var string
}

func (e *MissingEnvVarError) Error() string {
	return fmt.Sprintf("environment variable %q not set", e.Var)
}

// UnknownProviderError reports a file reference naming a provider that is
// not declared under secrets.providers.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	if e.Name == "" {
		return "no file secret provider declared and no default configured"
	}
	return fmt.Sprintf("secret provider %q is not declared", e.Name)
}

// InvalidFilePayloadError reports a json-mode secrets file whose top level
// is not a JSON object.
type InvalidFilePayloadError struct {
	Path string
}

func (e *InvalidFilePayloadError) Error() string {
	return fmt.Sprintf("secrets file %s: payload is not a JSON object", e.Path)
}

// MissingFileKeyError reports a json-mode lookup path with an absent segment
// or a non-object en route.
type MissingFileKeyError struct {
	Path string
	Key  string
}

func (e *MissingFileKeyError) Error() string {
	return fmt.Sprintf("secrets file %s: key %q not found", e.Path, e.Key)
}
