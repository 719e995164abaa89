package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Load reads a gateway configuration file. YAML and JSON are both
// accepted; the document is converted to JSON before decoding so the
// SecretValue unmarshaler sees both encodings identically.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}
