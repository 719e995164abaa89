package authstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// StoreFileName is the per-agent store file read by FileLoader.
const StoreFileName = "auth-profiles.json"

// FileLoader reads <agentDir>/auth-profiles.json. A missing file yields an
// empty store, not an error — a worker agent inheriting its configuration
// from another agent simply has no store of its own.
func FileLoader(_ context.Context, agentDir string) (*Store, error) {
	path := filepath.Join(agentDir, StoreFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Store{Version: 1}, nil
		}
		return nil, err
	}

	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}
