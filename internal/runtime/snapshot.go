// Package runtime prepares resolved configuration snapshots and owns the
// process-wide activation slot the rest of the application reads through.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/szaher/agentden/internal/authstore"
	"github.com/szaher/agentden/internal/config"
	"github.com/szaher/agentden/internal/secrets"
	"github.com/szaher/agentden/internal/telemetry"
)

// AgentAuthStore pairs an agent directory with its resolved credential
// store.
type AgentAuthStore struct {
	AgentDir string
	Store    *authstore.Store
}

// Snapshot is an immutable, fully resolved view of the gateway
// configuration and every agent's credential store. Readers may share a
// snapshot freely without synchronization once it is published.
//
// The ID is a ULID used for log correlation only; it is not part of the
// snapshot's resolved content and differs between otherwise identical
// preparations.
type Snapshot struct {
	ID         string
	Config     *config.Config
	AuthStores []AgentAuthStore
	Warnings   []string
}

// AuthStore returns the resolved store for agentDir.
func (s *Snapshot) AuthStore(agentDir string) (*authstore.Store, bool) {
	for _, as := range s.AuthStores {
		if as.AgentDir == agentDir {
			return as.Store, true
		}
	}
	return nil, false
}

// PrepareOptions carries the inputs of one preparation call.
type PrepareOptions struct {
	// Config is the schema-valid raw configuration. Never mutated.
	Config *config.Config

	// Env is the resolution environment. Supply secrets.EnvMap() at the
	// process edge; tests pass fixed maps.
	Env map[string]string

	// AgentDirs lists the agent working directories whose credential
	// stores join the snapshot. Warning order follows this order.
	AgentDirs []string

	// LoadAuthStore obtains each agent's persisted store.
	// Defaults to authstore.FileLoader.
	LoadAuthStore authstore.Loader

	// Track, when set, receives every resolved plaintext value; wire it to
	// RedactHandler.AddSecret so resolved secrets never reach log output.
	Track func(value string)

	Logger *slog.Logger
}

// Prepare resolves every manifest slot of the configuration and every
// reference in every agent's credential store into one snapshot. It is
// all-or-nothing: any failing slot or profile aborts the call and no
// partial snapshot is returned. Identical inputs yield identical resolved
// content and warning order.
func Prepare(ctx context.Context, opts PrepareOptions) (*Snapshot, error) {
	if opts.Config == nil {
		return nil, errors.New("prepare: nil config")
	}
	loader := opts.LoadAuthStore
	if loader == nil {
		loader = authstore.FileLoader
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	snap, err := prepare(ctx, opts, loader)
	if err != nil {
		telemetry.SnapshotPreparations.WithLabelValues("error").Inc()
		return nil, err
	}
	telemetry.SnapshotPreparations.WithLabelValues("ok").Inc()
	telemetry.SnapshotWarnings.Add(float64(len(snap.Warnings)))

	logger.Info("snapshot prepared",
		"snapshot_id", snap.ID,
		"agents", len(snap.AuthStores),
		"warnings", len(snap.Warnings))
	return snap, nil
}

func prepare(ctx context.Context, opts PrepareOptions, loader authstore.Loader) (*Snapshot, error) {
	reg := secrets.NewRegistry(opts.Env, opts.Config.Secrets.Providers, opts.Config.Secrets.Defaults)
	if opts.Track != nil {
		reg.SetTracker(opts.Track)
	}

	resolvedCfg, err := config.ResolveSecrets(opts.Config, reg)
	if err != nil {
		return nil, err
	}

	// Per-agent stores have no ordering dependency on one another; resolve
	// them concurrently, slotted by input position so warning order always
	// follows the supplied directory order.
	stores := make([]AgentAuthStore, len(opts.AgentDirs))
	warnings := make([][]string, len(opts.AgentDirs))

	g, gctx := errgroup.WithContext(ctx)
	for i, dir := range opts.AgentDirs {
		i, dir := i, dir
		g.Go(func() error {
			raw, err := loader(gctx, dir)
			if err != nil {
				return fmt.Errorf("loading auth store for %s: %w", dir, err)
			}
			resolved, warns, err := authstore.Resolve(raw, reg)
			if err != nil {
				return fmt.Errorf("agent %s: %w", dir, err)
			}
			stores[i] = AgentAuthStore{AgentDir: dir, Store: resolved}
			warnings[i] = warns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:         ulid.Make().String(),
		Config:     resolvedCfg,
		AuthStores: stores,
	}
	for _, warns := range warnings {
		snap.Warnings = append(snap.Warnings, warns...)
	}
	return snap, nil
}
