package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/szaher/agentden/internal/config"
	"github.com/szaher/agentden/internal/runtime"
	"github.com/szaher/agentden/internal/secrets"
	"github.com/szaher/agentden/internal/telemetry"
)

func newCheckCmd() *cobra.Command {
	var agentDirs []string
	var watch bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve all secret references and report store hygiene warnings",
		Long: `Check loads the gateway configuration, resolves every secret
reference in it and in each agent's credential store, and reports
plaintext-overwrite warnings. With --watch it activates the snapshot and
re-prepares on every configuration change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger, redact := telemetry.NewLogger(os.Stderr, level)

			prepare := func(ctx context.Context) (*runtime.Snapshot, error) {
				cfg, err := config.Load(configPath)
				if err != nil {
					return nil, err
				}
				dirs := agentDirs
				if len(dirs) == 0 {
					dirs = cfg.AgentDirs()
				}
				return runtime.Prepare(ctx, runtime.PrepareOptions{
					Config:    cfg,
					Env:       secrets.EnvMap(),
					AgentDirs: dirs,
					Track:     redact.AddSecret,
					Logger:    logger,
				})
			}

			snap, err := prepare(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, w := range snap.Warnings {
				fmt.Fprintf(out, "warning: %s\n", redact.Scrub(w))
			}
			fmt.Fprintf(out, "ok: %d secret slots, %d agent stores, %d warnings\n",
				len(config.SecretSlotPaths(snap.Config)), len(snap.AuthStores), len(snap.Warnings))

			if !watch {
				return nil
			}

			runtime.Activate(snap)
			defer runtime.Clear()
			watcher, err := runtime.NewWatcher(configPath, prepare, logger)
			if err != nil {
				return err
			}
			return watcher.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVar(&agentDirs, "agent-dir", nil, "Agent directory to include (default: from config; repeatable)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Activate the snapshot and re-prepare on config changes")

	return cmd
}
