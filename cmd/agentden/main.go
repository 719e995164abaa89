// Package main is the entry point for the agentden CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var version = "0.1.0"

// Global flags.
var (
	configPath string
	verbose    bool
)

const defaultConfigFile = "agentden.yaml"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agentden",
		Short: "Multi-agent gateway configuration and secrets runtime",
		Long: `agentden resolves the secret references embedded in a gateway
configuration and in per-agent credential stores into one immutable
runtime snapshot, and activates it for the rest of the process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigFile, "Path to gateway configuration")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCheckCmd())

	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
