// Package main provides the homolog command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "homolog",
		Short:         "Search protein families against annotated genomes",
		Long:          "homolog extracts proteomes from annotated genome assemblies and classifies\nprotein family homologs found by sequence similarity search.",
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newSearchCmd(&verbose))
	cmd.AddCommand(newExtractCmd(&verbose))
	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newSummarizeCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// newLogger builds a console logger for command progress output.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// defaultConfigPath is where settings live unless --config overrides it.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".homolog.yaml"
	}
	return filepath.Join(home, ".homolog.yaml")
}
