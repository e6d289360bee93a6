package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genomekit/homolog/internal/config"
	"github.com/genomekit/homolog/internal/duckdb"
	"github.com/genomekit/homolog/internal/pipeline"
)

func newSearchCmd(verbose *bool) *cobra.Command {
	var (
		configPath string
		dbPath     string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a full homology search from a settings file",
		Long: `Extract the proteome from the configured genome, build a protein database,
search the configured protein family against it, and write the classified
best-hit table.`,
		Example: `  homolog search --config settings.yaml
  homolog search --config settings.yaml --db results/homolog.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, configPath, dbPath, *verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "settings YAML file")
	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB database for accumulated results (optional)")

	return cmd
}

func runSearch(cmd *cobra.Command, configPath, dbPath string, verbose bool) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	p := pipeline.New(settings)
	p.SetLogger(logger)

	if dbPath != "" {
		store, err := duckdb.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		p.Store = store
	}

	res, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := res.Stats.WriteReport(os.Stderr); err != nil {
		return err
	}
	fmt.Printf("Best hits written to %s\n", res.BestHitsPath)
	return nil
}
