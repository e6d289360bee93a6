package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/genomekit/homolog/internal/duckdb"
)

func newSummarizeCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize accumulated results across genomes and families",
		Long: `Aggregate the best-hit results stored by previous searches into per-genome
and per-family summaries with tier counts and hit rates.`,
		Example: `  homolog summarize --db results/homolog.duckdb`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB database with accumulated results")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runSummarize(dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("database %s not found: %w", dbPath, err)
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	genomes, err := store.GenomePerformance()
	if err != nil {
		return err
	}
	families, err := store.FamilySummary()
	if err != nil {
		return err
	}

	fmt.Println("Per-genome performance:")
	printSummary(genomes, "GENOME")
	fmt.Println()
	fmt.Println("Per-family summary:")
	printSummary(families, "FAMILY")

	return nil
}

func printSummary(rows []duckdb.SummaryRow, groupHeader string) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tQUERIES\tHITS\tVERY_HIGH\tHIGH\tMEDIUM\tLOW\tNOT_FOUND\tAVG_IDENT\tHIT_RATE\n", groupHeader)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.1f\t%.1f%%\n",
			r.Group, r.TotalQueries, r.TotalHits,
			r.VeryHigh, r.High, r.Medium, r.Low, r.NotFound,
			r.AvgIdentity, r.HitRate)
	}
	w.Flush()
}
