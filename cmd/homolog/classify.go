package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genomekit/homolog/internal/blast"
	"github.com/genomekit/homolog/internal/homology"
	"github.com/genomekit/homolog/internal/output"
	"github.com/genomekit/homolog/internal/protein"
)

func newClassifyCmd() *cobra.Command {
	var (
		queriesPath string
		outputFile  string
	)

	cmd := &cobra.Command{
		Use:   "classify <report>",
		Short: "Classify an existing tabular search report",
		Long: `Read a tabular alignment report, pick the best hit per query, assign
significance tiers, and write the best-hit table. Queries absent from the
report are reported as NOT_FOUND.`,
		Example: `  homolog classify results/blastp.tsv --queries hydrophobins.fasta -o best_hits.tsv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(args[0], queriesPath, outputFile)
		},
	}

	cmd.Flags().StringVarP(&queriesPath, "queries", "q", "", "query protein FASTA")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output table (default: stdout)")
	cmd.MarkFlagRequired("queries")

	return cmd
}

func runClassify(reportPath, queriesPath, outputFile string) error {
	report, err := blast.ParseReportFile(reportPath)
	if err != nil {
		return fmt.Errorf("parsing report: %w", err)
	}

	qf, err := os.Open(queriesPath)
	if err != nil {
		return fmt.Errorf("opening queries: %w", err)
	}
	defer qf.Close()

	records, err := protein.ReadFASTA(qf)
	if err != nil {
		return fmt.Errorf("reading queries: %w", err)
	}
	queries := make([]homology.Query, 0, len(records))
	for _, rec := range records {
		queries = append(queries, homology.Query{ID: rec.ID, Length: len(rec.Seq)})
	}

	results := homology.Classify(report.Hits, queries)

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}

	w := output.NewBestHitWriter(out)
	if err := w.WriteAll(results); err != nil {
		return fmt.Errorf("writing best hits: %w", err)
	}

	if report.SkippedLines > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed report lines\n", report.SkippedLines)
	}
	return nil
}
