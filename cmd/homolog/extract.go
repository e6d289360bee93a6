package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/genomekit/homolog/internal/config"
	"github.com/genomekit/homolog/internal/pipeline"
	"github.com/genomekit/homolog/internal/protein"
)

func newExtractCmd(verbose *bool) *cobra.Command {
	var (
		genomePath string
		gffPath    string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract protein sequences from an annotated genome",
		Long: `Reconstruct the coding sequence of each annotated gene model, translate it,
and write the resulting proteins as FASTA.`,
		Example: `  homolog extract --genome genome.fa.gz --gff3 annotation.gff3 -o proteins.fasta`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(genomePath, gffPath, outputFile, *verbose)
		},
	}

	cmd.Flags().StringVar(&genomePath, "genome", "", "genome assembly FASTA (plain or gzip)")
	cmd.Flags().StringVar(&gffPath, "gff3", "", "GFF3 annotation file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output FASTA file (default: stdout)")
	cmd.MarkFlagRequired("genome")
	cmd.MarkFlagRequired("gff3")

	return cmd
}

func runExtract(genomePath, gffPath, outputFile string, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	p := pipeline.New(&config.Settings{
		Locations: config.Locations{
			GenomeFASTA: genomePath,
			GFF3File:    gffPath,
		},
	})
	p.SetLogger(logger)

	proteins, stats, err := p.ExtractProteins()
	if err != nil {
		return err
	}

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}

	if err := protein.WriteFASTA(out, proteins); err != nil {
		return fmt.Errorf("writing proteins: %w", err)
	}

	return stats.WriteReport(os.Stderr)
}
