// Package pipeline sequences one homology search run end to end.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/genomekit/homolog/internal/annotation"
	"github.com/genomekit/homolog/internal/blast"
	"github.com/genomekit/homolog/internal/config"
	"github.com/genomekit/homolog/internal/duckdb"
	"github.com/genomekit/homolog/internal/genome"
	"github.com/genomekit/homolog/internal/homology"
	"github.com/genomekit/homolog/internal/output"
	"github.com/genomekit/homolog/internal/protein"
)

// Pipeline runs the extraction, search and classification stages for one
// genome against one protein family.
type Pipeline struct {
	Settings *config.Settings
	Runner   *blast.Runner
	Store    *duckdb.Store // optional; nil skips persistence

	logger *zap.Logger
}

// New creates a pipeline for the given settings.
func New(settings *config.Settings) *Pipeline {
	return &Pipeline{
		Settings: settings,
		Runner:   &blast.Runner{},
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for progress reporting.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Result holds the outputs of one full run.
type Result struct {
	Proteins     []protein.Record
	BestHits     []homology.BestHit
	Stats        *output.RunStats
	ProteomePath string
	ReportPath   string
	BestHitsPath string
}

// ExtractProteins loads the genome and annotation and assembles one protein
// per gene model. Genes that cannot be assembled are skipped and counted;
// only input-level failures abort.
func (p *Pipeline) ExtractProteins() ([]protein.Record, *output.RunStats, error) {
	stats := output.NewRunStats()

	store := genome.NewStore()
	if err := store.LoadFile(p.Settings.Locations.GenomeFASTA); err != nil {
		return nil, nil, fmt.Errorf("loading genome: %w", err)
	}
	stats.ScaffoldsLoaded = store.Count()
	p.logger.Info("genome loaded",
		zap.String("path", p.Settings.Locations.GenomeFASTA),
		zap.Int("scaffolds", stats.ScaffoldsLoaded))

	annot, err := annotation.ParseFile(p.Settings.Locations.GFF3File)
	if err != nil {
		return nil, nil, fmt.Errorf("loading annotation: %w", err)
	}
	stats.AnnotationSkipped = annot.SkippedLines
	p.logger.Info("annotation parsed",
		zap.String("path", p.Settings.Locations.GFF3File),
		zap.Int("genes", len(annot.GeneOrder)),
		zap.Int("skipped_lines", annot.SkippedLines))

	var proteins []protein.Record
	for _, geneID := range annot.GeneOrder {
		stats.GenesSeen++
		rec, err := protein.Assemble(geneID, annot.SegmentsByGene[geneID], annot.Metadata[geneID], store)
		if err != nil {
			reason := skipReason(err)
			stats.SkipGene(reason)
			p.logger.Warn("gene skipped",
				zap.String("gene", geneID),
				zap.String("reason", reason),
				zap.Error(err))
			continue
		}
		proteins = append(proteins, *rec)
	}
	stats.ProteinsExtracted = len(proteins)
	p.logger.Info("proteins extracted",
		zap.Int("extracted", stats.ProteinsExtracted),
		zap.Int("skipped", stats.TotalGenesSkipped()))

	return proteins, stats, nil
}

// skipReason buckets an assembly error for the run report.
func skipReason(err error) string {
	var missing *protein.MissingReferenceError
	if errors.As(err, &missing) {
		return "missing scaffold"
	}
	var trans *protein.TranslationError
	if errors.As(err, &trans) {
		return "translation failed"
	}
	if strings.HasSuffix(err.Error(), "no CDS segments") {
		return "no segments"
	}
	return "slice out of range"
}

// Run executes the full pipeline: extract the proteome, build a database,
// search the protein family against it, classify and write results.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	s := p.Settings
	short := s.ShortName()
	outDir := s.Locations.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	proteins, stats, err := p.ExtractProteins()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Proteins:     proteins,
		Stats:        stats,
		ProteomePath: filepath.Join(outDir, short+"_proteins.fasta"),
		ReportPath:   filepath.Join(outDir, short+"_blastp.tsv"),
		BestHitsPath: filepath.Join(outDir, short+"_best_hits.tsv"),
	}

	if err := writeProteome(res.ProteomePath, proteins); err != nil {
		return nil, err
	}
	p.logger.Info("proteome written", zap.String("path", res.ProteomePath))

	dbName := filepath.Join(outDir, short+"_db")
	if err := p.Runner.MakeDB(ctx, res.ProteomePath, dbName); err != nil {
		return nil, err
	}

	queriesPath := s.QueriesPath()
	opts := blast.SearchOptions{
		EValue:        s.General.EValue,
		MaxTargetSeqs: s.General.MaxTargetSeqs,
		Threads:       s.General.NCores,
	}
	if err := p.Runner.Search(ctx, queriesPath, dbName, res.ReportPath, opts); err != nil {
		return nil, err
	}
	p.logger.Info("search finished", zap.String("report", res.ReportPath))

	report, err := blast.ParseReportFile(res.ReportPath)
	if err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	stats.HitsParsed = len(report.Hits)
	stats.ReportSkipped = report.SkippedLines

	queries, err := loadQueries(queriesPath)
	if err != nil {
		return nil, fmt.Errorf("loading queries: %w", err)
	}

	res.BestHits = homology.Classify(report.Hits, queries)
	stats.CountTiers(res.BestHits)
	p.logger.Info("hits classified",
		zap.Int("hits", stats.HitsParsed),
		zap.Int("queries", len(queries)))

	if err := writeBestHits(res.BestHitsPath, res.BestHits); err != nil {
		return nil, err
	}
	p.logger.Info("best hits written", zap.String("path", res.BestHitsPath))

	if p.Store != nil {
		family := familyName(queriesPath)
		if err := p.Store.WriteBestHits(short, family, res.BestHits); err != nil {
			return nil, fmt.Errorf("persisting results: %w", err)
		}
	}

	return res, nil
}

// loadQueries reads the protein family FASTA into classification queries.
func loadQueries(path string) ([]homology.Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := protein.ReadFASTA(f)
	if err != nil {
		return nil, err
	}

	queries := make([]homology.Query, 0, len(records))
	for _, rec := range records {
		queries = append(queries, homology.Query{ID: rec.ID, Length: len(rec.Seq)})
	}
	return queries, nil
}

// familyName derives a protein family label from the query FASTA filename.
func familyName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func writeProteome(path string, proteins []protein.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating proteome file: %w", err)
	}
	defer f.Close()

	if err := protein.WriteFASTA(f, proteins); err != nil {
		return fmt.Errorf("writing proteome: %w", err)
	}
	return f.Close()
}

func writeBestHits(path string, results []homology.BestHit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating best-hit file: %w", err)
	}
	defer f.Close()

	w := output.NewBestHitWriter(f)
	if err := w.WriteAll(results); err != nil {
		return fmt.Errorf("writing best hits: %w", err)
	}
	return f.Close()
}
