package output

import (
	"fmt"
	"io"
	"slices"

	"github.com/genomekit/homolog/internal/homology"
)

// geneSkipReasons orders the known skip-reason labels in run reports.
// Unknown reasons are appended after these.
var geneSkipReasons = []string{
	"missing scaffold",
	"translation failed",
	"no segments",
	"slice out of range",
}

// RunStats accumulates diagnostics over one search run. Record-level
// failures are absorbed into counts here instead of aborting the run.
type RunStats struct {
	ScaffoldsLoaded   int
	GenesSeen         int
	ProteinsExtracted int
	GenesSkipped      map[string]int // reason -> count
	AnnotationSkipped int            // malformed annotation lines
	HitsParsed        int
	ReportSkipped     int // malformed report lines
	TierCounts        map[homology.Tier]int
}

// NewRunStats creates an empty stats accumulator.
func NewRunStats() *RunStats {
	return &RunStats{
		GenesSkipped: make(map[string]int),
		TierCounts:   make(map[homology.Tier]int),
	}
}

// SkipGene records one dropped gene under a reason label.
func (s *RunStats) SkipGene(reason string) {
	s.GenesSkipped[reason]++
}

// CountTiers tallies tier assignments from a classified result set.
func (s *RunStats) CountTiers(results []homology.BestHit) {
	for _, r := range results {
		s.TierCounts[r.Tier]++
	}
}

// TotalGenesSkipped sums the skip counts across reasons.
func (s *RunStats) TotalGenesSkipped() int {
	total := 0
	for _, n := range s.GenesSkipped {
		total += n
	}
	return total
}

// WriteReport writes a labeled end-of-run report: what succeeded, what was
// skipped and why.
func (s *RunStats) WriteReport(w io.Writer) error {
	fmt.Fprintln(w, "=== Protein extraction ===")
	fmt.Fprintf(w, "scaffolds loaded:   %d\n", s.ScaffoldsLoaded)
	fmt.Fprintf(w, "genes seen:         %d\n", s.GenesSeen)
	fmt.Fprintf(w, "proteins extracted: %d\n", s.ProteinsExtracted)
	if s.AnnotationSkipped > 0 {
		fmt.Fprintf(w, "annotation lines skipped: %d\n", s.AnnotationSkipped)
	}
	if len(s.GenesSkipped) > 0 {
		fmt.Fprintln(w, "genes skipped:")
		for _, reason := range geneSkipReasons {
			if n, ok := s.GenesSkipped[reason]; ok {
				fmt.Fprintf(w, "  %-20s %d\n", reason, n)
			}
		}
		for reason, n := range s.GenesSkipped {
			if !slices.Contains(geneSkipReasons, reason) {
				fmt.Fprintf(w, "  %-20s %d\n", reason, n)
			}
		}
	}

	fmt.Fprintln(w, "=== Homology classification ===")
	fmt.Fprintf(w, "hits parsed:        %d\n", s.HitsParsed)
	if s.ReportSkipped > 0 {
		fmt.Fprintf(w, "report lines skipped: %d\n", s.ReportSkipped)
	}
	for _, tier := range []homology.Tier{
		homology.TierVeryHigh, homology.TierHigh, homology.TierMedium,
		homology.TierLow, homology.TierNotFound,
	} {
		if n, ok := s.TierCounts[tier]; ok {
			fmt.Fprintf(w, "%-12s %d\n", tier, n)
		}
	}

	return nil
}
