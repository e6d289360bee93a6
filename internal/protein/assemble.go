package protein

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/genomekit/homolog/internal/annotation"
)

// Record is one reconstructed protein sequence.
type Record struct {
	ID          string
	Description string
	Seq         string
}

// ScaffoldLookup resolves scaffold identifiers to nucleotide sequences.
type ScaffoldLookup interface {
	Lookup(id string) (string, bool)
}

// Assemble reconstructs the coding sequence of one gene model and translates
// it to a protein record.
//
// Segments are re-sorted by ascending genomic start before slicing; for
// canonical (colinear) gene models this yields transcript order. Segments on
// the minus strand are reverse-complemented as one concatenated sequence.
// A trailing stop symbol is stripped from the translation.
//
// Errors identify the gene so callers can skip it and continue the batch:
// missing scaffolds return a MissingReferenceError, untranslatable sequences
// a TranslationError.
func Assemble(geneID string, segments []annotation.CDSSegment, meta annotation.GeneMeta, scaffolds ScaffoldLookup) (*Record, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("gene %s has no CDS segments", geneID)
	}

	sorted := make([]annotation.CDSSegment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	scaffoldID := sorted[0].Scaffold
	scaffold, ok := scaffolds.Lookup(scaffoldID)
	if !ok {
		return nil, &MissingReferenceError{Scaffold: scaffoldID, Gene: geneID}
	}

	var cds strings.Builder
	for _, seg := range sorted {
		start := seg.Start - 1 // 1-based inclusive to 0-based half-open
		end := seg.End
		if start < 0 || end > int64(len(scaffold)) || start > end {
			return nil, fmt.Errorf("gene %s: segment %d-%d outside scaffold %s (%d bp)",
				geneID, seg.Start, seg.End, scaffoldID, len(scaffold))
		}
		cds.WriteString(scaffold[start:end])
	}

	seq := cds.String()
	if sorted[0].Strand == "-" {
		seq = ReverseComplement(seq)
	}

	aa, err := Translate(seq)
	if err != nil {
		var terr *TranslationError
		if errors.As(err, &terr) {
			terr.Gene = geneID
		}
		return nil, err
	}
	aa = TrimStop(aa)

	id := geneID
	if meta.ProteinID != "" {
		id = meta.ProteinID
	}
	description := id + " " + meta.Name
	if meta.Product != "" {
		description += " | " + meta.Product
	}

	return &Record{ID: id, Description: description, Seq: aa}, nil
}
