// Package annotation parses GFF3 gene annotations into per-gene CDS
// segment sets and gene metadata.
package annotation

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// The grouping convention of the expected annotation input: CDS features point
// at their transcript through a Parent attribute of the form "mRNA_<n>".
// Inputs that do not follow this convention produce no CDS grouping.
const geneIDPrefix = "mRNA_"

// CDSSegment is one coding exon span of a gene model.
// Coordinates are 1-based and inclusive.
type CDSSegment struct {
	Scaffold string
	Start    int64
	End      int64
	Strand   string // "+" or "-"
	Phase    int    // 0, 1 or 2
}

// GeneMeta holds the optional descriptive attributes of a gene model,
// collected from its mRNA record (and product, sometimes, from CDS records).
type GeneMeta struct {
	Name      string
	ProteinID string
	Product   string
}

// Result is the outcome of a single annotation scan.
type Result struct {
	// SegmentsByGene groups CDS segments by gene identifier, in input order.
	SegmentsByGene map[string][]CDSSegment
	// Metadata maps gene identifiers to their mRNA-derived attributes.
	Metadata map[string]GeneMeta
	// GeneOrder lists gene identifiers in order of first appearance.
	GeneOrder []string
	// SkippedLines counts malformed lines dropped during the scan.
	SkippedLines int
}

// ParseFile parses a GFF3 annotation file. Supports gzipped files (.gz).
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Parse(reader)
}

// Parse scans line-oriented GFF3 content and collects CDS segments grouped by
// gene along with gene metadata from mRNA records.
//
// Malformed lines (fewer than 9 tab-separated columns, unparsable coordinates)
// are skipped and counted, never fatal. A product attribute on a CDS line is
// merged into the gene's metadata only when the mRNA record was already seen;
// otherwise it is dropped. This mirrors the single-pass behavior of the
// annotation sources this package was written against and is covered by tests.
func Parse(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	res := &Result{
		SegmentsByGene: make(map[string][]CDSSegment),
		Metadata:       make(map[string]GeneMeta),
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			res.SkippedLines++
			continue
		}

		switch fields[2] {
		case "mRNA":
			attrs := parseAttributes(fields[8])
			id, ok := attrs["ID"]
			if !ok {
				continue
			}
			res.Metadata[id] = GeneMeta{
				Name:      attrs["Name"],
				ProteinID: attrs["proteinId"],
				Product:   attrs["product"],
			}

		case "CDS":
			attrs := parseAttributes(fields[8])
			parent, ok := attrs["Parent"]
			if !ok || !strings.HasPrefix(parent, geneIDPrefix) {
				continue
			}

			start, err := strconv.ParseInt(fields[3], 10, 64)
			if err != nil {
				res.SkippedLines++
				continue
			}
			end, err := strconv.ParseInt(fields[4], 10, 64)
			if err != nil {
				res.SkippedLines++
				continue
			}

			if _, seen := res.SegmentsByGene[parent]; !seen {
				res.GeneOrder = append(res.GeneOrder, parent)
			}
			res.SegmentsByGene[parent] = append(res.SegmentsByGene[parent], CDSSegment{
				Scaffold: fields[0],
				Start:    start,
				End:      end,
				Strand:   fields[6],
				Phase:    parsePhase(fields[7]),
			})

			// Product on a CDS line updates existing metadata only. When the
			// mRNA record has not been seen yet the value is skipped silently.
			if product, ok := attrs["product"]; ok {
				if meta, seen := res.Metadata[parent]; seen {
					meta.Product = product
					res.Metadata[parent] = meta
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan annotation: %w", err)
	}

	return res, nil
}

// parseAttributes parses a GFF3 attribute column.
// Format: key1=value1;key2=value2;...
// Entries without an '=' are ignored individually.
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(attrStr, ";") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		attrs[key] = value
	}
	return attrs
}

// parsePhase returns the CDS phase, defaulting to 0 for non-numeric values
// (GFF3 allows "." for features without phase).
func parsePhase(s string) int {
	p, err := strconv.Atoi(s)
	if err != nil || p < 0 || p > 2 {
		return 0
	}
	return p
}
