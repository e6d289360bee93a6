// Package output provides result formatters for homology search runs.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/genomekit/homolog/internal/homology"
)

// BestHitColumns is the column order of the best-hit summary table.
var BestHitColumns = []string{
	"query_id", "subject_id", "pident", "length", "mismatch", "gapopen",
	"qstart", "qend", "sstart", "send", "evalue", "bitscore",
	"qlen", "slen", "qcovs", "significance",
}

// BestHitWriter writes per-query best-hit results in tab-delimited format,
// one row per query including NOT_FOUND sentinels.
type BestHitWriter struct {
	w *bufio.Writer
}

// NewBestHitWriter creates a best-hit table writer.
func NewBestHitWriter(w io.Writer) *BestHitWriter {
	return &BestHitWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the column header line.
func (bw *BestHitWriter) WriteHeader() error {
	_, err := bw.w.WriteString(strings.Join(BestHitColumns, "\t") + "\n")
	return err
}

// Write writes a single best-hit row. Alignment fields are left empty for
// queries with no hit.
func (bw *BestHitWriter) Write(r homology.BestHit) error {
	values := make([]string, 0, len(BestHitColumns))
	values = append(values, r.QueryID)

	if r.Hit == nil {
		// subject_id, pident, length, mismatch, gapopen, qstart, qend,
		// sstart, send, evalue, bitscore stay empty
		values = append(values, "", "", "", "", "", "", "", "", "", "", "")
		// qlen is known from the query protein itself
		values = append(values, strconv.Itoa(r.QueryLen))
		// slen empty, qcovs zero
		values = append(values, "", formatFloat(0))
	} else {
		h := r.Hit
		values = append(values,
			h.SubjectID,
			formatFloat(h.PIdent),
			strconv.Itoa(h.Length),
			strconv.Itoa(h.Mismatch),
			strconv.Itoa(h.GapOpen),
			strconv.Itoa(h.QStart),
			strconv.Itoa(h.QEnd),
			strconv.Itoa(h.SStart),
			strconv.Itoa(h.SEnd),
			strconv.FormatFloat(h.EValue, 'g', -1, 64),
			formatFloat(h.BitScore),
			strconv.Itoa(h.QLen),
			strconv.Itoa(h.SLen),
			formatFloat(h.QCov),
		)
	}

	values = append(values, string(r.Tier))

	_, err := bw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header and all rows, then flushes.
func (bw *BestHitWriter) WriteAll(results []homology.BestHit) error {
	if err := bw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range results {
		if err := bw.Write(r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (bw *BestHitWriter) Flush() error {
	return bw.w.Flush()
}

// formatFloat renders a float without trailing zeros (75.5 -> "75.5",
// 75.0 -> "75").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
