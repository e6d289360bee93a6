package blast

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Report holds the parsed hits of one tabular report, in input order.
//
// Hit order is significant: the classifier treats the first hit per query as
// the best one, so the report must be produced with hits pre-sorted by
// descending significance per query (blastp's default for outfmt 6).
type Report struct {
	Hits         []Hit
	SkippedLines int
}

// ParseReportFile parses a tabular report file.
func ParseReportFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()
	return ParseReport(f)
}

// ParseReport parses tab-separated outfmt-6 content. Comment and blank lines
// are skipped; lines with fewer than 14 fields or unparsable numeric fields
// are skipped and counted, never fatal. The 15th field (qcovs) is optional
// and defaults to 0.
func ParseReport(r io.Reader) (*Report, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	report := &Report{}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		hit, ok := parseHitLine(line)
		if !ok {
			report.SkippedLines++
			continue
		}
		report.Hits = append(report.Hits, hit)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}

	return report, nil
}

// parseHitLine parses one report line. ok is false for lines that should be
// skipped (too few fields, numeric conversion failure).
func parseHitLine(line string) (Hit, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 14 {
		return Hit{}, false
	}

	var (
		hit Hit
		err error
	)
	hit.QueryID = fields[0]
	hit.SubjectID = fields[1]

	ok := true
	parseFloat := func(s string) float64 {
		var v float64
		if v, err = strconv.ParseFloat(s, 64); err != nil {
			ok = false
		}
		return v
	}
	parseInt := func(s string) int {
		var v int
		if v, err = strconv.Atoi(s); err != nil {
			ok = false
		}
		return v
	}

	hit.PIdent = parseFloat(fields[2])
	hit.Length = parseInt(fields[3])
	hit.Mismatch = parseInt(fields[4])
	hit.GapOpen = parseInt(fields[5])
	hit.QStart = parseInt(fields[6])
	hit.QEnd = parseInt(fields[7])
	hit.SStart = parseInt(fields[8])
	hit.SEnd = parseInt(fields[9])
	hit.EValue = parseFloat(fields[10])
	hit.BitScore = parseFloat(fields[11])
	hit.QLen = parseInt(fields[12])
	hit.SLen = parseInt(fields[13])
	if len(fields) > 14 {
		hit.QCov = parseFloat(fields[14])
	}

	if !ok {
		return Hit{}, false
	}
	return hit, true
}
