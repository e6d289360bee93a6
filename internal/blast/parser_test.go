package blast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitLine(fields ...string) string {
	return strings.Join(fields, "\t")
}

func TestParseReport(t *testing.T) {
	report := hitLine("Q1", "S1", "75.0", "200", "50", "2", "1", "200", "5", "204", "1e-60", "320.5", "210", "220", "85") + "\n" +
		hitLine("Q1", "S2", "40.0", "180", "100", "4", "1", "180", "1", "180", "1e-10", "90.1", "210", "190", "60") + "\n"

	res, err := ParseReport(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, res.Hits, 2)
	assert.Zero(t, res.SkippedLines)

	h := res.Hits[0]
	assert.Equal(t, "Q1", h.QueryID)
	assert.Equal(t, "S1", h.SubjectID)
	assert.Equal(t, 75.0, h.PIdent)
	assert.Equal(t, 200, h.Length)
	assert.Equal(t, 50, h.Mismatch)
	assert.Equal(t, 2, h.GapOpen)
	assert.Equal(t, 1, h.QStart)
	assert.Equal(t, 200, h.QEnd)
	assert.Equal(t, 5, h.SStart)
	assert.Equal(t, 204, h.SEnd)
	assert.Equal(t, 1e-60, h.EValue)
	assert.Equal(t, 320.5, h.BitScore)
	assert.Equal(t, 210, h.QLen)
	assert.Equal(t, 220, h.SLen)
	assert.Equal(t, 85.0, h.QCov)

	// Input order preserved
	assert.Equal(t, "S2", res.Hits[1].SubjectID)
}

func TestParseReport_QCovDefaultsToZero(t *testing.T) {
	report := hitLine("Q1", "S1", "75.0", "200", "50", "2", "1", "200", "5", "204", "1e-60", "320.5", "210", "220") + "\n"

	res, err := ParseReport(strings.NewReader(report))
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Zero(t, res.Hits[0].QCov)
}

func TestParseReport_ShortLineSkipped(t *testing.T) {
	report := hitLine("Q1", "S1", "75.0", "200", "50", "2", "1", "200", "5", "204") + "\n" +
		hitLine("Q2", "S2", "55.0", "180", "80", "3", "1", "180", "1", "180", "1e-30", "150.2", "185", "190", "75") + "\n"

	res, err := ParseReport(strings.NewReader(report))
	require.NoError(t, err)

	// The 10-field line is skipped without aborting subsequent lines
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "Q2", res.Hits[0].QueryID)
	assert.Equal(t, 1, res.SkippedLines)
}

func TestParseReport_BadNumericFieldSkipsLine(t *testing.T) {
	report := hitLine("Q1", "S1", "abc", "200", "50", "2", "1", "200", "5", "204", "1e-60", "320.5", "210", "220") + "\n"

	res, err := ParseReport(strings.NewReader(report))
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
	assert.Equal(t, 1, res.SkippedLines)
}

func TestParseReport_CommentsAndBlanksSkipped(t *testing.T) {
	report := "# BLASTP 2.14.0\n\n" +
		hitLine("Q1", "S1", "75.0", "200", "50", "2", "1", "200", "5", "204", "1e-60", "320.5", "210", "220", "85") + "\n"

	res, err := ParseReport(strings.NewReader(report))
	require.NoError(t, err)
	assert.Len(t, res.Hits, 1)
	assert.Zero(t, res.SkippedLines)
}

func TestSearchArgs(t *testing.T) {
	args := searchArgs("query.fasta", "genome_db", "out.tsv", SearchOptions{
		EValue:        1e-5,
		MaxTargetSeqs: 10,
		Threads:       4,
	})

	assert.Equal(t, []string{
		"-query", "query.fasta",
		"-db", "genome_db",
		"-out", "out.tsv",
		"-evalue", "1e-05",
		"-max_target_seqs", "10",
		"-num_threads", "4",
		"-outfmt", outFormat,
	}, args)
}

func TestRunner_MissingToolReturnsExternalToolError(t *testing.T) {
	r := &Runner{BlastpPath: "/nonexistent/blastp-binary"}
	err := r.Search(t.Context(), "q.fasta", "db", "out.tsv", SearchOptions{EValue: 1e-5, MaxTargetSeqs: 10, Threads: 1})
	require.Error(t, err)

	var eerr *ExternalToolError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "blastp", eerr.Tool)
}
