// Package blast runs protein homology searches through the NCBI BLAST+
// tools and parses their tabular output.
package blast

// Hit is one query-subject alignment from a tabular (outfmt 6) report.
// Field order matches the requested output columns:
// qseqid sseqid pident length mismatch gapopen qstart qend sstart send
// evalue bitscore qlen slen qcovs.
type Hit struct {
	QueryID   string
	SubjectID string
	PIdent    float64 // percent identity, 0-100
	Length    int     // alignment length
	Mismatch  int
	GapOpen   int
	QStart    int
	QEnd      int
	SStart    int
	SEnd      int
	EValue    float64 // smaller = more significant
	BitScore  float64
	QLen      int
	SLen      int
	QCov      float64 // query coverage percent, 0 when the report omits it
}
