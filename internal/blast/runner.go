package blast

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// outFormat is the tabular column specification requested from blastp.
// The parser in this package depends on this exact order.
const outFormat = "6 qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore qlen slen qcovs"

// SearchOptions configure a blastp invocation.
type SearchOptions struct {
	EValue        float64
	MaxTargetSeqs int
	Threads       int
}

// Runner invokes the BLAST+ command line tools.
type Runner struct {
	// BlastpPath and MakeBlastDBPath override the executables looked up on
	// PATH. Empty values use the defaults.
	BlastpPath      string
	MakeBlastDBPath string
}

// MakeDB builds a protein BLAST database from a FASTA file. The build is
// skipped when the database files already exist.
func (r *Runner) MakeDB(ctx context.Context, fastaPath, dbName string) error {
	if _, err := os.Stat(dbName + ".phr"); err == nil {
		return nil
	}

	cmd := exec.CommandContext(ctx, r.makeBlastDBPath(),
		"-in", fastaPath,
		"-dbtype", "prot",
		"-out", dbName,
	)
	return run(cmd, "makeblastdb")
}

// Search runs a blastp search of queryPath against dbName, writing the
// tabular report to outPath.
func (r *Runner) Search(ctx context.Context, queryPath, dbName, outPath string, opts SearchOptions) error {
	cmd := exec.CommandContext(ctx, r.blastpPath(), searchArgs(queryPath, dbName, outPath, opts)...)
	return run(cmd, "blastp")
}

// searchArgs builds the blastp argument list.
func searchArgs(queryPath, dbName, outPath string, opts SearchOptions) []string {
	return []string{
		"-query", queryPath,
		"-db", dbName,
		"-out", outPath,
		"-evalue", strconv.FormatFloat(opts.EValue, 'g', -1, 64),
		"-max_target_seqs", strconv.Itoa(opts.MaxTargetSeqs),
		"-num_threads", strconv.Itoa(opts.Threads),
		"-outfmt", outFormat,
	}
}

func (r *Runner) blastpPath() string {
	if r.BlastpPath != "" {
		return r.BlastpPath
	}
	return "blastp"
}

func (r *Runner) makeBlastDBPath() string {
	if r.MakeBlastDBPath != "" {
		return r.MakeBlastDBPath
	}
	return "makeblastdb"
}

// run executes a command, capturing stderr for error reporting.
func run(cmd *exec.Cmd, tool string) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ExternalToolError{Tool: tool, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// ExternalToolError indicates an external alignment tool failed or is absent.
// It is a hard failure for the run: without a report there is nothing to
// classify.
type ExternalToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ExternalToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v\nstderr:\n%s", e.Tool, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}
