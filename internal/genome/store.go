// Package genome provides scaffold sequence loading and lookup.
package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Store holds scaffold (chromosome/contig) sequences indexed by identifier.
// A Store is immutable after loading.
type Store struct {
	sequences map[string]string
}

// NewStore creates an empty scaffold store.
func NewStore() *Store {
	return &Store{sequences: make(map[string]string)}
}

// LoadFile reads scaffold sequences from a FASTA file.
// Supports gzipped files (.gz).
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open genome file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return s.Load(reader)
}

// Load reads FASTA records from r into the store. Record identifiers are the
// header up to the first whitespace. A duplicate identifier overwrites the
// earlier record (streaming semantics, last one wins).
func (s *Store) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	// Whole scaffolds can arrive as single lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	var currentID string
	var currentSeq strings.Builder
	lineNum := 0
	sawHeader := false

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			if currentID != "" {
				s.sequences[currentID] = currentSeq.String()
			}
			currentID = parseHeader(line)
			if currentID == "" {
				return &ParseError{Line: lineNum, Message: "empty FASTA header"}
			}
			currentSeq.Reset()
			sawHeader = true
		} else {
			if !sawHeader {
				return &ParseError{Line: lineNum, Message: "sequence data before first header"}
			}
			currentSeq.WriteString(strings.ToUpper(strings.TrimSpace(line)))
		}
	}

	if currentID != "" {
		s.sequences[currentID] = currentSeq.String()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan genome: %w", err)
	}

	return nil
}

// Lookup returns the sequence for a scaffold identifier.
func (s *Store) Lookup(id string) (string, bool) {
	seq, ok := s.sequences[id]
	return seq, ok
}

// Count returns the number of loaded scaffolds.
func (s *Store) Count() int {
	return len(s.sequences)
}

// IDs returns the loaded scaffold identifiers in unspecified order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.sequences))
	for id := range s.sequences {
		ids = append(ids, id)
	}
	return ids
}

// parseHeader extracts the record identifier from a FASTA header line.
func parseHeader(header string) string {
	header = strings.TrimPrefix(header, ">")
	if idx := strings.IndexAny(header, " \t"); idx != -1 {
		header = header[:idx]
	}
	return header
}

// ParseError reports a malformed genome record with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("genome parse error at line %d: %s", e.Line, e.Message)
}
