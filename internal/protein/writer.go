package protein

import (
	"bufio"
	"io"
	"strings"
)

// fastaLineWidth is the wrap width for sequence lines.
const fastaLineWidth = 60

// WriteFASTA writes protein records in FASTA format, wrapping sequence lines.
func WriteFASTA(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(">" + rec.Description + "\n"); err != nil {
			return err
		}
		for i := 0; i < len(rec.Seq); i += fastaLineWidth {
			end := i + fastaLineWidth
			if end > len(rec.Seq) {
				end = len(rec.Seq)
			}
			if _, err := bw.WriteString(rec.Seq[i:end] + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadFASTA reads protein records from FASTA content. The record ID is the
// header up to the first whitespace; the full header is the description.
func ReadFASTA(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var records []Record
	var current *Record
	var seq strings.Builder

	flush := func() {
		if current != nil {
			current.Seq = seq.String()
			records = append(records, *current)
			seq.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			header := line[1:]
			id := header
			if idx := strings.IndexAny(header, " \t"); idx != -1 {
				id = header[:idx]
			}
			current = &Record{ID: id, Description: header}
		} else if current != nil {
			seq.WriteString(line)
		}
	}
	flush()

	return records, scanner.Err()
}
