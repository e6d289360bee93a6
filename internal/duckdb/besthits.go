package duckdb

import (
	"database/sql"
	"fmt"

	"github.com/genomekit/homolog/internal/blast"
	"github.com/genomekit/homolog/internal/homology"
)

// WriteBestHits stores the classified best hits of one run, replacing any
// earlier rows for the same (genome, protein family) pair so re-runs stay
// idempotent.
func (s *Store) WriteBestHits(genome, family string, results []homology.BestHit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"DELETE FROM best_hits WHERE genome=? AND protein_family=?",
		genome, family,
	); err != nil {
		return fmt.Errorf("clear previous results: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO best_hits VALUES
		(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		h := r.Hit
		if h == nil {
			// NOT_FOUND rows carry NULL alignment fields
			if _, err := stmt.Exec(
				genome, family, r.QueryID,
				nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
				r.QueryLen, nil, 0.0, string(r.Tier),
			); err != nil {
				return fmt.Errorf("insert sentinel for %s: %w", r.QueryID, err)
			}
			continue
		}
		if _, err := stmt.Exec(
			genome, family, r.QueryID,
			h.SubjectID, h.PIdent, h.Length, h.Mismatch, h.GapOpen,
			h.QStart, h.QEnd, h.SStart, h.SEnd,
			h.EValue, h.BitScore, h.QLen, h.SLen, h.QCov, string(r.Tier),
		); err != nil {
			return fmt.Errorf("insert best hit for %s: %w", r.QueryID, err)
		}
	}

	return tx.Commit()
}

// ReadBestHits loads the stored best hits for one (genome, family) pair.
func (s *Store) ReadBestHits(genome, family string) ([]homology.BestHit, error) {
	rows, err := s.db.Query(`SELECT
		query_id, subject_id, pident, length, mismatch, gapopen,
		qstart, qend, sstart, send, evalue, bitscore, qlen, slen, qcovs,
		significance
		FROM best_hits
		WHERE genome=? AND protein_family=?
		ORDER BY query_id`, genome, family)
	if err != nil {
		return nil, fmt.Errorf("query best hits: %w", err)
	}
	defer rows.Close()

	var results []homology.BestHit
	for rows.Next() {
		var (
			r         homology.BestHit
			tier      string
			subjectID sql.NullString
			pident    sql.NullFloat64
			length    sql.NullInt64
			mismatch  sql.NullInt64
			gapopen   sql.NullInt64
			qstart    sql.NullInt64
			qend      sql.NullInt64
			sstart    sql.NullInt64
			send      sql.NullInt64
			evalue    sql.NullFloat64
			bitscore  sql.NullFloat64
			qlen      sql.NullInt64
			slen      sql.NullInt64
			qcovs     sql.NullFloat64
		)
		if err := rows.Scan(
			&r.QueryID, &subjectID, &pident, &length, &mismatch, &gapopen,
			&qstart, &qend, &sstart, &send, &evalue, &bitscore,
			&qlen, &slen, &qcovs, &tier,
		); err != nil {
			return nil, fmt.Errorf("scan best hit: %w", err)
		}

		r.Tier = homology.Tier(tier)
		r.QueryLen = int(qlen.Int64)
		if subjectID.Valid {
			r.Hit = &blast.Hit{
				QueryID:   r.QueryID,
				SubjectID: subjectID.String,
				PIdent:    pident.Float64,
				Length:    int(length.Int64),
				Mismatch:  int(mismatch.Int64),
				GapOpen:   int(gapopen.Int64),
				QStart:    int(qstart.Int64),
				QEnd:      int(qend.Int64),
				SStart:    int(sstart.Int64),
				SEnd:      int(send.Int64),
				EValue:    evalue.Float64,
				BitScore:  bitscore.Float64,
				QLen:      int(qlen.Int64),
				SLen:      int(slen.Int64),
				QCov:      qcovs.Float64,
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate best hits: %w", err)
	}
	return results, nil
}
