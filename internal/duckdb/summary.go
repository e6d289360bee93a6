package duckdb

import "fmt"

// SummaryRow is one aggregated line of a cross-run summary, grouped either
// by genome or by protein family.
type SummaryRow struct {
	Group        string // genome or protein family name
	TotalQueries int
	TotalHits    int
	VeryHigh     int
	High         int
	Medium       int
	Low          int
	NotFound     int
	AvgIdentity  float64 // over queries with hits; 0 when none
	HitRate      float64 // percent of queries with a hit
}

// summaryQuery aggregates best_hits grouped by the given column.
const summaryQuery = `SELECT
	%s AS grp,
	COUNT(*) AS total_queries,
	COUNT(subject_id) AS total_hits,
	COUNT(*) FILTER (WHERE significance = 'VERY_HIGH') AS very_high,
	COUNT(*) FILTER (WHERE significance = 'HIGH') AS high,
	COUNT(*) FILTER (WHERE significance = 'MEDIUM') AS medium,
	COUNT(*) FILTER (WHERE significance = 'LOW') AS low,
	COUNT(*) FILTER (WHERE significance = 'NOT_FOUND') AS not_found,
	COALESCE(AVG(pident), 0) AS avg_identity
	FROM best_hits
	GROUP BY grp
	ORDER BY grp`

// GenomePerformance aggregates stored results per genome across all protein
// families.
func (s *Store) GenomePerformance() ([]SummaryRow, error) {
	return s.summarize("genome")
}

// FamilySummary aggregates stored results per protein family across all
// genomes.
func (s *Store) FamilySummary() ([]SummaryRow, error) {
	return s.summarize("protein_family")
}

func (s *Store) summarize(groupColumn string) ([]SummaryRow, error) {
	rows, err := s.db.Query(fmt.Sprintf(summaryQuery, groupColumn))
	if err != nil {
		return nil, fmt.Errorf("summarize by %s: %w", groupColumn, err)
	}
	defer rows.Close()

	var summary []SummaryRow
	for rows.Next() {
		var r SummaryRow
		if err := rows.Scan(
			&r.Group, &r.TotalQueries, &r.TotalHits,
			&r.VeryHigh, &r.High, &r.Medium, &r.Low, &r.NotFound,
			&r.AvgIdentity,
		); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		if r.TotalQueries > 0 {
			r.HitRate = float64(r.TotalHits) / float64(r.TotalQueries) * 100
		}
		summary = append(summary, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary rows: %w", err)
	}
	return summary, nil
}
