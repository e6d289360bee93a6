// Package homology classifies protein homology search hits into
// significance tiers.
package homology

import "github.com/genomekit/homolog/internal/blast"

// Tier is the significance classification of a best hit.
type Tier string

const (
	TierVeryHigh Tier = "VERY_HIGH"
	TierHigh     Tier = "HIGH"
	TierMedium   Tier = "MEDIUM"
	TierLow      Tier = "LOW"
	TierNotFound Tier = "NOT_FOUND"
)

// Label returns the tier with its biological interpretation.
func (t Tier) Label() string {
	switch t {
	case TierVeryHigh, TierHigh:
		return string(t) + " (likely ortholog)"
	case TierMedium:
		return string(t) + " (likely homolog)"
	case TierLow:
		return string(t) + " (possible homolog)"
	default:
		return string(t)
	}
}

// tierRule is one row of the ordered threshold table.
type tierRule struct {
	tier     Tier
	minIdent float64
	minCov   float64
	maxEVal  float64
}

// tierRules is evaluated in order, first match wins. A hit matching no rule
// is TierLow.
var tierRules = []tierRule{
	{TierVeryHigh, 70, 80, 1e-50},
	{TierHigh, 50, 70, 1e-20},
	{TierMedium, 30, 50, 1e-5},
}

// ClassifyHit assigns a significance tier from percent identity, query
// coverage and e-value.
func ClassifyHit(h *blast.Hit) Tier {
	for _, r := range tierRules {
		if h.PIdent >= r.minIdent && h.QCov >= r.minCov && h.EValue <= r.maxEVal {
			return r.tier
		}
	}
	return TierLow
}

// Query identifies one query protein in the search universe.
type Query struct {
	ID     string
	Length int
}

// BestHit is the per-query classification result. Hit is nil for queries
// with no alignment at all, in which case Tier is TierNotFound and QueryLen
// carries the only known quantity.
type BestHit struct {
	QueryID  string
	QueryLen int
	Hit      *blast.Hit
	Tier     Tier
}

// GroupByQuery groups hits by query identifier, preserving the relative
// order of hits within each group.
func GroupByQuery(hits []blast.Hit) map[string][]blast.Hit {
	groups := make(map[string][]blast.Hit)
	for _, h := range hits {
		groups[h.QueryID] = append(groups[h.QueryID], h)
	}
	return groups
}

// Classify produces exactly one BestHit per query in queries, in the same
// order. The best hit for a query is the first hit encountered for it, which
// requires the hit list to be pre-sorted by descending significance per query
// (see blast.Report). Queries with no hits yield a TierNotFound sentinel.
func Classify(hits []blast.Hit, queries []Query) []BestHit {
	groups := GroupByQuery(hits)

	results := make([]BestHit, 0, len(queries))
	for _, q := range queries {
		group, ok := groups[q.ID]
		if !ok || len(group) == 0 {
			results = append(results, BestHit{
				QueryID:  q.ID,
				QueryLen: q.Length,
				Tier:     TierNotFound,
			})
			continue
		}

		best := group[0]
		results = append(results, BestHit{
			QueryID:  q.ID,
			QueryLen: q.Length,
			Hit:      &best,
			Tier:     ClassifyHit(&best),
		})
	}

	return results
}
