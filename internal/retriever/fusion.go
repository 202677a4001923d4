package retriever

import (
	"sort"

	"lexlocate/internal/storage"
)

// FusedHit is a paragraph id with its reciprocal-rank-fused score.
type FusedHit struct {
	ID    int64
	Score float64
}

// fuse combines ranked hit lists with reciprocal rank fusion: a hit at
// 0-based rank r contributes 1/(rrfK + r + 1) to its id's fused score, and
// contributions accumulate across lists. Fusion works on ranks only because
// raw scores from different sources are not comparable (FTS5 bm25 is a
// negative rank, cosine similarity is in [-1, 1]).
//
// The result is ordered by fused score descending, ties broken by ascending
// id so repeated runs over identical inputs produce identical output.
func fuse(lists [][]storage.SearchHit, rrfK int) []FusedHit {
	scores := make(map[int64]float64)
	for _, hits := range lists {
		for _, hit := range hits {
			scores[hit.ID] += 1.0 / float64(rrfK+hit.Rank+1)
		}
	}

	fused := make([]FusedHit, 0, len(scores))
	for id, score := range scores {
		fused = append(fused, FusedHit{ID: id, Score: score})
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].ID < fused[j].ID
	})

	return fused
}
