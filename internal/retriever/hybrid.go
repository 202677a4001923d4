package retriever

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_retriever.go -package=mocks lexlocate/internal/retriever Retriever

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lexlocate/internal/contextutil"
	"lexlocate/internal/llm"
	"lexlocate/internal/storage"
	"lexlocate/internal/vectorstore"
)

// Retriever finds the paragraphs most relevant to a query.
type Retriever interface {
	// Retrieve returns up to k paragraph records ordered by fused relevance.
	// An empty query or a query with no matches yields an empty slice, not
	// an error.
	Retrieve(ctx context.Context, query string, k int) ([]storage.ParagraphRecord, error)
}

// HybridRetriever combines FTS5 keyword search and Qdrant vector search with
// reciprocal rank fusion. It is stateless and safe for concurrent use.
type HybridRetriever struct {
	keywordIndex storage.KeywordIndex
	vectorStore  vectorstore.VectorStore
	collection   string
	embedder     llm.Embedder
	store        storage.ParagraphStore
	rrfK         int
}

// NewHybridRetriever creates a new HybridRetriever.
// rrfK is the reciprocal rank fusion constant (60 is the usual choice).
func NewHybridRetriever(
	keywordIndex storage.KeywordIndex,
	vectorStore vectorstore.VectorStore,
	collection string,
	embedder llm.Embedder,
	store storage.ParagraphStore,
	rrfK int,
) *HybridRetriever {
	return &HybridRetriever{
		keywordIndex: keywordIndex,
		vectorStore:  vectorStore,
		collection:   collection,
		embedder:     embedder,
		store:        store,
		rrfK:         rrfK,
	}
}

// Retrieve runs both searches, fuses the ranked lists, and hydrates the top
// ids back into full records.
//
// Either search source may fail independently; a failed source degrades to an
// empty list rather than aborting the whole call. The one exception is a
// vector dimension fault, which means the request itself is malformed and is
// returned to the caller.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string, k int) ([]storage.ParagraphRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	var (
		wg          sync.WaitGroup
		keywordHits []storage.SearchHit
		vectorHits  []storage.SearchHit
		vectorErr   error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		hits, err := r.keywordIndex.Search(ctx, query, k)
		if err != nil {
			logger.WarnContext(ctx, "keyword search failed, degrading to empty", "error", err)
			return
		}
		keywordHits = hits
	}()

	go func() {
		defer wg.Done()
		hits, err := r.searchVector(ctx, query, k)
		if err != nil {
			if errors.Is(err, vectorstore.ErrDimensionMismatch) {
				vectorErr = err
				return
			}
			logger.WarnContext(ctx, "vector search failed, degrading to empty", "error", err)
			return
		}
		vectorHits = hits
	}()

	wg.Wait()

	if vectorErr != nil {
		return nil, vectorErr
	}

	fused := fuse([][]storage.SearchHit{keywordHits, vectorHits}, r.rrfK)
	if len(fused) > k {
		fused = fused[:k]
	}
	if len(fused) == 0 {
		logger.InfoContext(ctx, "no hits from either source", "query", query)
		return nil, nil
	}

	ids := make([]int64, len(fused))
	for i, hit := range fused {
		ids[i] = hit.ID
	}

	records, err := r.store.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate paragraphs: %w", err)
	}

	// Preserve fused order; ids with no backing record (index drift) are
	// dropped rather than surfaced.
	results := make([]storage.ParagraphRecord, 0, len(ids))
	var drifted []int64
	for _, id := range ids {
		if rec, ok := records[id]; ok {
			results = append(results, rec)
		} else {
			logger.WarnContext(ctx, "fused id missing from record store", "id", id)
			drifted = append(drifted, id)
		}
	}

	// Evict drifted ids from the vector index so they stop resurfacing.
	// Best effort: a cleanup failure must not fail the retrieval.
	if len(drifted) > 0 {
		if err := r.vectorStore.Delete(ctx, r.collection, drifted); err != nil {
			logger.WarnContext(ctx, "failed to evict drifted ids from vector index", "ids", drifted, "error", err)
		}
	}

	logger.InfoContext(ctx, "hybrid retrieval completed",
		"query", query,
		"keyword_hits", len(keywordHits),
		"vector_hits", len(vectorHits),
		"results", len(results),
	)
	return results, nil
}

// searchVector embeds the query and searches the vector collection.
func (r *HybridRetriever) searchVector(ctx context.Context, query string, k int) ([]storage.SearchHit, error) {
	embeddings, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := r.vectorStore.Search(ctx, r.collection, embeddings[0], k)
	if err != nil {
		return nil, err
	}

	hits := make([]storage.SearchHit, len(results))
	for i, res := range results {
		hits[i] = storage.SearchHit{
			ID:       res.ID,
			Rank:     i,
			RawScore: float64(res.Score),
		}
	}
	return hits, nil
}
