package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks lexlocate/internal/vectorstore VectorStore

import (
	"context"
	"errors"
)

// ErrDimensionMismatch is returned when a vector's length does not match the
// collection's configured dimensionality.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Point represents a vector point with metadata.
// ID is the paragraph id shared with the SQLite record store.
type Point struct {
	ID   int64
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a single hit from vector search.
type SearchResult struct {
	ID    int64
	Score float32
	Meta  map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to k points ordered by similarity descending.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []int64) error
}
