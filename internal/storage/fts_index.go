package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_keyword_index.go -package=mocks lexlocate/internal/storage KeywordIndex

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"
)

// KeywordIndex defines the interface for full-text paragraph search.
type KeywordIndex interface {
	// Index adds text to the index under the given paragraph id.
	// Re-indexing an id replaces its prior text.
	Index(ctx context.Context, id int64, text string) error
	// Search returns up to k hits ordered by FTS5 relevance (best first).
	// The query is sanitized before matching; a query that sanitizes to
	// nothing yields an empty result, not an error.
	Search(ctx context.Context, query string, k int) ([]SearchHit, error)
}

// FTSIndex implements KeywordIndex on the paragraphs_fts SQLite FTS5 table.
// The FTS rowid is the paragraph id assigned by ParagraphRepo.
type FTSIndex struct {
	db *sql.DB
}

// NewFTSIndex creates a new FTSIndex.
func NewFTSIndex(db *sql.DB) *FTSIndex {
	return &FTSIndex{db: db}
}

// Index adds text to the index under the given paragraph id.
func (x *FTSIndex) Index(ctx context.Context, id int64, text string) error {
	// Delete-then-insert keeps re-indexing idempotent.
	if _, err := x.db.ExecContext(ctx, "DELETE FROM paragraphs_fts WHERE rowid = ?", id); err != nil {
		return fmt.Errorf("failed to clear fts entry: %w", err)
	}
	if _, err := x.db.ExecContext(ctx,
		"INSERT INTO paragraphs_fts (rowid, text) VALUES (?, ?)", id, text,
	); err != nil {
		return fmt.Errorf("failed to index text: %w", err)
	}
	return nil
}

// Search returns up to k hits ordered by FTS5 relevance.
func (x *FTSIndex) Search(ctx context.Context, query string, k int) ([]SearchHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	sanitized := sanitizeQuery(query)
	if sanitized == "" {
		return nil, nil
	}

	// FTS5 bm25 rank is negative, lower is better, so ascending order
	// puts the best match first.
	rows, err := x.db.QueryContext(ctx,
		"SELECT rowid, rank FROM paragraphs_fts WHERE paragraphs_fts MATCH ? ORDER BY rank LIMIT ?",
		sanitized, k,
	)
	if err != nil {
		return nil, fmt.Errorf("fts search failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var hits []SearchHit
	for rows.Next() {
		var hit SearchHit
		if err := rows.Scan(&hit.ID, &hit.RawScore); err != nil {
			return nil, fmt.Errorf("failed to scan fts hit: %w", err)
		}
		hit.Rank = len(hits)
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return hits, nil
}

// sanitizeQuery turns free text into a MATCH expression that cannot raise an
// FTS5 parse error. Every character that is not a letter, digit, or
// whitespace becomes a space, and each surviving token is emitted as a
// quoted string so the barewords AND, OR, and NOT are matched as terms
// instead of being parsed as operators.
func sanitizeQuery(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	for _, r := range query {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	if len(tokens) == 0 {
		return ""
	}
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = `"` + tok + `"`
	}
	return strings.Join(quoted, " ")
}
