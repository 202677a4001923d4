package storage

// ParagraphRecord is a cleaned legal-document paragraph as stored in SQLite.
// ID is assigned by the store and is the single join key shared with the
// full-text index rowids and the Qdrant point ids.
type ParagraphRecord struct {
	ID          int64
	Text        string // HTML-stripped, whitespace-normalized
	DocID       int64
	ChapterID   int64
	ParagraphID int64
}

// SearchHit is a single ranked match from one search source.
// Rank is the 0-based position in that source's result list. RawScore is
// source-specific (FTS5 bm25 or Qdrant cosine similarity) and only
// meaningful for ordering within its own source.
type SearchHit struct {
	ID       int64
	Rank     int
	RawScore float64
}
