package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_paragraph_store.go -package=mocks lexlocate/internal/storage ParagraphStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ParagraphStore defines the interface for paragraph record storage.
type ParagraphStore interface {
	// Insert stores a paragraph and returns the assigned id.
	// Ids are monotonic and never reused. Empty text is rejected.
	Insert(ctx context.Context, rec *ParagraphRecord) (int64, error)
	// GetMany returns the records for the given ids, keyed by id.
	// Ids with no matching record are omitted from the map, not an error.
	GetMany(ctx context.Context, ids []int64) (map[int64]ParagraphRecord, error)
	// Count returns the number of stored paragraphs.
	Count(ctx context.Context) (int, error)
}

// ParagraphRepo provides methods for paragraph operations.
// It implements the ParagraphStore interface.
type ParagraphRepo struct {
	db *sql.DB
}

// NewParagraphRepo creates a new ParagraphRepo.
func NewParagraphRepo(db *sql.DB) *ParagraphRepo {
	return &ParagraphRepo{db: db}
}

// Insert stores a paragraph and returns the assigned id.
func (r *ParagraphRepo) Insert(ctx context.Context, rec *ParagraphRecord) (int64, error) {
	if strings.TrimSpace(rec.Text) == "" {
		return 0, fmt.Errorf("paragraph text must not be empty")
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO paragraphs (text, doc_id, chapter_id, paragraph_id) VALUES (?, ?, ?, ?)",
		rec.Text, rec.DocID, rec.ChapterID, rec.ParagraphID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert paragraph: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// GetMany returns the records for the given ids, keyed by id.
// Missing ids are silently omitted.
func (r *ParagraphRepo) GetMany(ctx context.Context, ids []int64) (map[int64]ParagraphRecord, error) {
	result := make(map[int64]ParagraphRecord, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, text, doc_id, chapter_id, paragraph_id FROM paragraphs WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query paragraphs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var rec ParagraphRecord
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.DocID, &rec.ChapterID, &rec.ParagraphID); err != nil {
			return nil, fmt.Errorf("failed to scan paragraph: %w", err)
		}
		result[rec.ID] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

// Count returns the number of stored paragraphs.
func (r *ParagraphRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM paragraphs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count paragraphs: %w", err)
	}
	return n, nil
}
