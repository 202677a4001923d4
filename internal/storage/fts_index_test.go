package storage

import (
	"context"
	"database/sql"
	"testing"
)

func newTestFTS(t *testing.T) (*FTSIndex, *sql.DB) {
	t.Helper()
	tmpDir := t.TempDir()
	db, err := New(tmpDir + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewFTSIndex(db), db
}

func TestFTSIndex_IndexAndSearch(t *testing.T) {
	index, _ := newTestFTS(t)
	ctx := context.Background()

	if err := index.Index(ctx, 1, "an operator with group III may perform the inspection alone"); err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if err := index.Index(ctx, 2, "completely unrelated paragraph about archiving records"); err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	hits, err := index.Search(ctx, "group III", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("Search() returned %d hits, want 1", len(hits))
	}
	if hits[0].ID != 1 {
		t.Errorf("Search() hit id = %d, want 1", hits[0].ID)
	}
	if hits[0].Rank != 0 {
		t.Errorf("Search() hit rank = %d, want 0", hits[0].Rank)
	}
}

func TestFTSIndex_ReindexReplacesText(t *testing.T) {
	index, _ := newTestFTS(t)
	ctx := context.Background()

	if err := index.Index(ctx, 1, "original wording about inspections"); err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if err := index.Index(ctx, 1, "replacement wording about certification"); err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	hits, err := index.Search(ctx, "inspections", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Search() for replaced text returned %d hits, want 0", len(hits))
	}

	hits, err = index.Search(ctx, "certification", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 1 || hits[0].ID != 1 {
		t.Errorf("Search() for new text = %+v, want one hit with id 1", hits)
	}
}

func TestFTSIndex_PunctuationOnlyQuery(t *testing.T) {
	index, _ := newTestFTS(t)
	ctx := context.Background()

	if err := index.Index(ctx, 1, "some indexed paragraph"); err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	// Reserved FTS5 syntax must never reach the MATCH expression.
	for _, query := range []string{`"*()?`, "!!!", "---", `" OR "`} {
		hits, err := index.Search(ctx, query, 5)
		if err != nil {
			t.Errorf("Search(%q) error = %v, want nil", query, err)
		}
		if len(hits) != 0 {
			t.Errorf("Search(%q) returned %d hits, want 0", query, len(hits))
		}
	}
}

func TestFTSIndex_OperatorBarewordQueries(t *testing.T) {
	index, _ := newTestFTS(t)
	ctx := context.Background()

	if err := index.Index(ctx, 1, "some indexed paragraph"); err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	// AND, OR, and NOT are FTS5 operators; as leading, trailing, or lone
	// tokens they must be matched as plain terms, never parsed as syntax.
	for _, query := range []string{"OR", "AND", "NOT paragraph", "paragraph AND"} {
		if _, err := index.Search(ctx, query, 5); err != nil {
			t.Errorf("Search(%q) error = %v, want nil", query, err)
		}
	}

	hits, err := index.Search(ctx, "paragraph NOT", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Search() returned %d hits, want 0 (indexed text has no token %q)", len(hits), "not")
	}
}

func TestFTSIndex_QueryWithEmbeddedPunctuation(t *testing.T) {
	index, _ := newTestFTS(t)
	ctx := context.Background()

	if err := index.Index(ctx, 1, "voltage must not exceed 1000 volts"); err != nil {
		t.Fatalf("Index() error = %v", err)
	}

	hits, err := index.Search(ctx, `voltage (1000)?`, 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 1 || hits[0].ID != 1 {
		t.Errorf("Search() = %+v, want one hit with id 1", hits)
	}
}

func TestFTSIndex_SearchLimitsToK(t *testing.T) {
	index, _ := newTestFTS(t)
	ctx := context.Background()

	for id := int64(1); id <= 10; id++ {
		if err := index.Index(ctx, id, "repeated matching paragraph text"); err != nil {
			t.Fatalf("Index() error = %v", err)
		}
	}

	hits, err := index.Search(ctx, "matching", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 3 {
		t.Errorf("Search() returned %d hits, want 3", len(hits))
	}
	for i, hit := range hits {
		if hit.Rank != i {
			t.Errorf("hit %d has rank %d, want %d", i, hit.Rank, i)
		}
	}
}

func TestFTSIndex_SearchRejectsNonPositiveK(t *testing.T) {
	index, _ := newTestFTS(t)

	if _, err := index.Search(context.Background(), "query", 0); err == nil {
		t.Error("Search() with k=0 should return error")
	}
}

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain words", "group III", `"group" "III"`},
		{"reserved syntax", `"group" OR (III)*`, `"group" "OR" "III"`},
		{"only punctuation", `"*()?!`, ""},
		{"cyrillic preserved", "единоличный осмотр", `"единоличный" "осмотр"`},
		{"digits preserved", "1000 volts", `"1000" "volts"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeQuery(tt.input); got != tt.want {
				t.Errorf("sanitizeQuery(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
