package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	llm_mocks "lexlocate/internal/llm/mocks"
	storage_mocks "lexlocate/internal/storage/mocks"
	"lexlocate/internal/vectorstore"
	vector_mocks "lexlocate/internal/vectorstore/mocks"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"tags stripped", "<p>The <b>operator</b> inspects</p>", "The operator inspects"},
		{"whitespace normalized", "a\n\t b   c", "a b c"},
		{"empty", "", ""},
		{"only tags", "<div><br/></div>", ""},
		{"attributes", `<span class="x">text</span>`, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanHTML(tt.input); got != tt.want {
				t.Errorf("CleanHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrepareFiltersShortAndEmptyParagraphs(t *testing.T) {
	doc := SourceDocument{
		ID: 3,
		Chapters: []SourceChapter{
			{
				ID: 7,
				Paragraphs: []SourceParagraph{
					{ID: 1, Content: ""},
					{ID: 2, Content: "<p>too short</p>"},
					{ID: 3, Content: "<p>a paragraph that is comfortably longer than the minimum threshold</p>"},
				},
			},
		},
	}

	prepared := Prepare(doc)
	if len(prepared) != 1 {
		t.Fatalf("Prepare() returned %d paragraphs, want 1", len(prepared))
	}
	p := prepared[0]
	if p.DocID != 3 || p.ChapterID != 7 || p.ParagraphID != 3 {
		t.Errorf("Prepare() coordinate = %+v, want doc 3 chapter 7 paragraph 3", p)
	}
	if strings.Contains(p.Text, "<") {
		t.Errorf("Prepare() text not cleaned: %q", p.Text)
	}
}

func TestIngestDocumentWritesAllThreeIndexes(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockParagraphStore(ctrl)
	keyword := storage_mocks.NewMockKeywordIndex(ctrl)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	vector := vector_mocks.NewMockVectorStore(ctrl)

	pipeline := NewPipeline(store, keyword, embedder, vector, "legal_docs_hybrid")
	ctx := context.Background()

	doc := SourceDocument{
		ID: 3,
		Chapters: []SourceChapter{{
			ID: 7,
			Paragraphs: []SourceParagraph{
				{ID: 100, Content: "<p>first paragraph with enough characters to pass the filter</p>"},
				{ID: 101, Content: "<p>second paragraph with enough characters to pass the filter</p>"},
			},
		}},
	}

	embedder.EXPECT().EmbedTexts(ctx, gomock.Len(2)).
		Return([][]float32{{0.1, 0.2}, {0.3, 0.4}}, nil)

	store.EXPECT().Insert(ctx, gomock.Any()).Return(int64(41), nil)
	store.EXPECT().Insert(ctx, gomock.Any()).Return(int64(42), nil)
	keyword.EXPECT().Index(ctx, int64(41), gomock.Any()).Return(nil)
	keyword.EXPECT().Index(ctx, int64(42), gomock.Any()).Return(nil)

	vector.EXPECT().Upsert(ctx, "legal_docs_hybrid", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, points []vectorstore.Point) error {
			if len(points) != 2 {
				t.Fatalf("Upsert() got %d points, want 2", len(points))
			}
			if points[0].ID != 41 || points[1].ID != 42 {
				t.Errorf("point ids = [%d, %d], want [41, 42]", points[0].ID, points[1].ID)
			}
			// Payload must mirror the paragraph coordinate for
			// cross-validation.
			meta := points[0].Meta
			if meta["doc_id"] != int64(3) || meta["chapter_id"] != int64(7) || meta["paragraph_id"] != int64(100) {
				t.Errorf("point payload = %+v, want doc 3 chapter 7 paragraph 100", meta)
			}
			return nil
		})

	n, err := pipeline.IngestDocument(ctx, doc)
	if err != nil {
		t.Fatalf("IngestDocument() error = %v", err)
	}
	if n != 2 {
		t.Errorf("IngestDocument() = %d, want 2", n)
	}
}

func TestIngestDocumentNothingIndexable(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockParagraphStore(ctrl)
	keyword := storage_mocks.NewMockKeywordIndex(ctrl)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	vector := vector_mocks.NewMockVectorStore(ctrl)

	pipeline := NewPipeline(store, keyword, embedder, vector, "legal_docs_hybrid")

	doc := SourceDocument{
		ID:       1,
		Chapters: []SourceChapter{{ID: 1, Paragraphs: []SourceParagraph{{ID: 1, Content: "<p>short</p>"}}}},
	}

	n, err := pipeline.IngestDocument(context.Background(), doc)
	if err != nil {
		t.Fatalf("IngestDocument() error = %v", err)
	}
	if n != 0 {
		t.Errorf("IngestDocument() = %d, want 0", n)
	}
}

func TestIngestDocumentEmbeddingFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storage_mocks.NewMockParagraphStore(ctrl)
	keyword := storage_mocks.NewMockKeywordIndex(ctrl)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	vector := vector_mocks.NewMockVectorStore(ctrl)

	pipeline := NewPipeline(store, keyword, embedder, vector, "legal_docs_hybrid")

	doc := SourceDocument{
		ID: 1,
		Chapters: []SourceChapter{{
			ID:         1,
			Paragraphs: []SourceParagraph{{ID: 1, Content: "<p>a paragraph long enough to be worth indexing here</p>"}},
		}},
	}

	embedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(nil, errors.New("embedder down"))

	if _, err := pipeline.IngestDocument(context.Background(), doc); err == nil {
		t.Error("IngestDocument() should fail when embedding fails")
	}
}
