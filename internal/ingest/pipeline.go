package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"lexlocate/internal/contextutil"
	"lexlocate/internal/llm"
	"lexlocate/internal/storage"
	"lexlocate/internal/vectorstore"
)

// minTextLength rejects cleaned paragraphs too short to justify anything
// (headings, page numbers, leftover markup).
const minTextLength = 30

// embedBatchSize bounds how many paragraphs are embedded and upserted per
// round trip.
const embedBatchSize = 64

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Pipeline indexes prepared paragraphs into SQLite (record store + FTS) and
// Qdrant under one shared id, so a paragraph is visible in all three or in
// none.
type Pipeline struct {
	store        storage.ParagraphStore
	keywordIndex storage.KeywordIndex
	embedder     llm.Embedder
	vectorStore  vectorstore.VectorStore
	collection   string
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	store storage.ParagraphStore,
	keywordIndex storage.KeywordIndex,
	embedder llm.Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		store:        store,
		keywordIndex: keywordIndex,
		embedder:     embedder,
		vectorStore:  vectorStore,
		collection:   collection,
	}
}

// IngestDirectory loads every *.json source document in dir (sorted by
// name) and indexes it. A file that fails to parse is skipped with a
// warning; an indexing failure aborts, since a partial write would leave
// the indexes inconsistent.
func (p *Pipeline) IngestDirectory(ctx context.Context, dir string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read source directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	total := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.WarnContext(ctx, "skipping unreadable source file", "file", name, "error", err)
			continue
		}

		var doc SourceDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			logger.WarnContext(ctx, "skipping malformed source file", "file", name, "error", err)
			continue
		}

		n, err := p.IngestDocument(ctx, doc)
		if err != nil {
			return total, fmt.Errorf("failed to ingest %s: %w", name, err)
		}
		logger.InfoContext(ctx, "document ingested", "file", name, "doc_id", doc.ID, "paragraphs", n)
		total += n
	}

	return total, nil
}

// IngestDocument prepares and indexes all paragraphs of one source document.
// Returns the number of paragraphs indexed.
func (p *Pipeline) IngestDocument(ctx context.Context, doc SourceDocument) (int, error) {
	prepared := Prepare(doc)
	if len(prepared) == 0 {
		return 0, nil
	}

	for start := 0; start < len(prepared); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(prepared) {
			end = len(prepared)
		}
		if err := p.indexBatch(ctx, prepared[start:end]); err != nil {
			return start, err
		}
	}

	return len(prepared), nil
}

// indexBatch embeds one batch and writes it to all three indexes.
func (p *Pipeline) indexBatch(ctx context.Context, batch []PreparedParagraph) error {
	texts := make([]string, len(batch))
	for i, para := range batch {
		texts[i] = para.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed batch: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("expected %d embeddings, got %d", len(batch), len(embeddings))
	}

	points := make([]vectorstore.Point, 0, len(batch))
	for i, para := range batch {
		id, err := p.store.Insert(ctx, &storage.ParagraphRecord{
			Text:        para.Text,
			DocID:       para.DocID,
			ChapterID:   para.ChapterID,
			ParagraphID: para.ParagraphID,
		})
		if err != nil {
			return fmt.Errorf("failed to store paragraph: %w", err)
		}

		if err := p.keywordIndex.Index(ctx, id, para.Text); err != nil {
			return fmt.Errorf("failed to index paragraph %d: %w", id, err)
		}

		// Point id mirrors the SQLite id; the payload duplicates the
		// location so index drift can be cross-checked.
		points = append(points, vectorstore.Point{
			ID:  id,
			Vec: embeddings[i],
			Meta: map[string]any{
				"doc_id":       para.DocID,
				"chapter_id":   para.ChapterID,
				"paragraph_id": para.ParagraphID,
			},
		})
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}

	return nil
}

// Prepare cleans a source document's paragraphs and drops the ones with no
// indexable content.
func Prepare(doc SourceDocument) []PreparedParagraph {
	var prepared []PreparedParagraph
	for _, chapter := range doc.Chapters {
		for _, para := range chapter.Paragraphs {
			text := CleanHTML(para.Content)
			if len([]rune(text)) < minTextLength {
				continue
			}
			prepared = append(prepared, PreparedParagraph{
				Text:        text,
				DocID:       doc.ID,
				ChapterID:   chapter.ID,
				ParagraphID: para.ID,
			})
		}
	}
	return prepared
}

// CleanHTML strips HTML tags and normalizes whitespace to single spaces.
func CleanHTML(raw string) string {
	if raw == "" {
		return ""
	}
	stripped := htmlTagPattern.ReplaceAllString(raw, "")
	return strings.Join(strings.Fields(stripped), " ")
}
