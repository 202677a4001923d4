package ingest

// SourceDocument is the raw-document JSON shape delivered by the upstream
// cleaning pipeline: one legal document with its chapters and paragraphs.
type SourceDocument struct {
	ID       int64           `json:"id"`
	Chapters []SourceChapter `json:"chapters"`
}

// SourceChapter is one chapter of a source document.
type SourceChapter struct {
	ID         int64             `json:"id"`
	Paragraphs []SourceParagraph `json:"paragraphs"`
}

// SourceParagraph is one paragraph of a source chapter. Content may carry
// HTML markup.
type SourceParagraph struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// PreparedParagraph is a cleaned paragraph ready for indexing.
type PreparedParagraph struct {
	Text        string
	DocID       int64
	ChapterID   int64
	ParagraphID int64
}
