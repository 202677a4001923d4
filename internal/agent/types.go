package agent

import (
	"context"
	"errors"

	"lexlocate/internal/llm"
)

// Task is the input to one locate run: the question under audit and the
// answer(s) known to be correct.
type Task struct {
	Question       string
	CorrectAnswers []string
}

// ParagraphLocation is the coordinate of the paragraph justifying the answer.
type ParagraphLocation struct {
	DocID       int64 `json:"doc_id"`
	ChapterID   int64 `json:"chapter_id"`
	ParagraphID int64 `json:"paragraph_id"`
}

// ChatClient is the reasoning engine driving the refinement loop.
// *llm.Client satisfies it.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

var (
	// ErrIterationLimit is returned when the iteration budget is exhausted
	// before the reasoning engine reaches a terminal answer.
	ErrIterationLimit = errors.New("iteration limit exceeded")

	// ErrNotFound is returned when the reasoning engine explicitly reports
	// that no justifying paragraph exists.
	ErrNotFound = errors.New("justification paragraph not found")

	// ErrMalformedPayload is returned when a terminal answer cannot be
	// parsed into either a location or an explicit failure. Distinct from
	// ErrNotFound: the engine malfunctioned, it did not report absence.
	ErrMalformedPayload = errors.New("malformed terminal payload")
)
