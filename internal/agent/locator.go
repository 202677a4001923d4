package agent

import (
	"context"
	"fmt"
	"strings"

	"lexlocate/internal/contextutil"
	"lexlocate/internal/llm"
	"lexlocate/internal/retriever"
	"lexlocate/internal/storage"
)

// Locator runs the query-refinement loop: it lets the reasoning engine
// repeatedly call the hybrid retriever until it commits to a paragraph
// location, reports failure, or exhausts the iteration budget.
type Locator struct {
	chat          ChatClient
	retriever     retriever.Retriever
	topK          int
	maxIterations int
}

// NewLocator creates a new Locator.
// maxIterations bounds how many reasoning turns a single Locate call may
// consume; the engine cannot extend it.
func NewLocator(chat ChatClient, ret retriever.Retriever, topK, maxIterations int) *Locator {
	return &Locator{
		chat:          chat,
		retriever:     ret,
		topK:          topK,
		maxIterations: maxIterations,
	}
}

// Locate finds the paragraph justifying the task's correct answer.
//
// Error classes: ErrNotFound when the engine explicitly reports no
// justification exists, ErrIterationLimit when the budget runs out,
// ErrMalformedPayload when a terminal answer cannot be parsed, and plain
// errors for reasoning-engine transport faults.
func (l *Locator) Locate(ctx context.Context, task Task) (ParagraphLocation, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(task.Question) == "" {
		return ParagraphLocation{}, fmt.Errorf("task question must not be empty")
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: formatTask(task)},
	}

	logger.InfoContext(ctx, "locate loop started",
		"question", task.Question,
		"max_iterations", l.maxIterations,
	)

	for iteration := 0; iteration < l.maxIterations; iteration++ {
		// Cancellation point: honor caller timeouts at the iteration
		// boundary, never mid-call.
		if err := ctx.Err(); err != nil {
			return ParagraphLocation{}, err
		}

		reply, err := l.chat.ChatWithMessages(ctx, messages, llm.ChatParams{
			Temperature: 0,
			Stop:        []string{"\nObservation:"},
		})
		if err != nil {
			return ParagraphLocation{}, fmt.Errorf("reasoning engine call failed: %w", err)
		}

		turn := ParseTurn(reply)
		switch turn.Kind {
		case TurnFinalAnswer:
			loc, err := parseTerminalPayload(turn.Payload)
			if err != nil {
				logger.WarnContext(ctx, "terminal payload rejected", "iteration", iteration, "error", err)
				return ParagraphLocation{}, err
			}
			logger.InfoContext(ctx, "locate loop succeeded",
				"iteration", iteration,
				"doc_id", loc.DocID,
				"chapter_id", loc.ChapterID,
				"paragraph_id", loc.ParagraphID,
			)
			return loc, nil

		case TurnToolCall:
			logger.InfoContext(ctx, "tool call requested", "iteration", iteration, "query", turn.Query)
			observation := l.observe(ctx, turn.Query)
			messages = append(messages,
				llm.Message{Role: "assistant", Content: reply},
				llm.Message{Role: "user", Content: "Observation: " + observation},
			)

		case TurnUnparseable:
			logger.WarnContext(ctx, "unparseable turn", "iteration", iteration)
			messages = append(messages,
				llm.Message{Role: "assistant", Content: reply},
				llm.Message{Role: "user", Content: "Observation: Invalid format. Reply with either an Action/Action Input pair or a Final Answer."},
			)
		}
	}

	logger.WarnContext(ctx, "locate loop exhausted budget", "max_iterations", l.maxIterations)
	return ParagraphLocation{}, ErrIterationLimit
}

// observe runs the retrieval tool and formats the results for the engine.
// Retrieval faults are reported to the engine as an observation so it can
// retry with another query instead of killing the loop.
func (l *Locator) observe(ctx context.Context, query string) string {
	records, err := l.retriever.Retrieve(ctx, query, l.topK)
	if err != nil {
		return fmt.Sprintf("Search failed: %v. Try a different query.", err)
	}
	if len(records) == 0 {
		return "No relevant documents found for this query."
	}
	return formatRecords(records)
}

// formatRecords renders retrieved paragraphs the way the engine expects to
// read them: location first, then content.
func formatRecords(records []storage.ParagraphRecord) string {
	parts := make([]string, len(records))
	for i, rec := range records {
		parts[i] = fmt.Sprintf("Source (doc_id: %d, chapter_id: %d, paragraph_id: %d):\nContent: %s\n",
			rec.DocID, rec.ChapterID, rec.ParagraphID, rec.Text)
	}
	return strings.Join(parts, "\n---\n")
}
