package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lexlocate/internal/agent"
	"lexlocate/internal/contextutil"
)

// Locator runs one locate task. *agent.Locator satisfies it.
type Locator interface {
	Locate(ctx context.Context, task agent.Task) (agent.ParagraphLocation, error)
}

// QuestionDetail is the question part of a locate request.
type QuestionDetail struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"imageBase64,omitempty"`
}

// LocateRequest is the HTTP request payload for paragraph location.
type LocateRequest struct {
	Question       QuestionDetail `json:"question"`
	Answers        []string       `json:"answers"`
	CorrectAnswers []string       `json:"correctAnswers"`
}

// LocateResponse is the success payload: the coordinate of the justifying paragraph.
type LocateResponse struct {
	DocID       int64 `json:"doc_id"`
	ChapterID   int64 `json:"chapter_id"`
	ParagraphID int64 `json:"paragraph_id"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LocateHandler handles HTTP requests for paragraph location.
type LocateHandler struct {
	locator Locator
}

// NewLocateHandler creates a new LocateHandler.
func NewLocateHandler(locator Locator) *LocateHandler {
	return &LocateHandler{locator: locator}
}

// ServeHTTP handles POST /api/find_paragraph.
//
// A loop that explicitly reported "no justification" or ran out of budget is
// a 404: the system worked, the paragraph does not exist. A terminal payload
// the loop could not parse is a 500: the system malfunctioned.
func (h *LocateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req LocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Question.Text) == "" {
		logger.WarnContext(ctx, "empty question in request")
		h.writeError(w, http.StatusBadRequest, "Question text is required")
		return
	}
	if len(req.CorrectAnswers) == 0 {
		logger.WarnContext(ctx, "no correct answers in request")
		h.writeError(w, http.StatusBadRequest, "At least one correct answer is required")
		return
	}

	loc, err := h.locator.Locate(ctx, agent.Task{
		Question:       req.Question.Text,
		CorrectAnswers: req.CorrectAnswers,
	})
	if err != nil {
		h.handleLocateError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(LocateResponse{
		DocID:       loc.DocID,
		ChapterID:   loc.ChapterID,
		ParagraphID: loc.ParagraphID,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleLocateError maps agent errors to HTTP status codes.
func (h *LocateHandler) handleLocateError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case errors.Is(err, agent.ErrNotFound):
		logger.InfoContext(ctx, "justification not found", "error", err)
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, agent.ErrIterationLimit):
		logger.InfoContext(ctx, "iteration limit exceeded")
		h.writeError(w, http.StatusNotFound, "Agent failed to produce a result within the iteration limit")
	case errors.Is(err, agent.ErrMalformedPayload):
		logger.ErrorContext(ctx, "malformed agent output", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Agent produced a malformed output")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.WarnContext(ctx, "locate canceled", "error", err)
		h.writeError(w, http.StatusGatewayTimeout, "Request canceled or timed out")
	default:
		logger.ErrorContext(ctx, "locate failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *LocateHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
