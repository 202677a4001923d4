package agent

import "strings"

// TurnKind discriminates what the reasoning engine did in one turn.
type TurnKind int

const (
	// TurnUnparseable means the turn matched neither a tool request nor a
	// final answer.
	TurnUnparseable TurnKind = iota
	// TurnToolCall means the engine requested a retrieval with Query.
	TurnToolCall
	// TurnFinalAnswer means the engine emitted a terminal answer in Payload.
	TurnFinalAnswer
)

// Turn is the parsed form of one free-form reasoning-engine reply.
// Exactly one variant is produced per reply.
type Turn struct {
	Kind    TurnKind
	Query   string // set when Kind == TurnToolCall
	Payload string // set when Kind == TurnFinalAnswer
}

const (
	finalAnswerMarker = "Final Answer:"
	actionInputMarker = "Action Input:"
)

// ParseTurn classifies a raw reply. A reply containing both a final answer
// and a tool request is ambiguous and therefore unparseable.
func ParseTurn(text string) Turn {
	finalIdx := strings.Index(text, finalAnswerMarker)
	actionIdx := strings.Index(text, actionInputMarker)

	if finalIdx >= 0 && actionIdx >= 0 {
		return Turn{Kind: TurnUnparseable}
	}

	if finalIdx >= 0 {
		payload := strings.TrimSpace(text[finalIdx+len(finalAnswerMarker):])
		if payload == "" {
			return Turn{Kind: TurnUnparseable}
		}
		return Turn{Kind: TurnFinalAnswer, Payload: payload}
	}

	if actionIdx >= 0 {
		query := text[actionIdx+len(actionInputMarker):]
		// The query runs to the end of the line; anything after is
		// hallucinated continuation.
		if nl := strings.IndexByte(query, '\n'); nl >= 0 {
			query = query[:nl]
		}
		query = strings.TrimSpace(query)
		query = strings.Trim(query, "\"'`")
		if query == "" {
			return Turn{Kind: TurnUnparseable}
		}
		return Turn{Kind: TurnToolCall, Query: query}
	}

	return Turn{Kind: TurnUnparseable}
}
