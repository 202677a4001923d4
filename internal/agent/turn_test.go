package agent

import "testing"

func TestParseTurn(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TurnKind
		query   string
		payload string
	}{
		{
			name:  "tool call",
			input: "Thought: I should search for the inspection rule.\nAction: hybrid_search\nAction Input: единоличный осмотр группа III",
			want:  TurnToolCall,
			query: "единоличный осмотр группа III",
		},
		{
			name:  "tool call with quoted input",
			input: "Action: hybrid_search\nAction Input: \"group III inspection\"",
			want:  TurnToolCall,
			query: "group III inspection",
		},
		{
			name:  "tool call ignores trailing lines",
			input: "Action: hybrid_search\nAction Input: voltage limits\nObservation: made up",
			want:  TurnToolCall,
			query: "voltage limits",
		},
		{
			name:    "final answer",
			input:   "Thought: found it.\nFinal Answer: {\"doc_id\": 9, \"chapter_id\": 5, \"paragraph_id\": 434408}",
			want:    TurnFinalAnswer,
			payload: "{\"doc_id\": 9, \"chapter_id\": 5, \"paragraph_id\": 434408}",
		},
		{
			name:  "both markers is ambiguous",
			input: "Action Input: query\nFinal Answer: {\"error\": \"x\"}",
			want:  TurnUnparseable,
		},
		{
			name:  "free text",
			input: "I am not sure what to do next.",
			want:  TurnUnparseable,
		},
		{
			name:  "empty final answer",
			input: "Final Answer:",
			want:  TurnUnparseable,
		},
		{
			name:  "empty action input",
			input: "Action: hybrid_search\nAction Input:   \n",
			want:  TurnUnparseable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn := ParseTurn(tt.input)
			if turn.Kind != tt.want {
				t.Fatalf("ParseTurn() kind = %v, want %v", turn.Kind, tt.want)
			}
			if tt.query != "" && turn.Query != tt.query {
				t.Errorf("ParseTurn() query = %q, want %q", turn.Query, tt.query)
			}
			if tt.payload != "" && turn.Payload != tt.payload {
				t.Errorf("ParseTurn() payload = %q, want %q", turn.Payload, tt.payload)
			}
		})
	}
}
