package agent

import (
	"encoding/json"
	"fmt"
)

// parseTerminalPayload turns a final-answer payload into a location or an
// explicit failure. The payload may be wrapped in markdown fences or other
// prose; only the first balanced JSON object is considered. Two objects in
// one payload is ambiguous and reported as malformed rather than guessing
// which one was intended.
func parseTerminalPayload(payload string) (ParagraphLocation, error) {
	obj, err := extractJSONObject(payload)
	if err != nil {
		return ParagraphLocation{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return ParagraphLocation{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if raw, ok := fields["error"]; ok {
		var reason string
		if err := json.Unmarshal(raw, &reason); err != nil || reason == "" {
			reason = "no reason given"
		}
		return ParagraphLocation{}, fmt.Errorf("%w: %s", ErrNotFound, reason)
	}

	var loc ParagraphLocation
	required := map[string]*int64{
		"doc_id":       &loc.DocID,
		"chapter_id":   &loc.ChapterID,
		"paragraph_id": &loc.ParagraphID,
	}
	for key, dst := range required {
		raw, ok := fields[key]
		if !ok {
			return ParagraphLocation{}, fmt.Errorf("%w: missing field %q", ErrMalformedPayload, key)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return ParagraphLocation{}, fmt.Errorf("%w: field %q is not an integer", ErrMalformedPayload, key)
		}
	}

	return loc, nil
}

// extractJSONObject scans for the first balanced {...} substring, skipping
// brace characters inside JSON strings. It fails if no object is present or
// if a second complete object follows the first.
func extractJSONObject(s string) (string, error) {
	first, rest, ok := scanObject(s)
	if !ok {
		return "", fmt.Errorf("%w: no JSON object in payload", ErrMalformedPayload)
	}
	if _, _, ok := scanObject(rest); ok {
		return "", fmt.Errorf("%w: multiple JSON objects in payload", ErrMalformedPayload)
	}
	return first, nil
}

// scanObject returns the first balanced JSON object in s and the remainder
// of the string after it.
func scanObject(s string) (obj string, rest string, found bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], s[i+1:], true
				}
			}
		}
	}

	return "", "", false
}
