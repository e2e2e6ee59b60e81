package planner

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNoJSONObject = errors.New("no JSON object in response")

// decodeResponse parses the raw text reply from the generation service.
// The whole reply is tried as JSON first; otherwise the first complete
// brace-delimited object is extracted, since the service may wrap the JSON
// in prose or markdown fences.
func decodeResponse(text string) (rawPlan, error) {
	var plan rawPlan
	trimmed := strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(trimmed), &plan); err == nil {
		return plan, nil
	}

	object, ok := extractJSONObject(trimmed)
	if !ok {
		return rawPlan{}, errNoJSONObject
	}
	if err := json.Unmarshal([]byte(object), &plan); err != nil {
		return rawPlan{}, err
	}
	return plan, nil
}

// extractJSONObject scans for the first balanced {...} object, tracking
// string literals and escapes so braces inside values do not confuse the
// depth count.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
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
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
