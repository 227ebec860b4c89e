// Package structcall turns free-form model output into schema-validated
// structures. It owns JSON extraction, validation, the single repair
// round-trip, and bounded retries with backoff; callers get either a typed
// value or a CallError, never a raw transport error.
package structcall

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject extracts a JSON object substring from arbitrary model
// text. Strategies, in order:
//
//  1. Parse the whole text directly.
//  2. Slice from the first '{' to the last '}' and parse that.
//  3. Scan for the first balanced brace-delimited span that parses.
//
// The first strategy that yields valid JSON wins.
func ExtractJSONObject(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("empty text")
	}

	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start != -1 && end > start {
		candidate := trimmed[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	if candidate, ok := scanBalanced(trimmed); ok {
		return candidate, nil
	}
	return "", fmt.Errorf("unable to extract JSON object from text")
}

// scanBalanced walks the text looking for a balanced brace span that parses
// as JSON. Braces inside string literals are skipped.
func scanBalanced(text string) (string, bool) {
	depth := 0
	startIdx := -1
	inString := false
	escaped := false

	for idx, ch := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				startIdx = idx
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && startIdx != -1 {
				candidate := text[startIdx : idx+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				startIdx = -1 // keep scanning
			}
		}
	}
	return "", false
}
