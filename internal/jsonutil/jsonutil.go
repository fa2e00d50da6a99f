// Package jsonutil tolerantly extracts JSON from messy text. The marketplace
// API is fronted by proxies and gateways that occasionally wrap an error
// payload in an HTML page or plain-text banner; these helpers recover the
// embedded JSON object so the client can still surface the server's message.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strings"
)

// maxInputBytes caps the input size. Larger inputs are rejected rather than
// scanned, since a response body that big is never a real error payload.
const maxInputBytes = 1 << 20 // 1 MB

// Extract returns the first valid JSON object or array found in text,
// scanning for top-level { } and [ ] structures with delimiter matching.
// An error is returned when no valid JSON is present or the input exceeds
// the size cap.
func Extract(text string) (json.RawMessage, error) {
	if len(text) > maxInputBytes {
		return nil, fmt.Errorf("jsonutil: input exceeds %d bytes", maxInputBytes)
	}
	text = strings.TrimPrefix(text, "\xef\xbb\xbf")

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch != '{' && ch != '[' {
			continue
		}
		end := matchingDelimiter(text, i)
		if end < 0 {
			continue
		}
		candidate := text[i : end+1]
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}
	return nil, fmt.Errorf("jsonutil: no valid JSON found in text")
}

// ExtractInto extracts the first valid JSON value from text and unmarshals
// it into target.
func ExtractInto(text string, target any) error {
	raw, err := Extract(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("jsonutil: unmarshal failed: %w", err)
	}
	return nil
}

// matchingDelimiter returns the index of the closer that matches the opening
// delimiter ('{' → '}', '[' → ']') at position start, or -1 when unbalanced.
// Delimiters inside double-quoted strings and escape sequences are ignored.
func matchingDelimiter(text string, start int) int {
	openCh := text[start]
	var closeCh byte
	switch openCh {
	case '{':
		closeCh = '}'
	case '[':
		closeCh = ']'
	default:
		return -1
	}

	depth := 0
	inString := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch ch {
			case '\\':
				i++ // skip the escaped character
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
