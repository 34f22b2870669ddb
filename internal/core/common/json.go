package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GenerationFormatError means no parseable JSON object could be recovered
// from a generation response after fence stripping and substring extraction.
type GenerationFormatError struct {
	Reason string
	Raw    string
}

func (e *GenerationFormatError) Error() string {
	raw := e.Raw
	if len(raw) > 200 {
		raw = raw[:200] + "..."
	}
	return fmt.Sprintf("unparseable generation output: %s\nData: %s", e.Reason, raw)
}

// ParseJSON cleans and unmarshals a JSON object from a generation response
// into a type T. Models wrap JSON in markdown fences or surround it with
// commentary; recovery order is: strip fences, extract the first balanced
// object, unmarshal.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr, ok := ExtractObject(StripFences(response))
	if !ok {
		return zero, &GenerationFormatError{Reason: "no JSON object found in response", Raw: response}
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, &GenerationFormatError{Reason: err.Error(), Raw: jsonStr}
	}

	return result, nil
}

// StripFences removes a surrounding markdown code block, if present.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// ExtractObject returns the first balanced top-level JSON object in s.
// Braces inside string literals do not count toward nesting.
func ExtractObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
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
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
