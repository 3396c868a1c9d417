package common

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseError means the model answered but its text is not a JSON array of
// strings. Raw is the offending text, verbatim, for a human to inspect.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable extraction (%s): %q", e.Reason, e.Raw)
}

// ParseTokens interprets a model response as a JSON array of strings.
// It tolerates common LLM quirks: surrounding whitespace, markdown code fences
// and prose before or after the array. Anything else is a *ParseError.
func ParseTokens(response string) ([]string, error) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return nil, &ParseError{Raw: response, Reason: "empty response"}
	}

	for _, candidate := range candidates(trimmed) {
		if !gjson.Valid(candidate) {
			continue
		}
		// Valid JSON of the wrong shape is an answer, not noise: do not go
		// digging for an array inside it.
		tokens, reason := parseStringArray(candidate)
		if reason != "" {
			return nil, &ParseError{Raw: response, Reason: reason}
		}
		return tokens, nil
	}

	return nil, &ParseError{Raw: response, Reason: "not valid JSON"}
}

// candidates lists the substrings worth trying, most literal first.
func candidates(s string) []string {
	out := []string{s}
	if stripped := stripCodeFences(s); stripped != "" && stripped != s {
		out = append(out, stripped)
	}

	// Find first '[' and last ']'
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start != -1 && end > start {
		if span := s[start : end+1]; span != s {
			out = append(out, span)
		}
	}
	return out
}

func parseStringArray(s string) ([]string, string) {
	result := gjson.Parse(s)
	if !result.IsArray() {
		return nil, fmt.Sprintf("expected a JSON array, got %s", result.Type)
	}

	tokens := make([]string, 0, len(result.Array()))
	bad := ""
	result.ForEach(func(_, v gjson.Result) bool {
		if v.Type != gjson.String {
			bad = fmt.Sprintf("array element %s is not a string", v.Raw)
			return false
		}
		tokens = append(tokens, v.Str)
		return true
	})
	if bad != "" {
		return nil, bad
	}
	return tokens, ""
}

func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return ""
	}

	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop the opening fence line (which may carry a language tag) and the
	// closing fence if present.
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
