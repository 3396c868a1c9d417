package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokens(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []string
	}{
		{"plain array", `["F-01", "F-02", "X1"]`, []string{"F-01", "F-02", "X1"}},
		{"duplicates kept", `["F-01","F-01","f-01"]`, []string{"F-01", "F-01", "f-01"}},
		{"whitespace kept inside tokens", `[" F-01", "F-01 "]`, []string{" F-01", "F-01 "}},
		{"empty array", `[]`, []string{}},
		{"escaped", `["A\"B", "é"]`, []string{`A"B`, "é"}},
		{"surrounding whitespace", "\n  [\"X1\"]  \n", []string{"X1"}},
		{"code fence", "```json\n[\"F-01\", \"D-02\"]\n```", []string{"F-01", "D-02"}},
		{"prose around array", "Sure! Here they are:\n[\"F-08A\", \"F-08B\"]\nLet me know.", []string{"F-08A", "F-08B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTokens(tt.response)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTokensFailures(t *testing.T) {
	tests := []struct {
		name     string
		response string
		reason   string
	}{
		{"prose only", "Here are the tags: F-01, F-02", "not valid JSON"},
		{"empty", "   ", "empty response"},
		{"object", `{"tags": ["F-01"]}`, "expected a JSON array"},
		{"numbers", `["F-01", 2]`, "array element 2 is not a string"},
		{"null element", `["F-01", null]`, "array element null is not a string"},
		{"nested", `[["F-01"]]`, "is not a string"},
		{"null", `null`, "expected a JSON array"},
		{"truncated", `["F-01", "F-0`, "not valid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTokens(tt.response)
			assert.Nil(t, got)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.response, pe.Raw)
			assert.Contains(t, pe.Reason, tt.reason)
		})
	}
}

func TestParseErrorCarriesRawText(t *testing.T) {
	_, err := ParseTokens("Here are the tags: F-01, F-02")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Here are the tags: F-01, F-02", pe.Raw)
	assert.Equal(t, `unparseable extraction (not valid JSON): "Here are the tags: F-01, F-02"`, err.Error())
}
