package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/agenthands/tagtally/internal/core/model"
)

// OutputFormat selects how a Summary is printed by the CLI.
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// Summary is the shareable part of a Report. Plan tokens are reduced to a count.
type Summary struct {
	LegendTags     []string         `json:"legend_tags" yaml:"legend_tags"`
	PlanTokenCount int              `json:"plan_token_count" yaml:"plan_token_count"`
	Counts         []model.TagCount `json:"counts" yaml:"counts"`
}

func Summarize(r *model.Report) Summary {
	return Summary{
		LegendTags:     r.LegendTags,
		PlanTokenCount: len(r.PlanTokens),
		Counts:         r.Counts,
	}
}

// ParseOutputFormat accepts table, json or yaml.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (want table, json or yaml)", s)
	}
}

// OutputTo writes s to w in the given format.
func OutputTo(w io.Writer, format OutputFormat, s Summary) error {
	switch format {
	case OutputFormatTable:
		return WriteTable(w, s.Counts)
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(s)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
