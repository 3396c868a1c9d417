package model

// TagCount is the number of plan tokens exactly equal to Tag.
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count" binding:"min=0"`
}

// ExtractionResult is a parsed model response: the ordered tokens plus the
// raw text they came from.
type ExtractionResult struct {
	Tokens []string `json:"tokens"`
	Raw    string   `json:"-"`
}

// Report is the outcome of one pipeline run. It lives for one request only.
type Report struct {
	LegendTags []string   `json:"legend_tags" yaml:"legend_tags"`
	PlanTokens []string   `json:"-" yaml:"-"`
	Counts     []TagCount `json:"counts" yaml:"counts"`
}

// PlanSample returns at most n plan tokens for display.
func (r *Report) PlanSample(n int) []string {
	if len(r.PlanTokens) <= n {
		return r.PlanTokens
	}
	return r.PlanTokens[:n]
}
