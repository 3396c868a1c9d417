// Package reconcile counts legend tags in a sequence of plan tokens.
package reconcile

import "github.com/agenthands/tagtally/internal/core/model"

// Count returns one TagCount per legend tag, in legend order. A tag's count
// is the number of plan tokens byte-for-byte equal to it: no trimming, no
// case folding. Repeated legend tags produce repeated, identical rows.
func Count(legendTags, planTokens []string) []model.TagCount {
	freq := make(map[string]int, len(planTokens))
	for _, tok := range planTokens {
		freq[tok]++
	}

	counts := make([]model.TagCount, 0, len(legendTags))
	for _, tag := range legendTags {
		counts = append(counts, model.TagCount{Tag: tag, Count: freq[tag]})
	}
	return counts
}
