package reconcile

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tagtally/internal/core/model"
)

func TestCountExample(t *testing.T) {
	legend := []string{"F-01", "F-02", "X1"}
	plan := []string{"F-01", "F-01", "X1", "F-03", "f-01"}

	got := Count(legend, plan)

	assert.Equal(t, []model.TagCount{
		{Tag: "F-01", Count: 2},
		{Tag: "F-02", Count: 0},
		{Tag: "X1", Count: 1},
	}, got)
}

func TestCountEmptyLegend(t *testing.T) {
	got := Count(nil, []string{"F-01"})
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Count([]string{}, nil))
}

func TestCountEmptyPlan(t *testing.T) {
	got := Count([]string{"A", "B"}, nil)
	assert.Equal(t, []model.TagCount{{Tag: "A"}, {Tag: "B"}}, got)
}

func TestCountDuplicateLegendTags(t *testing.T) {
	got := Count([]string{"X1", "F-01", "X1"}, []string{"X1", "X1", "X1"})
	assert.Equal(t, []model.TagCount{
		{Tag: "X1", Count: 3},
		{Tag: "F-01", Count: 0},
		{Tag: "X1", Count: 3},
	}, got)
}

func TestCountIsExact(t *testing.T) {
	legend := []string{"F-01", " F-01", "F-01 ", "f-01", ""}
	plan := []string{"F-01", " F-01", "F-01 ", "F-01 ", "", "F\u200b-01"}

	got := Count(legend, plan)

	assert.Equal(t, []model.TagCount{
		{Tag: "F-01", Count: 1},
		{Tag: " F-01", Count: 1},
		{Tag: "F-01 ", Count: 2},
		{Tag: "f-01", Count: 0},
		{Tag: "", Count: 1},
	}, got)
}

// naiveCount is the quadratic definition Count must agree with.
func naiveCount(legend, plan []string) []model.TagCount {
	out := []model.TagCount{}
	for _, tag := range legend {
		n := 0
		for _, tok := range plan {
			if tok == tag {
				n++
			}
		}
		out = append(out, model.TagCount{Tag: tag, Count: n})
	}
	return out
}

func TestCountMatchesDefinition(t *testing.T) {
	alphabet := []string{"F-01", "F-02", "f-01", "X1", "X2", "D-01", " X1", "F-08A"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		legend := make([]string, rng.Intn(6))
		for j := range legend {
			legend[j] = alphabet[rng.Intn(len(alphabet))]
		}
		plan := make([]string, rng.Intn(40))
		for j := range plan {
			plan[j] = alphabet[rng.Intn(len(alphabet))]
		}

		got := Count(legend, plan)
		require.Len(t, got, len(legend), fmt.Sprintf("case %d", i))
		for j, tc := range got {
			assert.Equal(t, legend[j], tc.Tag)
		}
		assert.Equal(t, naiveCount(legend, plan), got, fmt.Sprintf("case %d", i))

		assert.Equal(t, got, Count(legend, plan), "idempotent")
	}
}

func TestCountDoesNotMutateInputs(t *testing.T) {
	legend := []string{"B", "A"}
	plan := []string{"A", "B", "A"}

	Count(legend, plan)

	assert.Equal(t, []string{"B", "A"}, legend)
	assert.Equal(t, []string{"A", "B", "A"}, plan)
}

func BenchmarkCount(b *testing.B) {
	legend := make([]string, 200)
	for i := range legend {
		legend[i] = fmt.Sprintf("F-%03d", i)
	}
	plan := make([]string, 20000)
	for i := range plan {
		plan[i] = legend[i%len(legend)]
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Count(legend, plan)
	}
}
