//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tagtally/internal/app"
	"github.com/agenthands/tagtally/internal/core"
)

// TestLiveCount runs the full pipeline against the configured provider.
// It needs a key for the provider and two images:
//
//	TAGTALLY_LEGEND_IMAGE=legend.png TAGTALLY_PLAN_IMAGE=plan.png \
//	  go test -tags integration ./test/integration/
func TestLiveCount(t *testing.T) {
	_ = godotenv.Load("../../.env")

	legendPath := os.Getenv("TAGTALLY_LEGEND_IMAGE")
	planPath := os.Getenv("TAGTALLY_PLAN_IMAGE")
	if legendPath == "" || planPath == "" {
		t.Skip("Skipping integration test: TAGTALLY_LEGEND_IMAGE and TAGTALLY_PLAN_IMAGE not set")
	}

	cfg, err := app.LoadConfig(app.ConfigPath("../../config/config.toml"))
	if err != nil {
		t.Skipf("Skipping integration test: %v", err)
	}

	legend, err := os.ReadFile(legendPath)
	require.NoError(t, err)
	plan, err := os.ReadFile(planPath)
	require.NoError(t, err)

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	rep, err := a.Counter.Count(ctx, legend, plan)
	if core.IsParseError(err) {
		t.Fatalf("model answered with unparseable text: %v", err)
	}
	require.NoError(t, err)

	assert.NotEmpty(t, rep.LegendTags)
	require.Len(t, rep.Counts, len(rep.LegendTags))
	for i, c := range rep.Counts {
		assert.Equal(t, rep.LegendTags[i], c.Tag)
		assert.GreaterOrEqual(t, c.Count, 0)
	}
	t.Logf("legend tags: %v", rep.LegendTags)
	t.Logf("counts: %+v", rep.Counts)
}
