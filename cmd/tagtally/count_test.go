package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		countCmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tagtally dev")
	assert.Contains(t, out, "Commit:")
}

func TestCountRejectsUnknownOutputFormat(t *testing.T) {
	_, err := execute(t, "count", "--legend", "l.png", "--plan", "p.png", "-o", "csv")
	assert.EqualError(t, err, "unknown output format: csv (want table, json or yaml)")
}

func TestCountReportsUnreadableLegend(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "legend.png")
	_, err := execute(t, "count", "--legend", missing, "--plan", "p.png")
	assert.ErrorContains(t, err, "failed to read legend")
}

func TestCountRequiresBothImages(t *testing.T) {
	_, err := execute(t, "count", "--legend", "l.png")
	assert.ErrorContains(t, err, `required flag(s) "plan" not set`)
}
