package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/problemgen"
)

// resetFlags restores every flag to its default; cobra keeps parsed values
// on the package-level commands between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MATHGEN_DB", filepath.Join(t.TempDir(), "mathgen.db"))
	t.Setenv("MATHGEN_SEED", "")
	t.Setenv("MATHGEN_TEMPLATES", "")
	t.Setenv("MATHGEN_LOG_LEVEL", "error")
	t.Setenv("MATHGEN_LOG_FORMAT", "")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	out, err := run(t, "", "generate", "--grade", "3", "--category", "arithmetic", "--level", "1", "--count", "3", "--seed", "s1")
	require.NoError(t, err)

	var qs []problemgen.GeneratedQuestion
	require.NoError(t, json.Unmarshal([]byte(out), &qs))
	require.Len(t, qs, 3)
	for _, q := range qs {
		assert.Equal(t, "arithmetic", q.Category)
		assert.Equal(t, 1, q.Difficulty)
		assert.Len(t, q.Options, 4)
		raw, err := json.Marshal(q)
		require.NoError(t, err)
		assert.NoError(t, problemgen.ValidateJSON(problemgen.QuestionSchema, raw))
	}
}

func TestGenerateCommand_SeedIsReproducible(t *testing.T) {
	args := []string{"generate", "--grade", "4", "--category", "fractions", "--level", "3", "--count", "4", "--seed", "repeat"}

	contents := func(out string) []string {
		var qs []problemgen.GeneratedQuestion
		require.NoError(t, json.Unmarshal([]byte(out), &qs))
		var cs []string
		for _, q := range qs {
			cs = append(cs, q.Content+"|"+q.CorrectAnswer)
		}
		return cs
	}

	first, err := run(t, "", args...)
	require.NoError(t, err)
	second, err := run(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, contents(first), contents(second))
}

func TestGenerateCommand_UnknownScope(t *testing.T) {
	out, err := run(t, "", "generate", "--grade", "12", "--category", "calculus", "--level", "1", "--count", "3")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestGenerateCommand_MissingFlag(t *testing.T) {
	_, err := run(t, "", "generate", "--grade", "3", "--level", "1")
	assert.ErrorContains(t, err, "category")
}

func TestAdaptiveCommand(t *testing.T) {
	out, err := run(t, "", "adaptive", "--grade", "3", "--category", "arithmetic", "--level", "-5", "--seed", "a")
	require.NoError(t, err)

	var q problemgen.GeneratedQuestion
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, 1, q.Difficulty, "level clamps to 1")

	out, err = run(t, "", "adaptive", "--grade", "3", "--category", "arithmetic", "--level", "42")
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))
}

func TestStatsCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "stats.db")

	_, err := run(t, "", "stats", "--db", db)
	require.NoError(t, err)

	_, err = run(t, "", "generate", "--db", db, "--grade", "3", "--category", "arithmetic", "--level", "1", "--count", "2")
	require.NoError(t, err)
	_, err = run(t, "", "generate", "--db", db, "--grade", "3", "--category", "arithmetic", "--level", "1", "--no-log")
	require.NoError(t, err)

	out, err := run(t, "", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Runs:        1")
	assert.Contains(t, out, "2 produced / 2 requested")
	assert.Contains(t, out, "arithmetic")
}

func TestTemplatesListCommand(t *testing.T) {
	out, err := run(t, "", "templates", "list", "--grade", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "g3-add-2digit")
	assert.NotContains(t, out, "g5-")

	_, err = run(t, "", "templates", "list", "--category", "astronomy")
	assert.Error(t, err)
}

func TestTemplatesLintCommand(t *testing.T) {
	out, err := run(t, "", "templates", "lint", "--samples", "3")
	require.NoError(t, err)
	assert.Contains(t, out, " 0 errors")
}

func TestPreviewCommand(t *testing.T) {
	out, err := run(t, "A\n\n", "preview", "--grade", "3", "--category", "arithmetic", "--level", "1", "--count", "2", "--seed", "p")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 1/2")
	assert.Contains(t, out, "(skipped)")
	assert.Contains(t, out, "Summary:")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mathgen (devel)", strings.TrimSpace(out))
}

func TestBadLogLevelFlag(t *testing.T) {
	_, err := run(t, "", "version", "--log-level", "chatty")
	assert.ErrorContains(t, err, "unknown log level")
}
