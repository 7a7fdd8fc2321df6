package lint

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathgen/internal/catalog"
	pg "github.com/abhisek/mathgen/internal/problemgen"
)

func sumTemplate(id string) pg.Template {
	return pg.Template{
		ID:        id,
		Grade:     3,
		Category:  "arithmetic",
		Level:     2,
		ConceptID: "addition",
		Pattern:   "{a} + {b} = ?",
		Ranges:    map[string]pg.Range{"a": {Min: 10, Max: 99}, "b": {Min: 10, Max: 99}},
		Answer:    func(p pg.Params) pg.Answer { return pg.Int(p["a"] + p["b"]) },
		Distractors: []pg.DistractorFunc{
			func(p pg.Params, _ pg.Answer) (pg.Answer, error) { return pg.Int(p["a"] - p["b"]), nil },
		},
	}
}

func findingKinds(r Result) []string {
	var kinds []string
	for _, f := range r.Findings {
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

func TestRun_CleanTemplate(t *testing.T) {
	report, err := Run(context.Background(), []pg.Template{sumTemplate("add")}, Options{Samples: 10, Seed: "t"})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, "add", res.TemplateID)
	assert.Equal(t, 10, res.Samples)
	assert.Equal(t, 10, res.Produced)
	assert.Empty(t, res.Findings)
	assert.True(t, res.OK())
	assert.Equal(t, 0, report.Count(SeverityError))
	assert.Equal(t, 0, report.Count(SeverityWarning))
}

func TestRun_Findings(t *testing.T) {
	degraded := sumTemplate("degraded")
	degraded.Constraint = func(pg.Params) bool { return false }

	panics := sumTemplate("panics")
	panics.Answer = func(pg.Params) pg.Answer { panic("boom") }

	wrong := sumTemplate("wrong")
	wrong.Answer = func(p pg.Params) pg.Answer { return pg.Int(p["a"] + p["b"] + 1) }

	zero := sumTemplate("zero-den")
	zero.Answer = func(p pg.Params) pg.Answer { return pg.Frac(p["a"], 0) }

	repeat := sumTemplate("repeat")
	repeat.Ranges = map[string]pg.Range{"a": {Min: 4, Max: 4}, "b": {Min: 5, Max: 5}}

	parity := pg.Template{
		ID:       "parity",
		Grade:    3,
		Category: "number_sense",
		Level:    1,
		Pattern:  "Is {n} even or odd?",
		Ranges:   map[string]pg.Range{"n": {Min: 1, Max: 1000}},
		Answer: func(p pg.Params) pg.Answer {
			if p["n"]%2 == 0 {
				return pg.Text("even")
			}
			return pg.Text("odd")
		},
	}

	templates := []pg.Template{degraded, panics, wrong, zero, repeat, parity}
	report, err := Run(context.Background(), templates, Options{Samples: 8, Concurrency: 2})
	require.NoError(t, err)
	require.Len(t, report.Results, len(templates))

	tests := []struct {
		id   string
		kind string
		ok   bool
	}{
		{"degraded", KindDegraded, true},
		{"panics", KindAssembly, false},
		{"wrong", KindValidator, false},
		{"zero-den", KindAssembly, false},
		{"repeat", KindDuplicates, true},
		{"parity", KindPool, true},
	}
	for i, tc := range tests {
		res := report.Results[i]
		assert.Equal(t, tc.id, res.TemplateID, "results keep input order")
		assert.Contains(t, findingKinds(res), tc.kind, tc.id)
		assert.Equal(t, tc.ok, res.OK(), tc.id)
	}

	deg := report.Results[0].Findings[0]
	assert.Equal(t, 8, deg.Count)
	assert.Equal(t, SeverityWarning, deg.Severity)

	assert.Contains(t, report.Results[1].Findings[0].Message, "panicked")
	assert.Equal(t, 0, report.Results[1].Produced)
	assert.Contains(t, report.Results[2].Findings[0].Message, "math-check")

	rep := report.Results[4]
	assert.Equal(t, 1, rep.Unique)
	assert.Equal(t, 8, rep.Produced)

	assert.Equal(t, 3, report.Count(SeverityError))
}

func TestRun_Deterministic(t *testing.T) {
	templates := []pg.Template{sumTemplate("a"), sumTemplate("b")}
	opts := Options{Samples: 15, Seed: "fixed"}

	first, err := Run(context.Background(), templates, opts)
	require.NoError(t, err)
	second, err := Run(context.Background(), templates, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	templates := make([]pg.Template, 5)
	for i := range templates {
		templates[i] = sumTemplate("t" + strconv.Itoa(i))
	}
	_, err := Run(ctx, templates, Options{Concurrency: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, 20, o.Samples)
	assert.Positive(t, o.Concurrency)
	assert.InDelta(t, 0.5, o.MaxDuplicateRatio, 1e-9)
	require.NotNil(t, o.Config)
	names := []string{}
	for _, v := range o.Config.Validators {
		names = append(names, v.Name())
	}
	assert.Equal(t, []string{"options", "structural", "math-check"}, names)
}

func TestRun_AuthoringChecks(t *testing.T) {
	long := sumTemplate("long")
	long.Pattern = strings.Repeat("x", 501) + " {a} {b}"

	noExplanation := sumTemplate("no-explanation")
	noExplanation.Explanation = func(pg.Params, pg.Answer) string { return "" }

	report, err := Run(context.Background(), []pg.Template{long, noExplanation}, Options{Samples: 3})
	require.NoError(t, err)
	for _, res := range report.Results {
		assert.Contains(t, findingKinds(res), KindValidator, res.TemplateID)
		assert.False(t, res.OK(), res.TemplateID)
	}
	assert.Contains(t, report.Results[0].Findings[0].Message, "exceeds 500 characters")
	assert.Contains(t, report.Results[1].Findings[0].Message, "explanation is empty")
}

func TestRun_CorrectAnswerFromPoolIsNotFallback(t *testing.T) {
	tmpl := pg.Template{
		ID:       "no-solution",
		Grade:    7,
		Category: "algebra",
		Level:    3,
		Pattern:  "Case {n}: how many values of x satisfy x + 1 = x?",
		Ranges:   map[string]pg.Range{"n": {Min: 1, Max: 1000}},
		Answer:   func(pg.Params) pg.Answer { return pg.Text("No solution") },
		Distractors: []pg.DistractorFunc{
			func(pg.Params, pg.Answer) (pg.Answer, error) { return pg.Text("One solution"), nil },
			func(pg.Params, pg.Answer) (pg.Answer, error) { return pg.Text("Two solutions"), nil },
			func(pg.Params, pg.Answer) (pg.Answer, error) { return pg.Text("Every value"), nil },
		},
	}

	report, err := Run(context.Background(), []pg.Template{tmpl}, Options{Samples: 5})
	require.NoError(t, err)
	res := report.Results[0]
	assert.Equal(t, 5, res.Produced)
	assert.NotContains(t, findingKinds(res), KindPool)
}

func TestRun_BuiltinCatalog(t *testing.T) {
	r, err := catalog.Load("")
	require.NoError(t, err)

	report, err := Run(context.Background(), r.All(), Options{Samples: 10, Seed: "builtin"})
	require.NoError(t, err)
	for _, res := range report.Results {
		assert.True(t, res.OK(), "%s: %+v", res.TemplateID, res.Findings)
	}
}
