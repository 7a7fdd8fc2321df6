// Package lint exercises every template many times and reports templates
// that degrade, fail to assemble, produce short option lists, or repeat
// themselves.
package lint

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	pg "github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/sampler"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding kinds.
const (
	KindAssembly   = "assembly"
	KindValidator  = "validator"
	KindSchema     = "schema"
	KindDegraded   = "degraded"
	KindShort      = "short_options"
	KindPool       = "fallback_pool"
	KindDuplicates = "duplicates"
)

// Options configures a lint run.
type Options struct {
	// Samples is the number of instances built per template. Defaults to 20.
	Samples int

	// Seed is mixed with each template ID to seed that template's source.
	Seed string

	// Concurrency bounds how many templates are linted at once.
	// Defaults to GOMAXPROCS.
	Concurrency int

	// MaxDuplicateRatio is the share of repeated content tolerated before a
	// duplicates warning. Defaults to 0.5.
	MaxDuplicateRatio float64

	// Config is the engine configuration. Nil means the default engine chain
	// plus the authoring checks: structural limits and the math check.
	Config *pg.Config
}

func (o Options) withDefaults() Options {
	if o.Samples <= 0 {
		o.Samples = 20
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.MaxDuplicateRatio <= 0 {
		o.MaxDuplicateRatio = 0.5
	}
	if o.Config == nil {
		cfg := pg.DefaultConfig()
		cfg.Validators = append(cfg.Validators, &pg.StructuralValidator{}, &pg.MathCheckValidator{})
		o.Config = &cfg
	}
	return o
}

// Finding is one problem observed for a template.
type Finding struct {
	Severity Severity
	Kind     string
	Count    int    // samples affected
	Message  string // first observed detail
}

// Result holds the counters and findings for one template.
type Result struct {
	TemplateID string
	Samples    int
	Produced   int
	Unique     int
	Findings   []Finding
}

// OK reports whether the template has no error findings.
func (r Result) OK() bool {
	return !slices.ContainsFunc(r.Findings, func(f Finding) bool {
		return f.Severity == SeverityError
	})
}

// Report is the outcome of a lint run, ordered like the input templates.
type Report struct {
	Results []Result
}

// Count returns the number of findings with the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, res := range r.Results {
		for _, f := range res.Findings {
			if f.Severity == sev {
				n++
			}
		}
	}
	return n
}

// Run lints templates concurrently. It only fails when ctx is cancelled.
func Run(ctx context.Context, templates []pg.Template, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	results := make([]Result, len(templates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := range templates {
		t := templates[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = lintTemplate(t, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lint templates: %w", err)
	}
	return &Report{Results: results}, nil
}

// tally counts one finding kind and keeps its first message.
type tally struct {
	count int
	first string
}

func (t *tally) add(msg string) {
	if t.count == 0 {
		t.first = msg
	}
	t.count++
}

func lintTemplate(t pg.Template, opts Options) Result {
	src := sampler.NewSeeded(sampler.SeedFromString(opts.Seed + "/" + t.ID))
	gen := pg.New(src, *opts.Config)
	want := opts.Config.DistractorCount + 1
	pool := opts.Config.FallbackPool

	var assembly, validator, schema, degraded, short, fallback tally
	seen := make(map[string]bool, opts.Samples)
	res := Result{TemplateID: t.ID, Samples: opts.Samples}

	for range opts.Samples {
		p, ok := sampler.SampleParams(src, t.Ranges, t.Constraint)
		if !ok {
			degraded.add(fmt.Sprintf("no parameters satisfied the constraint in %d draws", sampler.MaxAttempts))
		}

		q, err := gen.Assemble(t, p)
		if err != nil {
			var verr *pg.ValidationError
			if errors.As(err, &verr) {
				validator.add(fmt.Sprintf("%s (params %v)", verr.Error(), p))
			} else {
				assembly.add(err.Error())
			}
			continue
		}
		res.Produced++

		if _, err := pg.MarshalQuestion(q); err != nil {
			schema.add(err.Error())
		}
		if len(q.Options) < want {
			short.add(fmt.Sprintf("%q has %d options, want %d", q.Content, len(q.Options), want))
		}
		if slices.ContainsFunc(q.Options, func(o pg.Option) bool {
			return o.Label != q.CorrectAnswer && fromPool(pool, o.Text)
		}) {
			fallback.add(fmt.Sprintf("%q needed the fallback pool", q.Content))
		}
		seen[q.Content] = true
	}
	res.Unique = len(seen)

	report := func(sev Severity, kind string, tl tally) {
		if tl.count > 0 {
			res.Findings = append(res.Findings, Finding{Severity: sev, Kind: kind, Count: tl.count, Message: tl.first})
		}
	}
	report(SeverityError, KindAssembly, assembly)
	report(SeverityError, KindValidator, validator)
	report(SeverityError, KindSchema, schema)
	report(SeverityWarning, KindDegraded, degraded)
	report(SeverityWarning, KindShort, short)
	report(SeverityWarning, KindPool, fallback)

	if res.Produced > 1 {
		ratio := 1 - float64(res.Unique)/float64(res.Produced)
		if ratio > opts.MaxDuplicateRatio {
			res.Findings = append(res.Findings, Finding{
				Severity: SeverityWarning,
				Kind:     KindDuplicates,
				Count:    res.Produced - res.Unique,
				Message:  fmt.Sprintf("%d distinct questions in %d samples", res.Unique, res.Produced),
			})
		}
	}
	return res
}

// fromPool reports whether text is a non-numeric fallback pool entry. Numeric
// pool entries such as "0" are also reachable through offsets.
func fromPool(pool []string, text string) bool {
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	return slices.Contains(pool, text)
}
