package problemgen

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/abhisek/mathgen/internal/sampler"
)

// Generator produces question instances from templates. It holds no state
// between calls beyond its randomness source, so one Generator can serve
// concurrent callers when its Source is goroutine-safe.
type Generator struct {
	src      sampler.Source
	config   Config
	resolver *Resolver
	logger   *slog.Logger
}

// New creates a Generator drawing randomness from src. A nil src uses the
// process-wide generator.
func New(src sampler.Source, cfg Config) *Generator {
	if src == nil {
		src = sampler.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxDedupAttempts < 1 {
		cfg.MaxDedupAttempts = 1
	}
	if cfg.DistractorCount > maxOptions-1 {
		cfg.DistractorCount = maxOptions - 1
	}
	if cfg.DefaultPoints <= 0 {
		cfg.DefaultPoints = 10
	}
	if cfg.MinLevel > cfg.MaxLevel {
		cfg.MinLevel, cfg.MaxLevel = cfg.MaxLevel, cfg.MinLevel
	}
	return &Generator{
		src:      src,
		config:   cfg,
		resolver: NewResolver(cfg),
		logger:   cfg.Logger,
	}
}

// Report summarizes one generation call.
type Report struct {
	Requested  int // slots asked for
	Produced   int // questions returned
	Collisions int // attempts rejected because their content repeated
	Degraded   int // returned questions built from the midpoint fallback
	Failures   int // attempts that failed to assemble
}

// Filter returns the templates whose grade, category and level all match.
func Filter(templates []Template, grade int, category string, level int) []Template {
	var out []Template
	for _, t := range templates {
		if t.Grade == grade && t.Category == category && t.Level == level {
			out = append(out, t)
		}
	}
	return out
}

// Generate returns up to req.Count questions drawn from the matching
// templates. No matching template yields an empty slice.
func (g *Generator) Generate(req GenerateRequest, templates []Template) []GeneratedQuestion {
	qs, _ := g.GenerateWithReport(req, templates)
	return qs
}

// GenerateWithReport is Generate plus a summary of collisions, degraded
// sampling and assembly failures.
//
// Each slot retries up to MaxDedupAttempts times when its content repeats an
// earlier question in the batch; if every attempt collides the last one is
// accepted anyway. A slot whose attempts all fail to assemble is skipped. A
// template rejected by a non-retryable validation error is not drawn again
// for the rest of the call.
func (g *Generator) GenerateWithReport(req GenerateRequest, templates []Template) ([]GeneratedQuestion, Report) {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	report := Report{Requested: count}

	matching := Filter(templates, req.Grade, req.Category, req.Level)
	if len(matching) == 0 {
		return []GeneratedQuestion{}, report
	}

	seen := make(map[string]struct{}, count)
	out := make([]GeneratedQuestion, 0, count)

	for slot := range count {
		if len(matching) == 0 {
			break
		}
		var accepted *GeneratedQuestion
		for attempt := range g.config.MaxDedupAttempts {
			if len(matching) == 0 {
				break
			}
			t := matching[g.src.IntN(len(matching))]
			q, err := g.instantiate(t)
			if err != nil {
				report.Failures++
				g.logger.Warn("question assembly failed",
					"template", t.ID, "slot", slot, "attempt", attempt, "error", err)
				var verr *ValidationError
				if errors.As(err, &verr) && !verr.Retryable {
					// Resampling cannot fix it; stop drawing this template.
					matching = slices.DeleteFunc(matching, func(m Template) bool { return m.ID == t.ID })
				}
				continue
			}
			accepted = q
			if _, dup := seen[q.Content]; !dup {
				break
			}
			report.Collisions++
			g.logger.Debug("content collision", "template", t.ID, "slot", slot, "attempt", attempt)
		}
		if accepted == nil {
			continue
		}
		seen[accepted.Content] = struct{}{}
		if accepted.Degraded {
			report.Degraded++
		}
		out = append(out, *accepted)
	}

	report.Produced = len(out)
	return out, report
}

// instantiate samples parameters for t and assembles one question.
func (g *Generator) instantiate(t Template) (*GeneratedQuestion, error) {
	p, ok := sampler.SampleParams(g.src, t.Ranges, t.Constraint)
	if !ok {
		g.logger.Warn("constraint unsatisfied, using midpoint fallback", "template", t.ID)
	}
	q, err := g.Assemble(t, p)
	if err != nil {
		return nil, err
	}
	q.Degraded = !ok
	return q, nil
}

// ClampLevel bounds level to the configured adaptive range.
func (g *Generator) ClampLevel(level int) int {
	return min(max(level, g.config.MinLevel), g.config.MaxLevel)
}

// SelectAdaptive returns one question at the clamped difficulty level, or nil
// when no template matches.
func (g *Generator) SelectAdaptive(grade int, category string, level int, templates []Template) *GeneratedQuestion {
	q, _ := g.SelectAdaptiveWithReport(grade, category, level, templates)
	return q
}

// SelectAdaptiveWithReport is SelectAdaptive plus the generation summary.
func (g *Generator) SelectAdaptiveWithReport(grade int, category string, level int, templates []Template) (*GeneratedQuestion, Report) {
	req := GenerateRequest{Grade: grade, Category: category, Level: g.ClampLevel(level), Count: 1}
	qs, report := g.GenerateWithReport(req, templates)
	if len(qs) == 0 {
		return nil, report
	}
	return &qs[0], report
}
