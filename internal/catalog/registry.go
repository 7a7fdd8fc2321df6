package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	pg "github.com/abhisek/mathgen/internal/problemgen"
)

// Registry holds compiled templates. Templates are validated when they are
// registered, so everything a Registry returns is safe to hand to the engine.
type Registry struct {
	mu        sync.RWMutex
	templates []pg.Template
	specs     map[string]TemplateSpec
	byID      map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]TemplateSpec),
		byID:  make(map[string]int),
	}
}

// Register validates and compiles specs. Either every spec is added or, when
// any spec is invalid, none is; the error lists all problems found.
func (r *Registry) Register(specs ...TemplateSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []string
	compiled := make([]pg.Template, 0, len(specs))
	batch := make(map[string]bool, len(specs))

	for _, s := range specs {
		label := s.ID
		if s.Source != "" {
			label = s.Source + ":" + s.ID
		}
		if s.ID != "" {
			if _, exists := r.byID[s.ID]; exists || batch[s.ID] {
				errs = append(errs, fmt.Sprintf("duplicate template ID: %q", label))
			}
			batch[s.ID] = true
		}

		t, problems := compile(s)
		for _, p := range problems {
			errs = append(errs, fmt.Sprintf("template %q: %s", label, p))
		}
		compiled = append(compiled, t)
	}

	if len(errs) > 0 {
		return fmt.Errorf("template catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	for i, t := range compiled {
		r.templates = append(r.templates, t)
		r.specs[t.ID] = specs[i]
	}
	slices.SortFunc(r.templates, func(a, b pg.Template) int {
		return cmp.Or(
			cmp.Compare(a.Grade, b.Grade),
			cmp.Compare(a.Category, b.Category),
			cmp.Compare(a.Level, b.Level),
			cmp.Compare(a.ID, b.ID),
		)
	})
	clear(r.byID)
	for i, t := range r.templates {
		r.byID[t.ID] = i
	}
	return nil
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// All returns every template ordered by grade, category, level then ID.
func (r *Registry) All() []pg.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.templates)
}

// Get returns a template by ID.
func (r *Registry) Get(id string) (pg.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return pg.Template{}, fmt.Errorf("template not found: %q", id)
	}
	return r.templates[i], nil
}

// Spec returns the source spec a template was compiled from.
func (r *Registry) Spec(id string) (TemplateSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[id]
	return s, ok
}

// ByGrade returns the templates for one grade.
func (r *Registry) ByGrade(grade int) []pg.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []pg.Template
	for _, t := range r.templates {
		if t.Grade == grade {
			out = append(out, t)
		}
	}
	return out
}

// Match returns the templates for an exact grade, category and level.
func (r *Registry) Match(grade int, category string, level int) []pg.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return pg.Filter(r.templates, grade, category, level)
}

// Categories returns the sorted category names available for grade. A grade
// of 0 returns categories across all grades.
func (r *Registry) Categories(grade int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, t := range r.templates {
		if grade == 0 || t.Grade == grade {
			out = append(out, t.Category)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Grades returns the sorted grades that have at least one template.
func (r *Registry) Grades() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t.Grade)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Levels returns the sorted levels available for grade and category.
func (r *Registry) Levels(grade int, category string) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []int
	for _, t := range r.templates {
		if t.Grade == grade && t.Category == category {
			out = append(out, t.Level)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
