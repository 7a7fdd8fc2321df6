package problemgen

import (
	"fmt"
	"log/slog"
	"maps"
	"strconv"
)

// Resolver synthesizes distinct wrong-answer strings for a question.
//
// Layers, in order:
//  1. the template's distractor callables
//  2. symmetric numeric offsets answer±1 ... answer±MaxOffset
//  3. the generic FallbackPool
//
// Safe for concurrent use.
type Resolver struct {
	maxOffset int
	pool      []string
	logger    *slog.Logger
}

// NewResolver builds a Resolver from cfg.
func NewResolver(cfg Config) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{maxOffset: cfg.MaxOffset, pool: cfg.FallbackPool, logger: logger}
}

// Resolve returns up to count wrong answers, pairwise distinct, non-empty and
// never equal to the canonical answer. It returns exactly count values unless
// every layer is exhausted first, in which case it returns what it found.
func (r *Resolver) Resolve(p Params, answer Answer, fns []DistractorFunc, count int) []string {
	if count <= 0 {
		return []string{}
	}

	correct, err := answer.Canonical()
	if err != nil {
		r.logger.Warn("distractors for non-canonical answer", "error", err)
	}
	set := newOrderedSet(count, correct)

	// Layer 1: template callables.
	for i, fn := range fns {
		if set.full() {
			break
		}
		if fn == nil {
			continue
		}
		d, err := callDistractor(fn, maps.Clone(p), answer)
		if err != nil {
			r.logger.Warn("distractor dropped", "index", i, "error", err)
			continue
		}
		text, err := d.Canonical()
		if err != nil {
			r.logger.Warn("distractor dropped", "index", i, "error", err)
			continue
		}
		set.add(text)
	}

	// Layer 2: numeric offsets.
	if v, ok := answer.Float64(); ok {
		for k := 1; k <= r.maxOffset && !set.full(); k++ {
			set.add(offsetText(answer, v, k))
			set.add(offsetText(answer, v, -k))
		}
	}

	// Layer 3: generic tokens.
	for _, token := range r.pool {
		if set.full() {
			break
		}
		set.add(token)
	}

	return set.items
}

// callDistractor runs fn, converting a panic into an error.
func callDistractor(fn DistractorFunc, p Params, answer Answer) (d Answer, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("distractor panicked: %v", rec)
		}
	}()
	return fn(p, answer)
}

// offsetText renders answer shifted by delta using the canonical number rules.
func offsetText(answer Answer, v float64, delta int) string {
	if answer.Type == AnswerTypeInteger {
		return strconv.Itoa(answer.Integer + delta)
	}
	return formatDecimal(v + float64(delta))
}

// orderedSet keeps insertion order, rejects duplicates, empty strings and the
// excluded value, and stops growing at limit.
type orderedSet struct {
	limit    int
	excluded string
	seen     map[string]struct{}
	items    []string
}

func newOrderedSet(limit int, excluded string) *orderedSet {
	return &orderedSet{
		limit:    limit,
		excluded: excluded,
		seen:     make(map[string]struct{}, limit),
		items:    make([]string, 0, limit),
	}
}

func (s *orderedSet) full() bool { return len(s.items) >= s.limit }

func (s *orderedSet) add(v string) {
	if s.full() || v == "" || v == s.excluded {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
