package catalog

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	pg "github.com/abhisek/mathgen/internal/problemgen"
)

// answerToken is the explanation placeholder for the canonical answer. It is
// reserved and cannot name a parameter.
const answerToken = "answer"

var paramNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// operand is a call argument: a parameter reference or an integer literal.
type operand struct {
	name string
	lit  int
}

func (o operand) value(p pg.Params) int {
	if o.name != "" {
		return p[o.name]
	}
	return o.lit
}

func values(ops []operand, p pg.Params) []int {
	v := make([]int, len(ops))
	for i, o := range ops {
		v[i] = o.value(p)
	}
	return v
}

// compiler collects every problem in a spec instead of stopping at the first.
type compiler struct {
	spec     TemplateSpec
	ranges   map[string]pg.Range
	problems []string
}

func (c *compiler) fail(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

// compile turns a spec into an engine template. The returned problems are
// empty when the spec is valid.
func compile(s TemplateSpec) (pg.Template, []string) {
	c := &compiler{spec: s, ranges: make(map[string]pg.Range, len(s.Ranges))}

	if strings.TrimSpace(s.ID) == "" {
		c.fail("id is required")
	}
	if s.Grade < 1 {
		c.fail("grade must be >= 1, got %d", s.Grade)
	}
	if strings.TrimSpace(s.Category) == "" {
		c.fail("category is required")
	}
	if s.Level < 1 || s.Level > 10 {
		c.fail("level must be between 1 and 10, got %d", s.Level)
	}
	switch pg.QuestionType(s.QuestionType) {
	case "", pg.QuestionMultipleChoice, pg.QuestionShortAnswer:
	default:
		c.fail("unknown question_type %q", s.QuestionType)
	}
	if s.Points < 0 {
		c.fail("points must be >= 0, got %d", s.Points)
	}

	c.compileRanges()

	t := pg.Template{
		ID:           s.ID,
		Grade:        s.Grade,
		Category:     s.Category,
		Level:        s.Level,
		Part:         s.Part,
		ConceptID:    s.Concept,
		Pattern:      s.Pattern,
		Ranges:       c.ranges,
		QuestionType: pg.QuestionType(s.QuestionType),
		Points:       s.Points,
	}

	switch {
	case s.Content != nil:
		t.Content = c.compileContent(*s.Content)
	case strings.TrimSpace(s.Pattern) == "":
		c.fail("pattern or content is required")
	default:
		c.checkPlaceholders("pattern", s.Pattern, false)
	}

	t.Constraint = c.compileConstraints()
	t.Answer = c.compileAnswer()
	t.Distractors = c.compileDistractors()

	if s.Explanation != "" {
		c.checkPlaceholders("explanation", s.Explanation, true)
		t.Explanation = explanation(s.Explanation)
	}

	return t, c.problems
}

func (c *compiler) compileRanges() {
	names := make([]string, 0, len(c.spec.Ranges))
	for name := range c.spec.Ranges {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		bounds := c.spec.Ranges[name]
		switch {
		case !paramNameRe.MatchString(name):
			c.fail("invalid parameter name %q", name)
			continue
		case name == answerToken:
			c.fail("parameter name %q is reserved", name)
			continue
		case len(bounds) != 2:
			c.fail("range %q must be [min, max], got %v", name, bounds)
			continue
		case bounds[0] > bounds[1]:
			c.fail("range %q has min %d > max %d", name, bounds[0], bounds[1])
			continue
		}
		c.ranges[name] = pg.Range{Min: bounds[0], Max: bounds[1]}
	}
}

func (c *compiler) checkPlaceholders(field, pattern string, allowAnswer bool) {
	for _, name := range pg.Placeholders(pattern) {
		if allowAnswer && name == answerToken {
			continue
		}
		if _, ok := c.ranges[name]; !ok {
			c.fail("%s references unknown parameter {%s}", field, name)
		}
	}
}

// operands resolves call arguments against the declared parameters.
func (c *compiler) operands(where string, call Call) ([]operand, bool) {
	ops := make([]operand, 0, len(call.Args))
	ok := true
	for _, arg := range call.Args {
		if _, declared := c.ranges[arg]; declared {
			ops = append(ops, operand{name: arg})
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			c.fail("%s %q: unknown parameter %q", where, call.Kind, arg)
			ok = false
			continue
		}
		ops = append(ops, operand{lit: n})
	}
	return ops, ok
}

func (c *compiler) compileContent(call Call) pg.ContentFunc {
	kind, found := contentKinds[call.Kind]
	if !found {
		c.fail("unknown content kind %q", call.Kind)
		return nil
	}
	if err := kind.validate(len(call.Args)); err != nil {
		c.fail("content %q %v", call.Kind, err)
		return nil
	}
	ops, ok := c.operands("content", call)
	if !ok {
		return nil
	}
	return func(p pg.Params) string { return kind.render(values(ops, p)) }
}

func (c *compiler) compileConstraints() pg.ConstraintFunc {
	var checks []func(pg.Params) bool
	for _, call := range c.spec.Constraints {
		kind, found := constraintKinds[call.Kind]
		if !found {
			c.fail("unknown constraint kind %q", call.Kind)
			continue
		}
		if err := kind.validate(len(call.Args)); err != nil {
			c.fail("constraint %q %v", call.Kind, err)
			continue
		}
		ops, ok := c.operands("constraint", call)
		if !ok {
			continue
		}
		checks = append(checks, func(p pg.Params) bool { return kind.check(values(ops, p)) })
	}
	if len(checks) == 0 {
		return nil
	}
	return func(p pg.Params) bool {
		for _, check := range checks {
			if !check(p) {
				return false
			}
		}
		return true
	}
}

func (c *compiler) compileAnswer() pg.AnswerFunc {
	call := c.spec.Answer
	if call.Kind == "" {
		c.fail("answer is required")
		return nil
	}
	kind, found := answerKinds[call.Kind]
	if !found {
		c.fail("unknown answer kind %q", call.Kind)
		return nil
	}
	if err := kind.validate(len(call.Args)); err != nil {
		c.fail("answer %q %v", call.Kind, err)
		return nil
	}
	ops, ok := c.operands("answer", call)
	if !ok {
		return nil
	}
	return func(p pg.Params) pg.Answer { return kind.eval(values(ops, p)) }
}

func (c *compiler) compileDistractors() []pg.DistractorFunc {
	fns := make([]pg.DistractorFunc, 0, len(c.spec.Distractors))
	for _, call := range c.spec.Distractors {
		if fn := c.compileDistractor(call); fn != nil {
			fns = append(fns, fn)
		}
	}
	return fns
}

func (c *compiler) compileDistractor(call Call) pg.DistractorFunc {
	if mod, found := modifierKinds[call.Kind]; found {
		if err := mod.validate(len(call.Args)); err != nil {
			c.fail("distractor %q %v", call.Kind, err)
			return nil
		}
		ops, ok := c.operands("distractor", call)
		if !ok {
			return nil
		}
		return func(p pg.Params, a pg.Answer) (pg.Answer, error) {
			return mod.apply(a, values(ops, p))
		}
	}

	kind, found := mistakeKinds[call.Kind]
	if !found {
		kind, found = answerKinds[call.Kind]
	}
	if !found {
		c.fail("unknown distractor kind %q", call.Kind)
		return nil
	}
	if err := kind.validate(len(call.Args)); err != nil {
		c.fail("distractor %q %v", call.Kind, err)
		return nil
	}
	ops, ok := c.operands("distractor", call)
	if !ok {
		return nil
	}
	return func(p pg.Params, _ pg.Answer) (pg.Answer, error) {
		return kind.eval(values(ops, p)), nil
	}
}

// explanation renders pattern with the parameters and the canonical answer.
func explanation(pattern string) pg.ExplanationFunc {
	return func(p pg.Params, a pg.Answer) string {
		text := pg.RenderPattern(pattern, p)
		if canonical, err := a.Canonical(); err == nil {
			text = strings.ReplaceAll(text, "{"+answerToken+"}", canonical)
		}
		return text
	}
}
