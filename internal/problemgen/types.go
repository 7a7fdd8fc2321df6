package problemgen

import "github.com/abhisek/mathgen/internal/sampler"

// Params maps parameter names to sampled integer values. It is fully
// populated for every declared range before any template callable runs.
type Params = sampler.Params

// Range is an inclusive [Min, Max] parameter interval.
type Range = sampler.Range

// AnswerFunc computes the correct answer for a parameter vector.
type AnswerFunc func(p Params) Answer

// DistractorFunc proposes one wrong answer. Returning an error (or panicking)
// drops this proposal without aborting generation.
type DistractorFunc func(p Params, answer Answer) (Answer, error)

// ExplanationFunc renders the worked solution shown after answering.
type ExplanationFunc func(p Params, answer Answer) string

// ContentFunc renders question text directly, bypassing Pattern.
type ContentFunc func(p Params) string

// ConstraintFunc accepts or rejects a sampled parameter vector.
type ConstraintFunc = sampler.Constraint

// QuestionType describes how the learner answers.
type QuestionType string

const (
	// QuestionMultipleChoice means the learner picks one labeled option.
	QuestionMultipleChoice QuestionType = "multiple_choice"

	// QuestionShortAnswer means the learner types the answer.
	QuestionShortAnswer QuestionType = "short_answer"
)

// Template is an authored, parameterized question blueprint. Templates are
// built once at startup and never mutated; the engine only reads them.
type Template struct {
	ID        string
	Grade     int
	Category  string
	Level     int // difficulty, 1-10
	Part      string
	ConceptID string

	// Pattern is the question text with {name} placeholders. Ignored when
	// Content is set.
	Pattern string
	Content ContentFunc

	Ranges      map[string]Range
	Constraint  ConstraintFunc
	Answer      AnswerFunc
	Distractors []DistractorFunc
	Explanation ExplanationFunc

	// QuestionType defaults to QuestionMultipleChoice.
	QuestionType QuestionType

	// Points defaults to Config.DefaultPoints.
	Points int
}

// Option is one labeled answer choice.
type Option struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// GeneratedQuestion is one rendered question instance. It is created inside a
// single generation call and never referenced by the engine afterwards.
type GeneratedQuestion struct {
	ID            string       `json:"id"`
	ConceptID     string       `json:"concept_id"`
	Category      string       `json:"category"`
	Part          string       `json:"part"`
	QuestionType  QuestionType `json:"question_type"`
	Difficulty    int          `json:"difficulty"`
	Content       string       `json:"content"`
	Options       []Option     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"` // label of the correct option
	Explanation   string       `json:"explanation"`
	Points        int          `json:"points"`

	// TemplateID is the template this instance came from.
	TemplateID string `json:"-"`

	// Degraded is set when no parameter vector satisfied the template's
	// constraint and the midpoint fallback was used.
	Degraded bool `json:"-"`
}

// CorrectOption returns the option whose label is CorrectAnswer.
func (q *GeneratedQuestion) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.Label == q.CorrectAnswer {
			return o, true
		}
	}
	return Option{}, false
}

// GenerateRequest selects templates by scope and asks for Count instances.
type GenerateRequest struct {
	Grade    int    `json:"grade"`
	Category string `json:"category"`
	Level    int    `json:"level"`

	// Count defaults to 1 when zero or negative.
	Count int `json:"count,omitempty"`
}
