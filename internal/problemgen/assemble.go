package problemgen

import (
	"fmt"

	"github.com/abhisek/mathgen/internal/sampler"
)

// Assemble turns a template and a sampled parameter vector into one rendered
// question: canonical answer, explanation, content, distractors, and the
// shuffled, labeled option list. Errors from canonicalization, panicking
// template callables, or a failing validator are returned; the caller decides
// whether to resample.
func (g *Generator) Assemble(t Template, p Params) (q *GeneratedQuestion, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			q, err = nil, fmt.Errorf("template %q panicked: %v", t.ID, rec)
		}
	}()

	if t.Answer == nil {
		return nil, fmt.Errorf("template %q has no answer function", t.ID)
	}
	answer := t.Answer(p)
	correct, err := answer.Canonical()
	if err != nil {
		return nil, fmt.Errorf("template %q: canonicalize answer: %w", t.ID, err)
	}

	explanation := fmt.Sprintf("The answer is %s.", correct)
	if t.Explanation != nil {
		explanation = t.Explanation(p, answer)
	}

	content := RenderContent(t, p)
	distractors := g.resolver.Resolve(p, answer, t.Distractors, g.config.DistractorCount)

	texts := make([]string, 0, len(distractors)+1)
	texts = append(texts, correct)
	texts = append(texts, distractors...)

	options := make([]Option, 0, len(texts))
	correctLabel := ""
	for i, text := range sampler.Shuffle(g.src, texts) {
		label := optionLabel(i)
		options = append(options, Option{ID: i + 1, Label: label, Text: text})
		if correctLabel == "" && text == correct {
			correctLabel = label
		}
	}

	questionType := t.QuestionType
	if questionType == "" {
		questionType = QuestionMultipleChoice
	}
	points := t.Points
	if points == 0 {
		points = g.config.DefaultPoints
	}

	q = &GeneratedQuestion{
		ID:            sampler.NewID(),
		ConceptID:     t.ConceptID,
		Category:      t.Category,
		Part:          t.Part,
		QuestionType:  questionType,
		Difficulty:    t.Level,
		Content:       content,
		Options:       options,
		CorrectAnswer: correctLabel,
		Explanation:   explanation,
		Points:        points,
		TemplateID:    t.ID,
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}
