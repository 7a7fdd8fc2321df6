package problemgen

import "fmt"

// optionLabels is the fixed label alphabet, assigned in option order.
const optionLabels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// maxOptions is the most options a question can carry.
const maxOptions = len(optionLabels)

func optionLabel(i int) string {
	return optionLabels[i : i+1]
}

// OptionsValidator checks that options are labeled and numbered in order,
// have pairwise distinct texts, and that exactly one carries the correct
// label. Texts compare exactly; an empty text is a valid option.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *GeneratedQuestion) *ValidationError {
	if len(q.Options) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question has no options",
			Retryable: true,
		}
	}
	if len(q.Options) > maxOptions {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("too many options: %d", len(q.Options)),
		}
	}

	seen := make(map[string]bool, len(q.Options))
	correct := 0
	for i, o := range q.Options {
		if o.ID != i+1 {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d has id %d", i+1, o.ID),
			}
		}
		if o.Label != optionLabel(i) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d has label %q, want %q", i+1, o.Label, optionLabel(i)),
			}
		}
		if seen[o.Text] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option %q", o.Text),
				Retryable: true,
			}
		}
		seen[o.Text] = true
		if o.Label == q.CorrectAnswer {
			correct++
		}
	}

	if correct != 1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("correct answer %q not found in options", q.CorrectAnswer),
			Retryable: true,
		}
	}
	return nil
}
