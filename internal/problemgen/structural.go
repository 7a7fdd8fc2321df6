package problemgen

// StructuralValidator checks authoring quality: non-empty content and
// explanation within length limits, and valid enum values. It is not part of
// the default engine chain; the template linter runs it.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *GeneratedQuestion) *ValidationError {
	if q.Content == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "content is empty",
			Retryable: true,
		}
	}
	if len(q.Content) > 500 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "content exceeds 500 characters",
			Retryable: true,
		}
	}
	if q.Explanation == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
			Retryable: true,
		}
	}
	if len(q.Explanation) > 1000 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 1000 characters",
			Retryable: true,
		}
	}
	if q.Difficulty < 1 || q.Difficulty > 10 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "difficulty must be between 1 and 10",
		}
	}
	if q.QuestionType != QuestionMultipleChoice && q.QuestionType != QuestionShortAnswer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question_type must be \"multiple_choice\" or \"short_answer\"",
		}
	}
	if q.Points <= 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "points must be positive",
		}
	}
	return nil
}
