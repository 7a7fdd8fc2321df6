package problemgen

import "log/slog"

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators run on every assembled
	// question. They execute in order; the first failure rejects the attempt.
	Validators []Validator

	// DistractorCount is the number of wrong answers requested per question.
	DistractorCount int

	// MaxDedupAttempts is how many times a batch slot retries on a content
	// collision before accepting the duplicate.
	MaxDedupAttempts int

	// MaxOffset bounds the symmetric numeric offsets tried for distractors.
	MaxOffset int

	// FallbackPool holds generic distractors used when the other layers
	// cannot fill the list.
	FallbackPool []string

	// DefaultPoints is used when a template does not set Points.
	DefaultPoints int

	// MinLevel and MaxLevel bound adaptive difficulty selection.
	MinLevel int
	MaxLevel int

	// Logger receives degraded-mode and dropped-distractor warnings.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&OptionsValidator{},
		},
		DistractorCount:  3,
		MaxDedupAttempts: 10,
		MaxOffset:        20,
		FallbackPool: []string{
			"0",
			"No solution",
			"Undefined",
			"Infinitely many solutions",
			"Cannot be determined",
			"None of these",
		},
		DefaultPoints: 10,
		MinLevel:      1,
		MaxLevel:      10,
	}
}
