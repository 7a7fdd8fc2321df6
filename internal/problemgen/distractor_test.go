package problemgen

import (
	"errors"
	"slices"
	"testing"
)

func testResolver() *Resolver {
	return NewResolver(DefaultConfig())
}

func TestResolve_PanickingCallableFallsBackToOffsets(t *testing.T) {
	boom := func(Params, Answer) (Answer, error) { panic("boom") }

	got := testResolver().Resolve(Params{"a": 3, "b": 4}, Int(7), []DistractorFunc{boom, boom}, 3)
	want := []string{"8", "6", "9"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolve_CallablesFirstDistinctAndExcludeCorrect(t *testing.T) {
	fns := []DistractorFunc{
		func(Params, Answer) (Answer, error) { return Int(7), nil },
		func(Params, Answer) (Answer, error) { return Int(10), nil },
		func(Params, Answer) (Answer, error) { return Int(10), nil },
		func(Params, Answer) (Answer, error) { return Answer{}, errors.New("no candidate") },
		func(Params, Answer) (Answer, error) { return Int(5), nil },
	}

	got := testResolver().Resolve(Params{}, Int(7), fns, 3)
	want := []string{"10", "5", "8"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolve_CanonicalizesCallableOutput(t *testing.T) {
	fns := []DistractorFunc{
		func(Params, Answer) (Answer, error) { return Frac(6, 8), nil },
		func(Params, Answer) (Answer, error) { return Frac(3, 4), nil },
		func(Params, Answer) (Answer, error) { return Frac(2, 4), nil },
		func(Params, Answer) (Answer, error) { return Frac(1, 0), nil },
	}

	got := testResolver().Resolve(Params{}, Frac(1, 2), fns, 2)
	want := []string{"3/4", "1.5"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolve_TextAnswerUsesPool(t *testing.T) {
	got := testResolver().Resolve(Params{}, Text("even"), nil, 3)
	want := []string{"0", "No solution", "Undefined"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolve_PoolSkipsCorrectAnswer(t *testing.T) {
	got := testResolver().Resolve(Params{}, Text("No solution"), nil, 2)
	want := []string{"0", "Undefined"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolve_ZeroCount(t *testing.T) {
	got := testResolver().Resolve(Params{}, Int(7), nil, 0)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestResolve_ExhaustedReturnsPartial(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxOffset = 0
	cfg.FallbackPool = []string{"none", ""}

	got := NewResolver(cfg).Resolve(Params{}, Text("yes"), nil, 3)
	want := []string{"none"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolve_DoesNotExposeParams(t *testing.T) {
	p := Params{"a": 1}
	mutate := func(p Params, _ Answer) (Answer, error) {
		p["a"] = 99
		return Int(p["a"]), nil
	}

	got := testResolver().Resolve(p, Int(2), []DistractorFunc{mutate}, 1)
	if p["a"] != 1 {
		t.Errorf("params mutated: a = %d", p["a"])
	}
	if !slices.Equal(got, []string{"99"}) {
		t.Errorf("got %v, want [99]", got)
	}
}

func TestResolve_DecimalOffsets(t *testing.T) {
	got := testResolver().Resolve(Params{}, Decimal(2.5), nil, 2)
	want := []string{"3.5", "1.5"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
