package problemgen

import "testing"

func TestRenderPattern(t *testing.T) {
	tests := []struct {
		pattern string
		params  Params
		want    string
	}{
		{"{a} + {b} = ?", Params{"a": 3, "b": 4}, "3 + 4 = ?"},
		{"{a} - {a} = ?", Params{"a": 9}, "9 - 9 = ?"},
		{"{a} × {b} = ?", Params{"a": -2, "b": 5}, "-2 × 5 = ?"},
		{"{a} + {c} = ?", Params{"a": 1}, "1 + {c} = ?"},
		{"no tokens here", Params{"a": 1}, "no tokens here"},
		{"{ a } stays", Params{"a": 1}, "{ a } stays"},
		{"{side_len}cm", Params{"side_len": 12}, "12cm"},
	}

	for _, tc := range tests {
		got := RenderPattern(tc.pattern, tc.params)
		if got != tc.want {
			t.Errorf("RenderPattern(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestRenderContent_ContentFuncWins(t *testing.T) {
	tmpl := Template{
		Pattern: "{a} + {b} = ?",
		Content: func(p Params) string { return "custom" },
	}
	if got := RenderContent(tmpl, Params{"a": 1, "b": 2}); got != "custom" {
		t.Errorf("got %q, want %q", got, "custom")
	}

	tmpl.Content = nil
	if got := RenderContent(tmpl, Params{"a": 1, "b": 2}); got != "1 + 2 = ?" {
		t.Errorf("got %q, want %q", got, "1 + 2 = ?")
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{a} + {b} = {answer}, so {a} stays {a}")
	want := []string{"a", "b", "answer"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placeholder %d: got %q, want %q", i, got[i], want[i])
		}
	}
	if got := Placeholders("no tokens"); len(got) != 0 {
		t.Errorf("expected none, got %v", got)
	}
}
