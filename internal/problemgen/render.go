package problemgen

import (
	"regexp"
	"strconv"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// RenderPattern replaces every {name} token with the value of p[name].
// Tokens without a matching parameter are left as written.
func RenderPattern(pattern string, p Params) string {
	return placeholderRe.ReplaceAllStringFunc(pattern, func(tok string) string {
		if v, ok := p[tok[1:len(tok)-1]]; ok {
			return strconv.Itoa(v)
		}
		return tok
	})
}

// RenderContent produces the question text for t. A template ContentFunc
// wins over its Pattern.
func RenderContent(t Template, p Params) string {
	if t.Content != nil {
		return t.Content(p)
	}
	return RenderPattern(t.Pattern, p)
}

// Placeholders returns the parameter names referenced by pattern, in order of
// first appearance.
func Placeholders(pattern string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(pattern, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
