// Package catalog loads authored question templates from YAML and compiles
// them into engine templates through named dispatch tables.
package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the YAML structure of one catalog file. Grade and Category act as
// defaults for templates that leave them unset.
type File struct {
	Grade     int            `yaml:"grade"`
	Category  string         `yaml:"category"`
	Templates []TemplateSpec `yaml:"templates"`
}

// TemplateSpec is the YAML structure of a single template.
type TemplateSpec struct {
	ID       string `yaml:"id"`
	Grade    int    `yaml:"grade"`
	Category string `yaml:"category"`
	Level    int    `yaml:"level"`
	Part     string `yaml:"part"`
	Concept  string `yaml:"concept"`

	// Pattern is the question text with {name} placeholders. Content, when
	// set, renders the text instead.
	Pattern string `yaml:"pattern"`
	Content *Call  `yaml:"content"`

	// Ranges maps each parameter to its inclusive [min, max] interval.
	Ranges map[string][]int `yaml:"ranges"`

	Constraints []Call `yaml:"constraints"`
	Answer      Call   `yaml:"answer"`
	Distractors []Call `yaml:"distractors"`

	// Explanation is a pattern that may also use {answer}.
	Explanation string `yaml:"explanation"`

	QuestionType string `yaml:"question_type"`
	Points       int    `yaml:"points"`

	// Source names the file the spec was read from.
	Source string `yaml:"-"`
}

// Call names a dispatch-table entry and its arguments. Arguments are
// parameter names or integer literals.
//
// In YAML a call is either a string ("sum a b") or a mapping
// ({kind: sum, args: [a, b]}).
type Call struct {
	Kind string
	Args []string
}

// UnmarshalYAML accepts the string and mapping forms of a call.
func (c *Call) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		fields := strings.Fields(node.Value)
		if len(fields) == 0 {
			return fmt.Errorf("line %d: empty call", node.Line)
		}
		c.Kind, c.Args = fields[0], fields[1:]
		return nil
	case yaml.MappingNode:
		var raw struct {
			Kind string   `yaml:"kind"`
			Args []string `yaml:"args"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		c.Kind, c.Args = raw.Kind, raw.Args
		return nil
	default:
		return fmt.Errorf("line %d: call must be a string or a mapping", node.Line)
	}
}

// String renders the call in its string form.
func (c Call) String() string {
	return strings.TrimSpace(c.Kind + " " + strings.Join(c.Args, " "))
}
