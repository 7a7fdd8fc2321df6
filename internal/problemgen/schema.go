package problemgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON schema definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// QuestionSchema describes the wire form of a GeneratedQuestion.
var QuestionSchema = &Schema{
	Name:        "generated-question",
	Description: "A single rendered math question with labeled options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":         map[string]any{"type": "string", "minLength": 1},
			"concept_id": map[string]any{"type": "string"},
			"category":   map[string]any{"type": "string"},
			"part":       map[string]any{"type": "string"},
			"question_type": map[string]any{
				"type": "string",
				"enum": []any{string(QuestionMultipleChoice), string(QuestionShortAnswer)},
			},
			"difficulty": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 10,
			},
			"content": map[string]any{"type": "string"},
			"options": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": maxOptions,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":    map[string]any{"type": "integer", "minimum": 1},
						"label": map[string]any{"type": "string", "pattern": "^[A-Z]$"},
						"text":  map[string]any{"type": "string"},
					},
					"required":             []any{"id", "label", "text"},
					"additionalProperties": false,
				},
			},
			"correct_answer": map[string]any{"type": "string", "pattern": "^[A-Z]$"},
			"explanation":    map[string]any{"type": "string"},
			"points":         map[string]any{"type": "integer", "minimum": 1},
		},
		"required": []any{
			"id", "concept_id", "category", "part", "question_type", "difficulty",
			"content", "options", "correct_answer", "explanation", "points",
		},
		"additionalProperties": false,
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateJSON validates raw JSON against schema. A nil schema always passes.
func ValidateJSON(schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// MarshalQuestion encodes q in its wire form and checks it against
// QuestionSchema.
func MarshalQuestion(q *GeneratedQuestion) ([]byte, error) {
	raw, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal question: %w", err)
	}
	if err := ValidateJSON(QuestionSchema, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, so round-trip the Go literal.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
