package problemgen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalQuestion_Valid(t *testing.T) {
	raw, err := MarshalQuestion(validQuestion())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "B", decoded["correct_answer"])
	assert.NotContains(t, decoded, "TemplateID")
	assert.NotContains(t, decoded, "Degraded")
}

func TestMarshalQuestion_GeneratedPassesSchema(t *testing.T) {
	q, err := testGenerator(2).Assemble(additionTemplate(), Params{"a": 6, "b": 9})
	require.NoError(t, err)

	_, err = MarshalQuestion(q)
	assert.NoError(t, err)
}

func TestValidateJSON_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(q *GeneratedQuestion)
	}{
		{"difficulty out of range", func(q *GeneratedQuestion) { q.Difficulty = 11 }},
		{"bad question type", func(q *GeneratedQuestion) { q.QuestionType = "essay" }},
		{"bad correct label", func(q *GeneratedQuestion) { q.CorrectAnswer = "b" }},
		{"no options", func(q *GeneratedQuestion) { q.Options = []Option{} }},
		{"zero option id", func(q *GeneratedQuestion) { q.Options[0].ID = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuestion()
			tc.mutate(q)
			raw, err := json.Marshal(q)
			require.NoError(t, err)
			assert.Error(t, ValidateJSON(QuestionSchema, raw))
		})
	}
}

func TestValidateJSON_AcceptsEmptyTexts(t *testing.T) {
	q := validQuestion()
	q.Content = ""
	q.Explanation = ""
	q.Options[0].Text = ""

	raw, err := json.Marshal(q)
	require.NoError(t, err)
	assert.NoError(t, ValidateJSON(QuestionSchema, raw))
}

func TestValidateJSON_Malformed(t *testing.T) {
	assert.ErrorContains(t, ValidateJSON(QuestionSchema, []byte(`{"id":`)), "invalid JSON")
	assert.Error(t, ValidateJSON(QuestionSchema, []byte(`{"id":"x","extra":1}`)))
	assert.NoError(t, ValidateJSON(nil, []byte(`not json`)))
}
