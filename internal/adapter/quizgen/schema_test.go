package quizgen

import (
	"testing"

	"slide-quiz/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGenaiSchema_QuizSet(t *testing.T) {
	s, err := toGenaiSchema(domain.QuizSetSchema().Definition)
	require.NoError(t, err)

	assert.Equal(t, genai.TypeArray, s.Type)
	require.NotNil(t, s.Items)
	item := s.Items
	assert.Equal(t, genai.TypeObject, item.Type)
	assert.ElementsMatch(t, []string{"id", "question", "answers", "correctAnswerIndex"}, item.Required)
	assert.Equal(t, genai.TypeInteger, item.Properties["id"].Type)
	assert.Equal(t, genai.TypeString, item.Properties["question"].Type)
	assert.Equal(t, genai.TypeArray, item.Properties["answers"].Type)
	assert.Equal(t, genai.TypeString, item.Properties["answers"].Items.Type)
	assert.Equal(t, genai.TypeInteger, item.Properties["correctAnswerIndex"].Type)
}

func TestToGenaiSchema_RequiredFromDecodedJSON(t *testing.T) {
	s, err := toGenaiSchema(map[string]any{
		"type":       "object",
		"properties": map[string]any{"ok": map[string]any{"type": "boolean"}},
		"required":   []any{"ok"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, s.Required)
	assert.Equal(t, genai.TypeBoolean, s.Properties["ok"].Type)
}

func TestToGenaiSchema_Errors(t *testing.T) {
	_, err := toGenaiSchema(map[string]any{"type": "null"})
	assert.Error(t, err)

	_, err = toGenaiSchema(map[string]any{"type": "array"})
	assert.Error(t, err)

	_, err = toGenaiSchema(map[string]any{
		"type":       "object",
		"properties": map[string]any{"bad": "string"},
	})
	assert.Error(t, err)
}

func TestWrapSchema(t *testing.T) {
	schema := domain.QuizSetSchema()
	wrapped := wrapSchema(schema)

	assert.Equal(t, "object", wrapped["type"])
	assert.Equal(t, []string{"questions"}, wrapped["required"])
	assert.Equal(t, false, wrapped["additionalProperties"])

	props := wrapped["properties"].(map[string]any)
	questions := props["questions"].(map[string]any)
	assert.Equal(t, "array", questions["type"])
	assert.NotContains(t, questions, "additionalProperties")

	item := questions["items"].(map[string]any)
	assert.Equal(t, false, item["additionalProperties"])
	assert.ElementsMatch(t, []string{"id", "question", "answers", "correctAnswerIndex"}, item["required"])
	assert.Len(t, item["properties"], 4)

	_, leaked := schema.Definition["items"].(map[string]any)["additionalProperties"]
	assert.False(t, leaked, "wrapSchema must not modify the domain schema")
}

func TestUnwrapQuestions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"wrapped", `{"questions": [{"id": 1}]}`, `[{"id": 1}]`},
		{"bare array", "  [1, 2]\n", "[1, 2]"},
		{"object without questions", `{"quiz": []}`, `{"quiz": []}`},
		{"broken object", `{"questions": [`, `{"questions": [`},
		{"prose", "no json here", "no json here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unwrapQuestions(tt.raw))
		})
	}
}

func TestStripThink(t *testing.T) {
	assert.Equal(t, `{"questions": []}`, stripThink("<think>\nlet me plan\n</think>\n{\"questions\": []}"))
	assert.Equal(t, "[]", stripThink("  []  "))
	assert.Equal(t, "<think> unterminated []", stripThink("<think> unterminated []"))
}
