package quizgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"slide-quiz/internal/domain"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIServer(t *testing.T, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 30, "total_tokens": 42},
		})
	}))
}

func newTestOpenAIGenerator(t *testing.T, serverURL string) *OpenAIQuizGenerator {
	t.Helper()
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = serverURL
	gen, err := newOpenAIQuizGenerator(cfg, "gpt-4o-mini", 0.2)
	require.NoError(t, err)
	return gen
}

func TestOpenAIQuizGenerator_GenerateStructured(t *testing.T) {
	var body map[string]any
	server := newTestOpenAIServer(t, `{"questions":[{"id":1,"question":"What are cats?","answers":["Mammals","Fish"],"correctAnswerIndex":0}]}`, &body)
	defer server.Close()

	gen := newTestOpenAIGenerator(t, server.URL)
	raw, err := gen.GenerateStructured(context.Background(), "NOTES : \n\ncats", domain.QuizSetSchema())
	require.NoError(t, err)

	questions, err := domain.ParseQuizResponse(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "What are cats?", questions[0].Question)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	format := body["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	jsonSchema := format["json_schema"].(map[string]any)
	assert.Equal(t, "quiz_set", jsonSchema["name"])
	assert.Equal(t, true, jsonSchema["strict"])
	schema := jsonSchema["schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Contains(t, schema["properties"], "questions")
	item := schema["properties"].(map[string]any)["questions"].(map[string]any)["items"].(map[string]any)
	assert.Equal(t, false, item["additionalProperties"])

	messages := body["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "NOTES : \n\ncats", messages[0].(map[string]any)["content"])
}

func TestOpenAIQuizGenerator_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	gen := newTestOpenAIGenerator(t, server.URL)
	_, err := gen.GenerateStructured(context.Background(), "p", domain.QuizSetSchema())
	assert.Error(t, err)
}

func TestNewOpenAIQuizGenerator_Validation(t *testing.T) {
	_, err := NewOpenAIQuizGenerator("", "gpt-4o-mini", 0)
	assert.Error(t, err)

	_, err = NewOpenAIQuizGenerator("key", "", 0)
	assert.Error(t, err)
}
