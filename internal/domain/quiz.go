package domain

import "fmt"

// QuizQuestion is a single multiple-choice question produced by the LLM.
type QuizQuestion struct {
	ID                 int      `json:"id"`
	Question           string   `json:"question"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Validate checks the invariants a JSON schema cannot express on its own.
func (q *QuizQuestion) Validate() error {
	if len(q.Answers) == 0 {
		return fmt.Errorf("question %d: answers must not be empty", q.ID)
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Answers) {
		return fmt.Errorf("question %d: correctAnswerIndex %d out of range [0, %d)",
			q.ID, q.CorrectAnswerIndex, len(q.Answers))
	}
	return nil
}

// ResponseSchema declares the shape a structured-output provider must return.
// Definition is a JSON Schema document.
type ResponseSchema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// QuizQuestionSchema is the JSON Schema of one QuizQuestion.
func QuizQuestionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":       map[string]any{"type": "integer"},
			"question": map[string]any{"type": "string"},
			"answers": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
			},
			"correctAnswerIndex": map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"id", "question", "answers", "correctAnswerIndex"},
	}
}

// QuizSetSchema is the response-shape declaration sent with every prompt:
// an ordered array of QuizQuestion objects.
func QuizSetSchema() *ResponseSchema {
	return &ResponseSchema{
		Name:        "quiz_set",
		Description: "Revision quiz questions with multiple choice answers",
		Definition: map[string]any{
			"type":  "array",
			"items": QuizQuestionSchema(),
		},
	}
}
