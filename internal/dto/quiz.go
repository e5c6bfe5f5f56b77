package dto

import "slide-quiz/internal/domain"

// QuizQuestionResponse represents a generated question in the API response
// @Description Multiple-choice question
type QuizQuestionResponse struct {
	ID                 int      `json:"id" example:"1"`
	Question           string   `json:"question" example:"What are cats?"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex" example:"0"`
}

// NewQuizSetResponse maps validated questions to the response body. A nil
// input still encodes as an empty array.
func NewQuizSetResponse(questions []domain.QuizQuestion) []QuizQuestionResponse {
	out := make([]QuizQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuizQuestionResponse{
			ID:                 q.ID,
			Question:           q.Question,
			Answers:            q.Answers,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
		})
	}
	return out
}

// HealthResponse represents the health check body
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Provider string `json:"provider" example:"gemini"`
	Model    string `json:"model" example:"gemini-1.5-flash"`
}
