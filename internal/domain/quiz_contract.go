package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	quizSetSchemaOnce     sync.Once
	compiledQuizSetSchema *jsonschema.Schema
	quizSetSchemaErr      error
)

func compileQuizSetSchema() (*jsonschema.Schema, error) {
	quizSetSchemaOnce.Do(func() {
		b, err := json.Marshal(QuizSetSchema().Definition)
		if err != nil {
			quizSetSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("quiz_set.json", bytes.NewReader(b)); err != nil {
			quizSetSchemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledQuizSetSchema, quizSetSchemaErr = compiler.Compile("quiz_set.json")
	})
	return compiledQuizSetSchema, quizSetSchemaErr
}

// ParseQuizResponse turns the provider's raw structured output into quiz
// questions. Any deviation from the QuizSet shape, an out-of-range
// correctAnswerIndex, or a repeated id yields a SCHEMA_VIOLATION error and no
// questions.
func ParseQuizResponse(raw string) ([]QuizQuestion, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return nil, NewSchemaViolationError("LLM response is empty", nil)
	}

	schema, err := compileQuizSetSchema()
	if err != nil {
		return nil, NewInternalError("quiz schema is invalid", err)
	}

	var doc any
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, NewSchemaViolationError("LLM response is not valid JSON", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, NewSchemaViolationError("LLM response does not match the quiz schema", err)
	}

	var wire []quizQuestionWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, NewSchemaViolationError("LLM response could not be decoded", err)
	}

	questions := make([]QuizQuestion, len(wire))
	seen := make(map[int]int, len(wire))
	for i := range wire {
		decoded, err := wire[i].question()
		if err != nil {
			return nil, NewSchemaViolationError("LLM response contains an invalid question", err).
				WithContext("question_index", i)
		}
		questions[i] = decoded
		q := &questions[i]
		if err := q.Validate(); err != nil {
			return nil, NewSchemaViolationError("LLM response contains an invalid question", err).
				WithContext("question_index", i)
		}
		if first, dup := seen[q.ID]; dup {
			return nil, NewSchemaViolationError("LLM response contains duplicate question ids",
				fmt.Errorf("id %d used by questions %d and %d", q.ID, first, i)).
				WithContext("question_index", i)
		}
		seen[q.ID] = i
	}

	return questions, nil
}

// quizQuestionWire keeps the integer fields as json.Number. JSON Schema counts
// 1.0 and 1e2 as integers, which encoding/json refuses to put into an int.
type quizQuestionWire struct {
	ID                 json.Number `json:"id"`
	Question           string      `json:"question"`
	Answers            []string    `json:"answers"`
	CorrectAnswerIndex json.Number `json:"correctAnswerIndex"`
}

func (w quizQuestionWire) question() (QuizQuestion, error) {
	id, err := wholeNumber(w.ID)
	if err != nil {
		return QuizQuestion{}, fmt.Errorf("id: %w", err)
	}
	index, err := wholeNumber(w.CorrectAnswerIndex)
	if err != nil {
		return QuizQuestion{}, fmt.Errorf("correctAnswerIndex: %w", err)
	}
	return QuizQuestion{
		ID:                 id,
		Question:           w.Question,
		Answers:            w.Answers,
		CorrectAnswerIndex: index,
	}, nil
}

// maxExactInteger is the largest magnitude a float64 holds without rounding.
const maxExactInteger = 1 << 53

func wholeNumber(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactInteger {
		return 0, fmt.Errorf("%s is not an integer in range", n)
	}
	return int(f), nil
}
