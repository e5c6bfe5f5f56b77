package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"slide-quiz/internal/domain"

	"github.com/google/generative-ai-go/genai"
)

// questionsField wraps the quiz array for providers whose JSON modes only
// emit objects.
const questionsField = "questions"

// wrapSchema nests an array schema under a single required "questions"
// property of a top-level object. Every object in the result is closed with
// additionalProperties: false, which OpenAI strict mode requires.
func wrapSchema(schema *domain.ResponseSchema) map[string]any {
	return closeObjects(map[string]any{
		"type": "object",
		"properties": map[string]any{
			questionsField: schema.Definition,
		},
		"required": []string{questionsField},
	}).(map[string]any)
}

// closeObjects returns a copy of a JSON Schema fragment with
// additionalProperties: false on every object schema. The input is not
// modified.
func closeObjects(node any) any {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v)+1)
		for key, child := range v {
			out[key] = closeObjects(child)
		}
		if v["type"] == "object" {
			out["additionalProperties"] = false
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = closeObjects(child)
		}
		return out
	default:
		return node
	}
}

// unwrapQuestions returns the "questions" member of an object payload, or the
// payload unchanged when it is already an array or cannot be unwrapped. Shape
// problems are left for domain.ParseQuizResponse to report.
func unwrapQuestions(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return trimmed
	}
	if questions, ok := obj[questionsField]; ok {
		return string(questions)
	}
	return trimmed
}

// stripThink removes a leading <think>...</think> block emitted by reasoning
// models.
func stripThink(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}
	return cleaned
}

// toGenaiSchema converts the JSON Schema subset used by the quiz contract
// (object, array, string, integer, number, boolean; properties, items,
// required) into Gemini's schema type.
func toGenaiSchema(def map[string]any) (*genai.Schema, error) {
	typeName, _ := def["type"].(string)
	s := &genai.Schema{}
	if desc, ok := def["description"].(string); ok {
		s.Description = desc
	}

	switch typeName {
	case "object":
		s.Type = genai.TypeObject
		props, _ := def["properties"].(map[string]any)
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			propDef, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q: definition is %T, not an object", name, raw)
			}
			prop, err := toGenaiSchema(propDef)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			s.Properties[name] = prop
		}
		switch required := def["required"].(type) {
		case []string:
			s.Required = append(s.Required, required...)
		case []any:
			for _, r := range required {
				if name, ok := r.(string); ok {
					s.Required = append(s.Required, name)
				}
			}
		}
	case "array":
		s.Type = genai.TypeArray
		itemsDef, ok := def["items"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("array schema without items")
		}
		items, err := toGenaiSchema(itemsDef)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		s.Items = items
	case "string":
		s.Type = genai.TypeString
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	case "boolean":
		s.Type = genai.TypeBoolean
	default:
		return nil, fmt.Errorf("unsupported schema type %q", typeName)
	}
	return s, nil
}
