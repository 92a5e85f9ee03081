package llm

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// EmptyAnswerText replaces a completion whose response field is missing or blank.
const EmptyAnswerText = "죄송합니다. 답변을 생성할 수 없습니다."

// DefaultConfidence is assumed when the model omits a confidence value.
const DefaultConfidence = 0.5

// Answer is the structured reply the assistant is instructed to produce.
type Answer struct {
	Response   string
	Confidence float64
}

type rawAnswer struct {
	Response   *string  `json:"response"`
	Confidence *float64 `json:"confidence"`
}

// ParseAnswer decodes a completion of the form {"response": ..., "confidence": ...}.
// Markdown code fences around the JSON are tolerated. A blank completion is
// treated as an empty object. Text that is not a JSON object is an error.
func ParseAnswer(raw string) (Answer, error) {
	body := stripFences(raw)
	if body == "" {
		body = "{}"
	}
	var r rawAnswer
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return Answer{}, fmt.Errorf("llm: decode answer: %w", err)
	}

	a := Answer{Response: EmptyAnswerText, Confidence: DefaultConfidence}
	if r.Response != nil && strings.TrimSpace(*r.Response) != "" {
		a.Response = strings.TrimSpace(*r.Response)
	}
	if r.Confidence != nil {
		a.Confidence = Clamp(*r.Confidence)
	}
	return a, nil
}

// Clamp bounds a confidence value to [0, 1]. NaN becomes 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// stripFences removes a surrounding ``` or ```json fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string ("json") on the opening line.
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
