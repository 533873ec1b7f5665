package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Question is a single trivia item as delivered to clients.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int64  `json:"difficulty"`
}

// Category is a labelled grouping questions reference by id.
type Category struct {
	ID   int64
	Type string
}

// CategoryMap renders categories as the id -> type object clients expect.
func CategoryMap(categories []Category) map[string]string {
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[strconv.FormatInt(c.ID, 10)] = c.Type
	}
	return out
}

// FlexInt decodes either a JSON integer or a string holding one. Category and
// difficulty arrive both ways from form-driven clients.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		raw = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = FlexInt(n)
	return nil
}

// CreateQuestionRequest is the POST /questions body. Pointers distinguish
// missing or null fields from zero values.
type CreateQuestionRequest struct {
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Category   *FlexInt `json:"category"`
	Difficulty *FlexInt `json:"difficulty"`
}

// SearchRequest is the POST /questions/search body.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// QuizCategory identifies the category a quiz draws from.
type QuizCategory struct {
	ID   *FlexInt `json:"id"`
	Type string   `json:"type,omitempty"`
}

// UnmarshalJSON treats an empty string like an absent category.
func (c *QuizCategory) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte(`""`)) {
		*c = QuizCategory{}
		return nil
	}
	type plain QuizCategory
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*c = QuizCategory(p)
	return nil
}

// QuizRequest is the POST /quizzes body.
type QuizRequest struct {
	PreviousQuestions []FlexInt     `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

// QuestionPage is one page of the global listing plus its context.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Categories []Category
}

type listQuestionsResponse struct {
	Questions       []Question        `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory *string           `json:"current_category"`
	Categories      map[string]string `json:"categories"`
}

type filteredQuestionsResponse struct {
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"totalQuestions"`
	CurrentCategory *string    `json:"currentCategory"`
}

type quizResponse struct {
	Question *Question `json:"question"`
}
