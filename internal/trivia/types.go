package trivia

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// QuestionsPerPage is the fixed page size for every paginated listing.
const QuestionsPerPage = 10

// CategoryAll selects the whole pool in quiz play.
const CategoryAll = 0

// Question is the formatted record delivered to clients.
type Question struct {
	ID         int32  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int32  `json:"category"`
	Difficulty int32  `json:"difficulty"`
}

// CategoryMap maps category id to its type label. Keys encode as JSON object keys.
type CategoryMap map[int32]string

// QuestionPage is one page of a filtered listing with the unpaginated match count.
type QuestionPage struct {
	Questions []Question
	Total     int64
}

// FlexInt decodes a JSON number or a numeric string; clients send category ids both ways.
type FlexInt int32

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		*f = FlexInt(n)
		return nil
	}
	// integral floats such as 3.0
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return fmt.Errorf("expected integer, got %s", data)
	}
	*f = FlexInt(v)
	return nil
}

// QuestionRequest is the POST /questions payload; SearchTerm selects the search branch.
type QuestionRequest struct {
	SearchTerm *string  `json:"searchTerm"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Difficulty *FlexInt `json:"difficulty"`
	Category   *FlexInt `json:"category"`
}

// IsSearch reports whether the payload asks for a search rather than a create.
func (r QuestionRequest) IsSearch() bool {
	return r.SearchTerm != nil && *r.SearchTerm != ""
}

// QuizCategory identifies the pool a quiz draws from; ID 0 means every category.
type QuizCategory struct {
	ID   *FlexInt `json:"id"`
	Type string   `json:"type"`
}

// QuizRequest carries the client-tracked quiz session.
type QuizRequest struct {
	PreviousQuestions []FlexInt     `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`
}

func toQuestion(row sqlcgen.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func toQuestions(rows []sqlcgen.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}
