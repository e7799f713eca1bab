package trivia

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

// memoryStore answers the sqlc queries the way the SQL in db/queries does.
type memoryStore struct {
	mu         sync.Mutex
	nextID     int32
	questions  []sqlcgen.Question
	categories []sqlcgen.Category
	err        error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextID: 1,
		categories: []sqlcgen.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 3, Type: "Geography"},
			{ID: 4, Type: "History"},
			{ID: 5, Type: "Entertainment"},
			{ID: 6, Type: "Sports"},
		},
	}
}

// newSeededStore holds 15 questions; question i sits in category (i-1)%6+1.
func newSeededStore() *memoryStore {
	s := newMemoryStore()
	prompts := []string{
		"What is the heaviest organ in the human body?",
		"La Giaconda is better known as what?",
		"What is the largest lake in Africa?",
		"What boxer's original name is Cassius Clay?",
		"What movie earned Tom Hanks his third straight Oscar nomination?",
		"Which country won the first ever soccer World Cup in 1930?",
		"Who discovered penicillin?",
		"How many paintings did Van Gogh sell in his lifetime?",
		"The Taj Mahal is located in which Indian city?",
		"Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?",
		"What actor did author Anne Rice first denounce?",
		"Which is the only team to play in every soccer World Cup tournament?",
		"Hematology is a branch of medicine involving the study of what?",
		"Which Dutch graphic artist was a creator of optical illusions?",
		"In which royal palace would you find the Hall of Mirrors?",
	}
	for i, prompt := range prompts {
		s.add(prompt, "answer", int32(i%6+1), int32(i%5+1))
	}
	return s
}

func (s *memoryStore) add(question, answer string, category, difficulty int32) sqlcgen.Question {
	q := sqlcgen.Question{ID: s.nextID, Question: question, Answer: answer, Category: category, Difficulty: difficulty}
	s.nextID++
	s.questions = append(s.questions, q)
	return q
}

func (s *memoryStore) ids(category int32) []int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []int32
	for _, q := range s.questions {
		if category == CategoryAll || q.Category == category {
			out = append(out, q.ID)
		}
	}
	return out
}

func window(rows []sqlcgen.Question, limit, offset int32) []sqlcgen.Question {
	if int(offset) >= len(rows) {
		return nil
	}
	end := min(int(offset)+int(limit), len(rows))
	return slices.Clone(rows[offset:end])
}

func (s *memoryStore) filter(keep func(sqlcgen.Question) bool) []sqlcgen.Question {
	var out []sqlcgen.Question
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func matches(term string) func(sqlcgen.Question) bool {
	return func(q sqlcgen.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), strings.ToLower(term))
	}
}

func inCategory(category int32) func(sqlcgen.Question) bool {
	return func(q sqlcgen.Question) bool { return q.Category == category }
}

func (s *memoryStore) GetQuestion(_ context.Context, id int32) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return sqlcgen.Question{}, s.err
	}
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return sqlcgen.Question{}, pgx.ErrNoRows
}

func (s *memoryStore) ListQuestions(_ context.Context, arg sqlcgen.ListQuestionsParams) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return window(s.questions, arg.Limit, arg.Offset), nil
}

func (s *memoryStore) CountQuestions(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.questions)), nil
}

func (s *memoryStore) SearchQuestions(_ context.Context, arg sqlcgen.SearchQuestionsParams) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return window(s.filter(matches(arg.Term)), arg.Lim, arg.Off), nil
}

func (s *memoryStore) CountQuestionsMatching(_ context.Context, term string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.filter(matches(term)))), nil
}

func (s *memoryStore) ListQuestionsByCategory(_ context.Context, arg sqlcgen.ListQuestionsByCategoryParams) ([]sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return window(s.filter(inCategory(arg.Category)), arg.Lim, arg.Off), nil
}

func (s *memoryStore) CountQuestionsByCategory(_ context.Context, category int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.filter(inCategory(category)))), nil
}

func (s *memoryStore) InsertQuestion(_ context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return sqlcgen.Question{}, s.err
	}
	known := slices.ContainsFunc(s.categories, func(c sqlcgen.Category) bool { return c.ID == arg.Category })
	if !known {
		return sqlcgen.Question{}, &pgconn.PgError{Code: "23503", ConstraintName: "questions_category_fkey"}
	}
	return s.add(arg.Question, arg.Answer, arg.Category, arg.Difficulty), nil
}

func (s *memoryStore) DeleteQuestion(_ context.Context, id int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	before := len(s.questions)
	s.questions = slices.DeleteFunc(s.questions, func(q sqlcgen.Question) bool { return q.ID == id })
	return int64(before - len(s.questions)), nil
}

func (s *memoryStore) PickQuizQuestion(_ context.Context, arg sqlcgen.PickQuizQuestionParams) (sqlcgen.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return sqlcgen.Question{}, s.err
	}
	candidates := s.filter(func(q sqlcgen.Question) bool {
		if slices.Contains(arg.Excluded, q.ID) {
			return false
		}
		return arg.Category == CategoryAll || q.Category == arg.Category
	})
	if len(candidates) == 0 {
		return sqlcgen.Question{}, pgx.ErrNoRows
	}
	return candidates[rand.IntN(len(candidates))], nil
}

func (s *memoryStore) ListCategories(_ context.Context) ([]sqlcgen.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.categories), nil
}

func (s *memoryStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type memoryCache struct {
	stored CategoryMap
	gets   int
	sets   int
	err    error
}

func (c *memoryCache) Get(_ context.Context) (CategoryMap, error) {
	c.gets++
	if c.err != nil {
		return nil, c.err
	}
	return c.stored, nil
}

func (c *memoryCache) Set(_ context.Context, categories CategoryMap) error {
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.stored = categories
	return nil
}

func newTestService(store *memoryStore, cache CategoryCache) *Service {
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		cache,
		zerolog.Nop(),
	)
}
