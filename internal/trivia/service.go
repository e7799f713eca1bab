package trivia

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

var (
	// ErrEmptyPage means the requested page of the unfiltered listing holds no questions.
	ErrEmptyPage = errors.New("no questions on requested page")
	// ErrInvalidQuestion means a create payload is incomplete or out of range.
	ErrInvalidQuestion = errors.New("invalid question payload")
	// ErrInvalidQuiz means a quiz request lacks its category.
	ErrInvalidQuiz = errors.New("invalid quiz payload")
)

const (
	minDifficulty = 1
	maxDifficulty = 5
)

// CategoryCache defines category map caching (implemented by the Redis-backed Cache).
type CategoryCache interface {
	Get(ctx context.Context) (CategoryMap, error)
	Set(ctx context.Context, categories CategoryMap) error
}

// Service implements the question bank operations on top of the repositories.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	cache      CategoryCache
	logger     zerolog.Logger
}

// NewService wires the repositories; cache may be nil.
func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, cache CategoryCache, logger zerolog.Logger) *Service {
	return &Service{
		questions:  questions,
		categories: categories,
		cache:      cache,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// Categories returns every category keyed by id.
func (s *Service) Categories(ctx context.Context) (CategoryMap, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			categoryCacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Msg("category cache read failed")
		case cached != nil:
			categoryCacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			categoryCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	categories := make(CategoryMap, len(rows))
	for _, row := range rows {
		categories[row.ID] = row.Type
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// ListQuestions returns one page of all questions ordered by id. An empty page,
// for whatever reason, is ErrEmptyPage.
func (s *Service) ListQuestions(ctx context.Context, page Page) (QuestionPage, error) {
	result, err := s.listAll(ctx, page)
	if err != nil {
		return QuestionPage{}, err
	}
	if len(result.Questions) == 0 {
		return result, ErrEmptyPage
	}
	return result, nil
}

// SearchQuestions pages through questions whose text contains term, ignoring case.
func (s *Service) SearchQuestions(ctx context.Context, term string, page Page) (QuestionPage, error) {
	limit, offset := page.Bounds()
	rows, total, err := s.questions.Search(ctx, term, limit, offset)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{Questions: toQuestions(rows), Total: total}, nil
}

// QuestionsByCategory pages through the questions of one category. The id is
// used as given.
func (s *Service) QuestionsByCategory(ctx context.Context, category int32, page Page) (QuestionPage, error) {
	limit, offset := page.Bounds()
	rows, total, err := s.questions.ListByCategory(ctx, category, limit, offset)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{Questions: toQuestions(rows), Total: total}, nil
}

// CreateQuestion validates and inserts req, then returns the new id and the
// requested page of the full listing.
func (s *Service) CreateQuestion(ctx context.Context, req QuestionRequest, page Page) (int32, QuestionPage, error) {
	params, err := validateQuestion(req)
	if err != nil {
		return 0, QuestionPage{}, err
	}

	created, err := s.questions.Insert(ctx, params)
	if err != nil {
		return 0, QuestionPage{}, err
	}
	questionsCreated.Inc()
	s.logger.Info().Int32("question_id", created.ID).Int32("category", created.Category).Msg("question created")

	result, err := s.listAll(ctx, page)
	if err != nil {
		return 0, QuestionPage{}, err
	}
	return created.ID, result, nil
}

// DeleteQuestion looks the question up, removes it and returns the requested
// page of what is left. A missing id surfaces as repository.ErrNotFound.
func (s *Service) DeleteQuestion(ctx context.Context, id int32, page Page) (QuestionPage, error) {
	if _, err := s.questions.Get(ctx, id); err != nil {
		return QuestionPage{}, err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return QuestionPage{}, err
	}
	questionsDeleted.Inc()
	s.logger.Info().Int32("question_id", id).Msg("question deleted")

	return s.listAll(ctx, page)
}

// PlayQuiz draws a random question the client has not seen yet. A nil question
// with a nil error means the pool is exhausted.
func (s *Service) PlayQuiz(ctx context.Context, req QuizRequest) (*Question, error) {
	if req.QuizCategory == nil || req.QuizCategory.ID == nil {
		return nil, fmt.Errorf("%w: quiz_category.id is required", ErrInvalidQuiz)
	}

	excluded := make([]int32, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		excluded = append(excluded, int32(id))
	}
	category := int32(*req.QuizCategory.ID)

	row, err := s.questions.PickRandom(ctx, excluded, category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			quizRounds.WithLabelValues("exhausted").Inc()
			return nil, nil
		}
		return nil, err
	}
	quizRounds.WithLabelValues("served").Inc()
	q := toQuestion(row)
	return &q, nil
}

func (s *Service) listAll(ctx context.Context, page Page) (QuestionPage, error) {
	limit, offset := page.Bounds()
	rows, total, err := s.questions.List(ctx, limit, offset)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{Questions: toQuestions(rows), Total: total}, nil
}

func validateQuestion(req QuestionRequest) (sqlcgen.InsertQuestionParams, error) {
	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	switch {
	case question == "":
		return sqlcgen.InsertQuestionParams{}, fmt.Errorf("%w: question is required", ErrInvalidQuestion)
	case answer == "":
		return sqlcgen.InsertQuestionParams{}, fmt.Errorf("%w: answer is required", ErrInvalidQuestion)
	case req.Category == nil:
		return sqlcgen.InsertQuestionParams{}, fmt.Errorf("%w: category is required", ErrInvalidQuestion)
	case req.Difficulty == nil:
		return sqlcgen.InsertQuestionParams{}, fmt.Errorf("%w: difficulty is required", ErrInvalidQuestion)
	}
	difficulty := int32(*req.Difficulty)
	if difficulty < minDifficulty || difficulty > maxDifficulty {
		return sqlcgen.InsertQuestionParams{}, fmt.Errorf("%w: difficulty must be between %d and %d", ErrInvalidQuestion, minDifficulty, maxDifficulty)
	}
	return sqlcgen.InsertQuestionParams{
		Question:   question,
		Answer:     answer,
		Category:   int32(*req.Category),
		Difficulty: difficulty,
	}, nil
}
