package repository

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type questionStore interface {
	GetQuestion(ctx context.Context, id int32) (sqlcgen.Question, error)
	ListQuestions(ctx context.Context, arg sqlcgen.ListQuestionsParams) ([]sqlcgen.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	SearchQuestions(ctx context.Context, arg sqlcgen.SearchQuestionsParams) ([]sqlcgen.Question, error)
	CountQuestionsMatching(ctx context.Context, term string) (int64, error)
	ListQuestionsByCategory(ctx context.Context, arg sqlcgen.ListQuestionsByCategoryParams) ([]sqlcgen.Question, error)
	CountQuestionsByCategory(ctx context.Context, category int32) (int64, error)
	InsertQuestion(ctx context.Context, arg sqlcgen.InsertQuestionParams) (sqlcgen.Question, error)
	DeleteQuestion(ctx context.Context, id int32) (int64, error)
	PickQuizQuestion(ctx context.Context, arg sqlcgen.PickQuizQuestionParams) (sqlcgen.Question, error)
}

// QuestionRepository wraps sqlc queries for the question bank.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// Get returns a single question or ErrNotFound.
func (r *QuestionRepository) Get(ctx context.Context, id int32) (sqlcgen.Question, error) {
	q, err := r.store.GetQuestion(ctx, id)
	return q, translate("get question", err)
}

// List returns one window of all questions ordered by id, plus the unwindowed count.
func (r *QuestionRepository) List(ctx context.Context, limit, offset int32) ([]sqlcgen.Question, int64, error) {
	total, err := r.store.CountQuestions(ctx)
	if err != nil {
		return nil, 0, translate("count questions", err)
	}
	rows, err := r.store.ListQuestions(ctx, sqlcgen.ListQuestionsParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, translate("list questions", err)
	}
	return rows, total, nil
}

// Search matches term as a case-insensitive substring of the question text.
func (r *QuestionRepository) Search(ctx context.Context, term string, limit, offset int32) ([]sqlcgen.Question, int64, error) {
	total, err := r.store.CountQuestionsMatching(ctx, term)
	if err != nil {
		return nil, 0, translate("count matching questions", err)
	}
	rows, err := r.store.SearchQuestions(ctx, sqlcgen.SearchQuestionsParams{Term: term, Lim: limit, Off: offset})
	if err != nil {
		return nil, 0, translate("search questions", err)
	}
	return rows, total, nil
}

// ListByCategory returns one window of the questions filed under category.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category, limit, offset int32) ([]sqlcgen.Question, int64, error) {
	total, err := r.store.CountQuestionsByCategory(ctx, category)
	if err != nil {
		return nil, 0, translate("count category questions", err)
	}
	rows, err := r.store.ListQuestionsByCategory(ctx, sqlcgen.ListQuestionsByCategoryParams{
		Category: category,
		Lim:      limit,
		Off:      offset,
	})
	if err != nil {
		return nil, 0, translate("list category questions", err)
	}
	return rows, total, nil
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params sqlcgen.InsertQuestionParams) (sqlcgen.Question, error) {
	q, err := r.store.InsertQuestion(ctx, params)
	return q, translate("insert question", err)
}

// Delete removes a question; ErrNotFound when no row had that id.
func (r *QuestionRepository) Delete(ctx context.Context, id int32) error {
	affected, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return translate("delete question", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete question %d: %w", id, ErrNotFound)
	}
	return nil
}

// PickRandom draws one question not in excluded, restricted to category unless it is 0.
// ErrNotFound means the candidate set is empty.
func (r *QuestionRepository) PickRandom(ctx context.Context, excluded []int32, category int32) (sqlcgen.Question, error) {
	if excluded == nil {
		// a NULL array would exclude every row
		excluded = []int32{}
	}
	q, err := r.store.PickQuizQuestion(ctx, sqlcgen.PickQuizQuestionParams{
		Excluded: excluded,
		Category: category,
	})
	return q, translate("pick quiz question", err)
}
