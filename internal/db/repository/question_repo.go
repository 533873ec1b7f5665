package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]queries.Question, error)
	ListQuestionsPage(ctx context.Context, arg queries.ListQuestionsPageParams) ([]queries.Question, error)
	CountQuestions(ctx context.Context) (int64, error)
	ListQuestionsByCategory(ctx context.Context, category int64) ([]queries.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]queries.Question, error)
	GetQuestion(ctx context.Context, id int64) (queries.Question, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error)
	DeleteQuestion(ctx context.Context, id int64) (int64, error)
}

// QuestionRepository wraps the question queries. Every listing is ordered by id.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListAll returns the full question collection.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]queries.Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return rows, nil
}

// ListPage returns at most limit questions starting at offset.
func (r *QuestionRepository) ListPage(ctx context.Context, limit, offset int) ([]queries.Question, error) {
	rows, err := r.store.ListQuestionsPage(ctx, queries.ListQuestionsPageParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("list questions page: %w", err)
	}
	return rows, nil
}

func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	n, err := r.store.CountQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return int(n), nil
}

func (r *QuestionRepository) ListByCategory(ctx context.Context, category int64) ([]queries.Question, error) {
	rows, err := r.store.ListQuestionsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list questions for category %d: %w", category, err)
	}
	return rows, nil
}

// Search matches term case-insensitively anywhere in the question text. LIKE
// wildcards in term are matched literally.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]queries.Question, error) {
	rows, err := r.store.SearchQuestions(ctx, EscapeLike(term))
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return rows, nil
}

func (r *QuestionRepository) Get(ctx context.Context, id int64) (queries.Question, error) {
	row, err := r.store.GetQuestion(ctx, id)
	if err != nil {
		return queries.Question{}, fmt.Errorf("get question %d: %w", id, notFound(err))
	}
	return row, nil
}

func (r *QuestionRepository) Insert(ctx context.Context, params queries.InsertQuestionParams) (queries.Question, error) {
	row, err := r.store.InsertQuestion(ctx, params)
	if err != nil {
		return queries.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return row, nil
}

// Delete removes the question, returning ErrNotFound when nothing matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters with a backslash.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
