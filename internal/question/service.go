package question

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// Postgres foreign_key_violation.
const pgForeignKeyViolation = "23503"

// Service answers listing, search, filter and quiz requests. With the store
// strategy filtering and paging happen in SQL; with the memory strategy the
// full collection is loaded and the selection functions do the work.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	pageSize   int
	strategy   string
	intn       func(n int) int
}

type ServiceOptions struct {
	PageSize      int
	FetchStrategy string
	// Rand overrides the quiz draw; it must return a value in [0, n).
	Rand func(n int) int
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts ServiceOptions) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	strategy := opts.FetchStrategy
	if strategy == "" {
		strategy = config.FetchStrategyStore
	}
	intn := opts.Rand
	if intn == nil {
		intn = rand.IntN
	}
	return &Service{
		questions:  questions,
		categories: categories,
		pageSize:   pageSize,
		strategy:   strategy,
		intn:       intn,
	}
}

func (s *Service) inMemory() bool {
	return s.strategy == config.FetchStrategyMemory
}

// Categories returns every category ordered by id.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: row.ID, Type: row.Type})
	}
	return out, nil
}

// ListPage returns the requested page with the unpaginated total and the
// full category list.
func (s *Service) ListPage(ctx context.Context, page int) (QuestionPage, error) {
	var (
		questions []Question
		total     int
	)
	if s.inMemory() {
		all, err := s.allQuestions(ctx)
		if err != nil {
			return QuestionPage{}, err
		}
		questions = Paginate(all, page, s.pageSize)
		total = len(all)
	} else {
		n, err := s.questions.Count(ctx)
		if err != nil {
			return QuestionPage{}, err
		}
		total = n
		questions = []Question{}
		if offset, ok := PageStart(page, s.pageSize, n); ok {
			rows, err := s.questions.ListPage(ctx, s.pageSize, offset)
			if err != nil {
				return QuestionPage{}, err
			}
			questions = toDomainList(rows)
		}
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		return QuestionPage{}, err
	}
	return QuestionPage{Questions: questions, Total: total, Categories: categories}, nil
}

// Search returns questions whose text contains term, ignoring case.
func (s *Service) Search(ctx context.Context, term string) ([]Question, error) {
	normalized, err := NormalizeSearchTerm(term)
	if err != nil {
		return nil, err
	}
	if s.inMemory() {
		all, err := s.allQuestions(ctx)
		if err != nil {
			return nil, err
		}
		return Search(all, normalized)
	}
	rows, err := s.questions.Search(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// ByCategory resolves the category and returns its questions. An unknown
// category is ErrCategoryNotFound, never an empty list.
func (s *Service) ByCategory(ctx context.Context, categoryID int64) ([]Question, Category, error) {
	row, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Category{}, fmt.Errorf("%w: %d", ErrCategoryNotFound, categoryID)
		}
		return nil, Category{}, err
	}
	category := Category{ID: row.ID, Type: row.Type}

	questions, err := s.categoryQuestions(ctx, categoryID)
	if err != nil {
		return nil, Category{}, err
	}
	return questions, category, nil
}

// NextQuizQuestion draws a question from the category that is not in
// previous. A nil question with a nil error means the quiz is over.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	if req.QuizCategory == nil || req.QuizCategory.ID == nil {
		return nil, ErrQuizCategoryRequired
	}
	categoryID := int64(*req.QuizCategory.ID)

	pool, err := s.categoryQuestions(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	previous := make([]int64, 0, len(req.PreviousQuestions))
	for _, id := range req.PreviousQuestions {
		previous = append(previous, int64(id))
	}

	picked := PickUnseen(pool, categoryID, previous, s.intn)
	if picked == nil {
		quizSelections.WithLabelValues(outcomeExhausted).Inc()
	} else {
		quizSelections.WithLabelValues(outcomeQuestion).Inc()
	}
	return picked, nil
}

// Create validates req and inserts it, returning the stored question.
func (s *Service) Create(ctx context.Context, req CreateQuestionRequest) (Question, error) {
	params, err := validateCreate(req)
	if err != nil {
		return Question{}, err
	}
	row, err := s.questions.Insert(ctx, params)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Question{}, fmt.Errorf("%w: %d", ErrCategoryNotFound, params.Category)
		}
		return Question{}, err
	}
	return toDomain(row), nil
}

// Delete removes the question with id, or reports ErrQuestionNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.questions.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrQuestionNotFound, id)
		}
		return err
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrQuestionNotFound, id)
		}
		return err
	}
	return nil
}

func (s *Service) allQuestions(ctx context.Context) ([]Question, error) {
	rows, err := s.questions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func (s *Service) categoryQuestions(ctx context.Context, categoryID int64) ([]Question, error) {
	if s.inMemory() {
		all, err := s.allQuestions(ctx)
		if err != nil {
			return nil, err
		}
		return FilterByCategory(all, categoryID), nil
	}
	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

func validateCreate(req CreateQuestionRequest) (queries.InsertQuestionParams, error) {
	switch {
	case req.Question == nil:
		return queries.InsertQuestionParams{}, fmt.Errorf("%w: question is required", ErrInvalidQuestion)
	case req.Answer == nil:
		return queries.InsertQuestionParams{}, fmt.Errorf("%w: answer is required", ErrInvalidQuestion)
	case req.Category == nil:
		return queries.InsertQuestionParams{}, fmt.Errorf("%w: category is required", ErrInvalidQuestion)
	case req.Difficulty == nil:
		return queries.InsertQuestionParams{}, fmt.Errorf("%w: difficulty is required", ErrInvalidQuestion)
	}

	text := strings.TrimSpace(*req.Question)
	answer := strings.TrimSpace(*req.Answer)
	if text == "" {
		return queries.InsertQuestionParams{}, fmt.Errorf("%w: question is blank", ErrInvalidQuestion)
	}
	if answer == "" {
		return queries.InsertQuestionParams{}, fmt.Errorf("%w: answer is blank", ErrInvalidQuestion)
	}
	if *req.Difficulty < 1 {
		return queries.InsertQuestionParams{}, fmt.Errorf("%w: difficulty must be positive", ErrInvalidQuestion)
	}

	return queries.InsertQuestionParams{
		Question:   text,
		Answer:     answer,
		Category:   int64(*req.Category),
		Difficulty: int64(*req.Difficulty),
	}, nil
}

func toDomain(row queries.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func toDomainList(rows []queries.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out
}
