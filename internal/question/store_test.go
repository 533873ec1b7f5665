package question

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// memoryStore implements the question and category stores over maps so the
// service and handlers run without Postgres.
type memoryStore struct {
	mu         sync.Mutex
	questions  map[int64]queries.Question
	categories map[int64]queries.Category
	nextID     int64
	failWith   error
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{
		questions:  map[int64]queries.Question{},
		categories: map[int64]queries.Category{},
		nextID:     1,
	}
	for id, label := range map[int64]string{1: "Science", 2: "Art", 3: "Geography", 4: "History", 5: "Entertainment", 6: "Sports"} {
		s.categories[id] = queries.Category{ID: id, Type: label}
	}
	return s
}

func (s *memoryStore) seed(rows ...queries.Question) *memoryStore {
	for _, row := range rows {
		s.questions[row.ID] = row
		if row.ID >= s.nextID {
			s.nextID = row.ID + 1
		}
	}
	return s
}

func (s *memoryStore) repos() (*repository.QuestionRepository, *repository.CategoryRepository) {
	return repository.NewQuestionRepository(s), repository.NewCategoryRepository(s)
}

func (s *memoryStore) sorted(keep func(queries.Question) bool) []queries.Question {
	out := []queries.Question{}
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStore) ListQuestions(context.Context) ([]queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(queries.Question) bool { return true }), nil
}

func (s *memoryStore) ListQuestionsPage(_ context.Context, arg queries.ListQuestionsPageParams) ([]queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	if arg.Offset < 0 {
		return nil, errors.New("OFFSET must not be negative")
	}
	all := s.sorted(func(queries.Question) bool { return true })
	if int(arg.Offset) >= len(all) {
		return []queries.Question{}, nil
	}
	end := min(int(arg.Offset+arg.Limit), len(all))
	return all[arg.Offset:end], nil
}

func (s *memoryStore) CountQuestions(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	return int64(len(s.questions)), nil
}

func (s *memoryStore) ListQuestionsByCategory(_ context.Context, category int64) ([]queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.sorted(func(q queries.Question) bool { return q.Category == category }), nil
}

// SearchQuestions mimics ILIKE over an escaped term.
func (s *memoryStore) SearchQuestions(_ context.Context, term string) ([]queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	unescaped := strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`).Replace(term)
	needle := strings.ToLower(unescaped)
	return s.sorted(func(q queries.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (s *memoryStore) GetQuestion(_ context.Context, id int64) (queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return queries.Question{}, s.failWith
	}
	q, ok := s.questions[id]
	if !ok {
		return queries.Question{}, pgx.ErrNoRows
	}
	return q, nil
}

func (s *memoryStore) InsertQuestion(_ context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return queries.Question{}, s.failWith
	}
	if _, ok := s.categories[arg.Category]; !ok {
		return queries.Question{}, &pgconn.PgError{Code: pgForeignKeyViolation, Message: "violates foreign key constraint"}
	}
	row := queries.Question{
		ID:         s.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	s.questions[row.ID] = row
	s.nextID++
	return row, nil
}

func (s *memoryStore) DeleteQuestion(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	if _, ok := s.questions[id]; !ok {
		return 0, nil
	}
	delete(s.questions, id)
	return 1, nil
}

func (s *memoryStore) ListCategories(context.Context) ([]queries.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := make([]queries.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) GetCategory(_ context.Context, id int64) (queries.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return queries.Category{}, s.failWith
	}
	c, ok := s.categories[id]
	if !ok {
		return queries.Category{}, pgx.ErrNoRows
	}
	return c, nil
}

func sampleRows() []queries.Question {
	return []queries.Question{
		{ID: 5, Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 4, Difficulty: 2},
		{ID: 6, Question: "What was the title of the 1990 fantasy directed by Tim Burton about a young man with multi-bladed appendages?", Answer: "Edward Scissorhands", Category: 5, Difficulty: 3},
		{ID: 9, Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", Category: 4, Difficulty: 1},
		{ID: 12, Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", Category: 4, Difficulty: 2},
		{ID: 13, Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", Category: 3, Difficulty: 2},
		{ID: 20, Question: "What is the heaviest organ in the human body?", Answer: "The Liver", Category: 1, Difficulty: 4},
		{ID: 21, Question: "Who discovered penicillin?", Answer: "Alexander Fleming", Category: 1, Difficulty: 3},
		{ID: 22, Question: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", Category: 1, Difficulty: 4},
	}
}

func numberedRows(n int) []queries.Question {
	out := make([]queries.Question, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, queries.Question{ID: int64(i), Question: "Question " + string(rune('A'+i%26)), Answer: "a", Category: int64(1 + i%6), Difficulty: 1})
	}
	return out
}
