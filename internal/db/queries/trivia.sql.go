package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const listCategories = `SELECT id, type FROM categories ORDER BY id`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Category])
}

const getCategory = `SELECT id, type FROM categories WHERE id = $1`

func (q *Queries) GetCategory(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := q.db.QueryRow(ctx, getCategory, id).Scan(&c.ID, &c.Type)
	return c, err
}

const listQuestions = `SELECT id, question, answer, category, difficulty FROM questions ORDER BY id`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Question])
}

const listQuestionsPage = `SELECT id, question, answer, category, difficulty FROM questions
ORDER BY id
LIMIT $1 OFFSET $2`

type ListQuestionsPageParams struct {
	Limit  int64
	Offset int64
}

func (q *Queries) ListQuestionsPage(ctx context.Context, arg ListQuestionsPageParams) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsPage, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Question])
}

const countQuestions = `SELECT COUNT(*) FROM questions`

func (q *Queries) CountQuestions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countQuestions).Scan(&n)
	return n, err
}

const listQuestionsByCategory = `SELECT id, question, answer, category, difficulty FROM questions
WHERE category = $1
ORDER BY id`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, category int64) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, category)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Question])
}

// $1 must already have LIKE wildcards escaped with a backslash.
const searchQuestions = `SELECT id, question, answer, category, difficulty FROM questions
WHERE question ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY id`

func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, term)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[Question])
}

const getQuestion = `SELECT id, question, answer, category, difficulty FROM questions WHERE id = $1`

func (q *Queries) GetQuestion(ctx context.Context, id int64) (Question, error) {
	var i Question
	err := q.db.QueryRow(ctx, getQuestion, id).Scan(
		&i.ID,
		&i.Question,
		&i.Answer,
		&i.Category,
		&i.Difficulty,
	)
	return i, err
}

const insertQuestion = `INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, category, difficulty`

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int64
	Difficulty int64
}

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	var i Question
	err := q.db.QueryRow(ctx, insertQuestion,
		arg.Question,
		arg.Answer,
		arg.Category,
		arg.Difficulty,
	).Scan(
		&i.ID,
		&i.Question,
		&i.Answer,
		&i.Category,
		&i.Difficulty,
	)
	return i, err
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

// DeleteQuestion returns the number of rows removed.
func (q *Queries) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
