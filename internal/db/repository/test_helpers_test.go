package repository

import "github.com/gokatarajesh/trivia-api/internal/db/queries"

func questionRow(id int64, text string, category int64) queries.Question {
	return queries.Question{ID: id, Question: text, Answer: "answer", Category: category, Difficulty: 1}
}
