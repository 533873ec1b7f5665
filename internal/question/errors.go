package question

import "errors"

var (
	ErrQuestionNotFound     = errors.New("question not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrEmptySearchTerm      = errors.New("search term is empty")
	ErrQuizCategoryRequired = errors.New("quiz category is required")
	ErrInvalidQuestion      = errors.New("invalid question")
)
