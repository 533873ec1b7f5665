package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

type questionSource interface {
	Fetch(ctx context.Context, amount int) ([]external.OpenTDBQuestion, error)
}

// ImportResult counts what an import run did.
type ImportResult struct {
	Fetched  int
	Inserted int
	Skipped  int
}

// Importer copies questions from an external source into the local store,
// keeping only those whose category maps onto an existing Category.
type Importer struct {
	svc    *Service
	source questionSource
	logger zerolog.Logger
}

func NewImporter(svc *Service, source questionSource, logger zerolog.Logger) *Importer {
	return &Importer{
		svc:    svc,
		source: source,
		logger: logger.With().Str("component", "question_importer").Logger(),
	}
}

// Import fetches amount questions and inserts the ones that map cleanly.
func (im *Importer) Import(ctx context.Context, amount int) (ImportResult, error) {
	var result ImportResult

	categories, err := im.svc.Categories(ctx)
	if err != nil {
		return result, fmt.Errorf("load categories: %w", err)
	}

	items, err := im.source.Fetch(ctx, amount)
	if err != nil {
		return result, fmt.Errorf("fetch questions: %w", err)
	}
	result.Fetched = len(items)

	for _, item := range items {
		category, ok := MatchCategory(categories, item.Category)
		if !ok {
			im.logger.Debug().Str("category", item.Category).Msg("no local category, skipping")
			result.Skipped++
			continue
		}
		difficulty, ok := DifficultyLevel(item.Difficulty)
		if !ok {
			im.logger.Debug().Str("difficulty", item.Difficulty).Msg("unknown difficulty, skipping")
			result.Skipped++
			continue
		}

		text, answer := item.Question, item.CorrectAnswer
		cat, diff := FlexInt(category.ID), FlexInt(difficulty)
		_, err := im.svc.Create(ctx, CreateQuestionRequest{
			Question:   &text,
			Answer:     &answer,
			Category:   &cat,
			Difficulty: &diff,
		})
		if errors.Is(err, ErrInvalidQuestion) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("insert imported question: %w", err)
		}
		result.Inserted++
	}

	im.logger.Info().
		Int("fetched", result.Fetched).
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Msg("import finished")
	return result, nil
}

// MatchCategory finds the category whose type label prefixes label, ignoring
// case. The longest matching label wins.
func MatchCategory(categories []Category, label string) (Category, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	var (
		best  Category
		found bool
	)
	for _, c := range categories {
		t := strings.ToLower(c.Type)
		if t == "" || !strings.HasPrefix(label, t) {
			continue
		}
		if !found || len(t) > len(best.Type) {
			best, found = c, true
		}
	}
	return best, found
}

// DifficultyLevel maps easy/medium/hard onto 1/2/3.
func DifficultyLevel(name string) (int64, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return 1, true
	case "medium":
		return 2, true
	case "hard":
		return 3, true
	default:
		return 0, false
	}
}
