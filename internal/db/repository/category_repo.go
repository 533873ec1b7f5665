package repository

import (
	"context"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]queries.Category, error)
	GetCategory(ctx context.Context, id int64) (queries.Category, error)
}

// CategoryRepository is read-only; categories are populated by migrations.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

func (r *CategoryRepository) List(ctx context.Context) ([]queries.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id int64) (queries.Category, error) {
	row, err := r.store.GetCategory(ctx, id)
	if err != nil {
		return queries.Category{}, fmt.Errorf("get category %d: %w", id, notFound(err))
	}
	return row, nil
}
