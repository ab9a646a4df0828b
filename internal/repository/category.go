package repository

import (
	"context"

	"github.com/jaekwang-park/taskboard/internal/model"
)

type CategoryRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Category, error)
	GetByID(ctx context.Context, userID, categoryID string) (model.Category, error)
	Create(ctx context.Context, category model.Category) (model.Category, error)
	Update(ctx context.Context, category model.Category) (model.Category, error)
	Delete(ctx context.Context, userID, categoryID string) error
}
