package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaekwang-park/taskboard/internal/model"
	"github.com/jaekwang-park/taskboard/internal/repository"
)

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	categories, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, categoryID string) (model.Category, error) {
	if userID == "" {
		return model.Category{}, ErrUnauthenticated
	}
	c, err := s.repo.GetByID(ctx, userID, categoryID)
	if err != nil {
		return model.Category{}, storeError("get category", err)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, userID string, input model.NewCategory) (model.Category, error) {
	if userID == "" {
		return model.Category{}, ErrUnauthenticated
	}
	c := model.Category{
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		Color:       input.Color,
		Description: input.Description,
	}
	if err := validateCategory(c); err != nil {
		return model.Category{}, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return model.Category{}, storeError("create category", err)
	}
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID string, patch model.CategoryPatch) (model.Category, error) {
	existing, err := s.Get(ctx, userID, categoryID)
	if err != nil {
		return model.Category{}, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	next := patch.Apply(existing)
	if err := validateCategory(next); err != nil {
		return model.Category{}, err
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return model.Category{}, storeError("update category", err)
	}
	return updated, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, categoryID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.repo.Delete(ctx, userID, categoryID); err != nil {
		return storeError("delete category", err)
	}
	return nil
}

func validateCategory(c model.Category) error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !model.ValidColor(c.Color) {
		return fmt.Errorf("%w: color must be #RRGGBB", ErrInvalidInput)
	}
	return nil
}
