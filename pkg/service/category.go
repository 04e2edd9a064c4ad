package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/models"
)

type CategoryService struct {
	store  Store
	logger *zap.Logger
}

func NewCategoryService(store Store, logger *zap.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperr.BadRequest("Category name is required")
	}
	now := time.Now()
	category := &models.Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.store.GetCategoryByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Category not found")
	} else if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, skip, take int) ([]models.Category, error) {
	skip, take = NormalizePage(skip, take)
	return s.store.ListCategories(ctx, skip, take)
}

func (s *CategoryService) Count(ctx context.Context) (int64, error) {
	return s.store.CountCategories(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*models.Category, error) {
	category, err := s.store.GetCategoryByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Category not found")
	} else if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperr.BadRequest("Category name is required")
	}

	category.Name = name
	category.UpdatedAt = time.Now()
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetCategoryByID(ctx, id); errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Category not found")
	} else if err != nil {
		return err
	}
	return s.store.DeleteCategory(ctx, id)
}

func (s *CategoryService) SearchByName(ctx context.Context, name string) ([]models.Category, error) {
	return s.store.SearchCategoriesByName(ctx, name)
}
