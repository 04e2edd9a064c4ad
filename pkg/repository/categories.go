package repository

import (
	"context"

	"github.com/example/inventory/pkg/models"
)

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *Store) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := first(ctx, s.db.Where("id = ?", id), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) ListCategories(ctx context.Context, skip, take int) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Offset(skip).Limit(take).Find(&categories).Error
	return categories, err
}

func (s *Store) CountCategories(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error
	return total, err
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

func (s *Store) SearchCategoriesByName(ctx context.Context, name string) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).Where("name LIKE ?", "%"+name+"%").Find(&categories).Error
	return categories, err
}
