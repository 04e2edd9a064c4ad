package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/inventory/pkg/models"
)

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	q := s.db.Preload("Category").Preload("User").Where("id = ?", id)
	if err := first(ctx, q, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) GetProductForUpdate(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	q := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
	if err := first(ctx, q, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) ListProducts(ctx context.Context, skip, take int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").Preload("User").
		Offset(skip).Limit(take).
		Find(&products).Error
	return products, err
}

func (s *Store) ListProductsByCategory(ctx context.Context, category string, skip, take int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name = ?", category).
		Offset(skip).Limit(take).
		Find(&products).Error
	return products, err
}

func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

func (s *Store) SetProductStock(ctx context.Context, id string, quantityInStock int) error {
	return s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		Update("quantity_in_stock", quantityInStock).Error
}

func (s *Store) AdjustProductStock(ctx context.Context, id string, delta int) error {
	return s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", delta)).Error
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

func (s *Store) SearchProductsByName(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("name LIKE ?", "%"+name+"%").
		Find(&products).Error
	return products, err
}
