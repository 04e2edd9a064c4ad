package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/inventory/pkg/models"
)

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	q := s.db.Preload("User").Where("id = ?", id)
	if err := first(ctx, q, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) GetOrderForUpdate(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	q := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
	if err := first(ctx, q, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context, skip, take int) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Offset(skip).Limit(take).
		Find(&orders).Error
	return orders, err
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

func (s *Store) UpdateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Save(order).Error
}

func (s *Store) SetOrderTotal(ctx context.Context, id string, totalPrice float64) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("total_price", totalPrice).Error
}

func (s *Store) AdjustOrderTotal(ctx context.Context, id string, delta float64) error {
	return s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("total_price", gorm.Expr("total_price + ?", delta)).Error
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}

func (s *Store) SearchOrdersByCustomerName(ctx context.Context, customerName string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("customer_name LIKE ?", "%"+customerName+"%").
		Find(&orders).Error
	return orders, err
}
