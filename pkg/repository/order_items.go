package repository

import (
	"context"

	"github.com/example/inventory/pkg/models"
)

func (s *Store) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetOrderItemByID(ctx context.Context, id string) (*models.OrderItem, error) {
	var item models.OrderItem
	q := s.db.Preload("Order").Preload("Product").Where("id = ?", id)
	if err := first(ctx, q, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListOrderItems(ctx context.Context, skip, take int) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).
		Preload("Order").Preload("Product").
		Offset(skip).Limit(take).
		Find(&items).Error
	return items, err
}

func (s *Store) ListOrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (s *Store) CountOrderItems(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.OrderItem{}).Count(&total).Error
	return total, err
}

func (s *Store) UpdateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteOrderItem(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OrderItem{}).Error
}
