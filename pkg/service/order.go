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

type OrderService struct {
	store  Store
	logger *zap.Logger
}

func NewOrderService(store Store, logger *zap.Logger) *OrderService {
	return &OrderService{store: store, logger: logger}
}

type OrderInput struct {
	Date          string `json:"date"`
	TotalPrice    string `json:"totalPrice"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	UserID        string `json:"userId"`
}

func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	totalPrice, err := parsePrice("totalPrice", in.TotalPrice)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		ID:            uuid.NewString(),
		Date:          date,
		TotalPrice:    totalPrice,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		UserID:        in.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Order not found")
	} else if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, skip, take int) ([]models.Order, error) {
	skip, take = NormalizePage(skip, take)
	return s.store.ListOrders(ctx, skip, take)
}

func (s *OrderService) Count(ctx context.Context) (int64, error) {
	return s.store.CountOrders(ctx)
}

func (s *OrderService) Update(ctx context.Context, id string, in OrderInput) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Order not found")
	} else if err != nil {
		return nil, err
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	totalPrice, err := parsePrice("totalPrice", in.TotalPrice)
	if err != nil {
		return nil, err
	}

	order.Date = date
	order.TotalPrice = totalPrice
	order.CustomerName = in.CustomerName
	order.CustomerEmail = in.CustomerEmail
	if in.UserID != "" {
		order.UserID = in.UserID
	}
	order.User = nil
	order.UpdatedAt = time.Now()
	if err := s.store.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order by replaying the single-item delete workflow
// for each owned order item, so stock reservations are released and the
// total zeroed before the parent row goes away. The loop and the final
// delete share one transaction.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	return s.store.Transact(ctx, func(tx Store) error {
		if _, err := tx.GetOrderByID(ctx, id); errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Order not found")
		} else if err != nil {
			return err
		}

		items, err := tx.ListOrderItemsByOrder(ctx, id)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := deleteOrderItem(ctx, tx, s.logger, item.ID); err != nil {
				return err
			}
		}
		return tx.DeleteOrder(ctx, id)
	})
}

func (s *OrderService) SearchByCustomerName(ctx context.Context, customerName string) ([]models.Order, error) {
	return s.store.SearchOrdersByCustomerName(ctx, customerName)
}
