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

// OrderItemService implements the stock reconciliation workflow: every
// order-item mutation adjusts the referenced product's stock and the
// parent order's totalPrice inside one transaction, with the product and
// order rows locked so concurrent mutations of the same rows serialize.
type OrderItemService struct {
	store  Store
	logger *zap.Logger
}

func NewOrderItemService(store Store, logger *zap.Logger) *OrderItemService {
	return &OrderItemService{store: store, logger: logger}
}

// OrderItemInput carries the raw request fields; quantity and unitPrice
// arrive as strings and are coerced before use.
type OrderItemInput struct {
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

func (s *OrderItemService) Create(ctx context.Context, in OrderItemInput) (*models.OrderItem, error) {
	quantity, err := parseQuantity("quantity", in.Quantity)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, apperr.BadRequest("Quantity must be positive")
	}
	unitPrice, err := parsePrice("unitPrice", in.UnitPrice)
	if err != nil {
		return nil, err
	}

	var created *models.OrderItem
	err = s.store.Transact(ctx, func(tx Store) error {
		product, err := tx.GetProductForUpdate(ctx, in.ProductID)
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Product not found")
		} else if err != nil {
			return err
		}

		order, err := tx.GetOrderForUpdate(ctx, in.OrderID)
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Order not found")
		} else if err != nil {
			return err
		}

		if quantity > product.QuantityInStock {
			return apperr.BadRequest("Insufficient stock")
		}

		if err := tx.SetProductStock(ctx, product.ID, product.QuantityInStock-quantity); err != nil {
			s.logger.Error("Failed to update product stock", zap.String("product_id", product.ID), zap.Error(err))
			return apperr.Internal("Failed to update product stock")
		}

		lineTotal := float64(quantity) * unitPrice
		if err := tx.SetOrderTotal(ctx, order.ID, order.TotalPrice+lineTotal); err != nil {
			s.logger.Error("Failed to update order total price", zap.String("order_id", order.ID), zap.Error(err))
			return apperr.Internal("Failed to update order total price")
		}

		now := time.Now()
		item := &models.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.CreateOrderItem(ctx, item); err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *OrderItemService) GetByID(ctx context.Context, id string) (*models.OrderItem, error) {
	item, err := s.store.GetOrderItemByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("OrderItem not found")
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderItemService) List(ctx context.Context, skip, take int) ([]models.OrderItem, error) {
	skip, take = NormalizePage(skip, take)
	return s.store.ListOrderItems(ctx, skip, take)
}

func (s *OrderItemService) Count(ctx context.Context) (int64, error) {
	return s.store.CountOrderItems(ctx)
}

// Update moves the item to the (possibly new) product and order. The old
// reservation is released before the new quantity is validated, so the
// available stock is currentStock plus the quantity the item already
// holds on the same product.
//
// The parent order's totalPrice is adjusted by the delta between the old
// and new line totals rather than overwritten, so other line items on
// the order keep their contribution.
func (s *OrderItemService) Update(ctx context.Context, id string, in OrderItemInput) (*models.OrderItem, error) {
	quantity, err := parseQuantity("quantity", in.Quantity)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, apperr.BadRequest("Quantity must be positive")
	}
	unitPrice, err := parsePrice("unitPrice", in.UnitPrice)
	if err != nil {
		return nil, err
	}

	var updated *models.OrderItem
	err = s.store.Transact(ctx, func(tx Store) error {
		item, err := tx.GetOrderItemByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("OrderItem not found")
		} else if err != nil {
			return err
		}

		product, err := tx.GetProductForUpdate(ctx, in.ProductID)
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Product not found")
		} else if err != nil {
			return err
		}

		order, err := tx.GetOrderForUpdate(ctx, in.OrderID)
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Order not found")
		} else if err != nil {
			return err
		}

		available := product.QuantityInStock
		if product.ID == item.ProductID {
			available += item.Quantity
		}
		if quantity > available {
			return apperr.BadRequest("Insufficient stock")
		}

		if product.ID != item.ProductID {
			// Item moved to another product; return the old reservation
			// to the old product.
			if _, err := tx.GetProductForUpdate(ctx, item.ProductID); err != nil {
				return err
			}
			if err := tx.AdjustProductStock(ctx, item.ProductID, item.Quantity); err != nil {
				s.logger.Error("Failed to update product stock", zap.String("product_id", item.ProductID), zap.Error(err))
				return apperr.Internal("Failed to update product stock")
			}
		}
		if err := tx.SetProductStock(ctx, product.ID, available-quantity); err != nil {
			s.logger.Error("Failed to update product stock", zap.String("product_id", product.ID), zap.Error(err))
			return apperr.Internal("Failed to update product stock")
		}

		oldLine := item.LineTotal()
		newLine := float64(quantity) * unitPrice
		if order.ID == item.OrderID {
			if err := tx.SetOrderTotal(ctx, order.ID, order.TotalPrice-oldLine+newLine); err != nil {
				s.logger.Error("Failed to update order total price", zap.String("order_id", order.ID), zap.Error(err))
				return apperr.Internal("Failed to update order total price")
			}
		} else {
			// Item moved to another order; each order keeps only its own
			// lines' contribution.
			if _, err := tx.GetOrderForUpdate(ctx, item.OrderID); err != nil {
				return err
			}
			if err := tx.AdjustOrderTotal(ctx, item.OrderID, -oldLine); err != nil {
				s.logger.Error("Failed to update order total price", zap.String("order_id", item.OrderID), zap.Error(err))
				return apperr.Internal("Failed to update order total price")
			}
			if err := tx.SetOrderTotal(ctx, order.ID, order.TotalPrice+newLine); err != nil {
				s.logger.Error("Failed to update order total price", zap.String("order_id", order.ID), zap.Error(err))
				return apperr.Internal("Failed to update order total price")
			}
		}

		item.OrderID = order.ID
		item.ProductID = product.ID
		item.Quantity = quantity
		item.UnitPrice = unitPrice
		item.Order = nil
		item.Product = nil
		item.UpdatedAt = time.Now()
		if err := tx.UpdateOrderItem(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *OrderItemService) Delete(ctx context.Context, id string) error {
	return s.store.Transact(ctx, func(tx Store) error {
		return deleteOrderItem(ctx, tx, s.logger, id)
	})
}

// deleteOrderItem releases the item's stock reservation and removes its
// line total from the parent order before deleting the record. Order
// deletion replays this for every owned item, so it must stay safe to
// call inside an enclosing transaction.
func deleteOrderItem(ctx context.Context, tx Store, logger *zap.Logger, id string) error {
	item, err := tx.GetOrderItemByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("OrderItem not found")
	} else if err != nil {
		return err
	}

	if _, err := tx.GetProductForUpdate(ctx, item.ProductID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := tx.AdjustProductStock(ctx, item.ProductID, item.Quantity); err != nil {
		logger.Error("Failed to update product stock", zap.String("product_id", item.ProductID), zap.Error(err))
		return apperr.Internal("Failed to update product stock")
	}

	if _, err := tx.GetOrderForUpdate(ctx, item.OrderID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := tx.AdjustOrderTotal(ctx, item.OrderID, -item.LineTotal()); err != nil {
		logger.Error("Failed to update order total price", zap.String("order_id", item.OrderID), zap.Error(err))
		return apperr.Internal("Failed to update order total price")
	}

	return tx.DeleteOrderItem(ctx, id)
}
