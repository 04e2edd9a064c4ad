package service

import (
	"context"
	"errors"

	"github.com/example/inventory/pkg/models"
)

// ErrNotFound is returned by Store implementations when a record does
// not exist. Services translate it into an apperr with an entity-specific
// message.
var ErrNotFound = errors.New("record not found")

const (
	DefaultSkip = 0
	DefaultTake = 10
)

// Store is the transactional data access boundary consumed by the
// services. Implementations must map missing records to ErrNotFound.
type Store interface {
	// Transact runs fn against a transaction-scoped Store. Every
	// multi-step stock/total workflow goes through here so a failed step
	// rolls back the whole unit.
	Transact(ctx context.Context, fn func(Store) error) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, skip, take int) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	SearchUsersByName(ctx context.Context, name string) ([]models.User, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id string) (*models.Category, error)
	ListCategories(ctx context.Context, skip, take int) ([]models.Category, error)
	CountCategories(ctx context.Context) (int64, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
	SearchCategoriesByName(ctx context.Context, name string) ([]models.Category, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	// GetProductForUpdate locks the product row for the duration of the
	// surrounding transaction.
	GetProductForUpdate(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, skip, take int) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, category string, skip, take int) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	SetProductStock(ctx context.Context, id string, quantityInStock int) error
	AdjustProductStock(ctx context.Context, id string, delta int) error
	DeleteProduct(ctx context.Context, id string) error
	SearchProductsByName(ctx context.Context, name string) ([]models.Product, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	// GetOrderForUpdate locks the order row for the duration of the
	// surrounding transaction.
	GetOrderForUpdate(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, skip, take int) ([]models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
	SetOrderTotal(ctx context.Context, id string, totalPrice float64) error
	AdjustOrderTotal(ctx context.Context, id string, delta float64) error
	DeleteOrder(ctx context.Context, id string) error
	SearchOrdersByCustomerName(ctx context.Context, customerName string) ([]models.Order, error)

	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	GetOrderItemByID(ctx context.Context, id string) (*models.OrderItem, error)
	ListOrderItems(ctx context.Context, skip, take int) ([]models.OrderItem, error)
	ListOrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error)
	CountOrderItems(ctx context.Context) (int64, error)
	UpdateOrderItem(ctx context.Context, item *models.OrderItem) error
	DeleteOrderItem(ctx context.Context, id string) error
}

// NormalizePage applies the skip/take defaults shared by every list
// endpoint.
func NormalizePage(skip, take int) (int, int) {
	if skip < 0 {
		skip = DefaultSkip
	}
	if take <= 0 {
		take = DefaultTake
	}
	return skip, take
}
