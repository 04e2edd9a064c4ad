package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/models"
	"github.com/example/inventory/pkg/service"
	"github.com/example/inventory/pkg/service/servicetest"
)

type fixture struct {
	store   *servicetest.Store
	items   *service.OrderItemService
	orders  *service.OrderService
	product *models.Product
	order   *models.Order
}

func newFixture(t *testing.T, stock int, initialTotal float64) *fixture {
	t.Helper()
	store := servicetest.NewStore()
	logger := zap.NewNop()
	ctx := context.Background()

	product := &models.Product{
		ID:              uuid.NewString(),
		Name:            "Mechanical Keyboard",
		Price:           100000,
		QuantityInStock: stock,
		CategoryID:      uuid.NewString(),
	}
	require.NoError(t, store.CreateProduct(ctx, product))

	order := &models.Order{
		ID:            uuid.NewString(),
		Date:          time.Now(),
		TotalPrice:    initialTotal,
		CustomerName:  "Budi",
		CustomerEmail: "budi@example.com",
	}
	require.NoError(t, store.CreateOrder(ctx, order))

	return &fixture{
		store:   store,
		items:   service.NewOrderItemService(store, logger),
		orders:  service.NewOrderService(store, logger),
		product: product,
		order:   order,
	}
}

func (f *fixture) productStock(t *testing.T) int {
	t.Helper()
	p, err := f.store.GetProductByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	return p.QuantityInStock
}

func (f *fixture) orderTotal(t *testing.T) float64 {
	t.Helper()
	o, err := f.store.GetOrderByID(context.Background(), f.order.ID)
	require.NoError(t, err)
	return o.TotalPrice
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperr.From(err).Code)
}

func TestCreateOrderItem(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves stock and accumulates the order total", func(t *testing.T) {
		f := newFixture(t, 100, 0)

		item, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "3",
			UnitPrice: "100000",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)
		assert.Equal(t, float64(100000), item.UnitPrice)

		assert.Equal(t, 97, f.productStock(t))
		assert.Equal(t, float64(300000), f.orderTotal(t))
	})

	t.Run("adds to an existing total", func(t *testing.T) {
		f := newFixture(t, 100, 50000)

		_, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "2",
			UnitPrice: "1000",
		})
		require.NoError(t, err)
		assert.Equal(t, float64(52000), f.orderTotal(t))
	})

	t.Run("rejects insufficient stock and changes nothing", func(t *testing.T) {
		f := newFixture(t, 5, 0)

		_, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "6",
			UnitPrice: "100",
		})
		assertCode(t, err, http.StatusBadRequest)

		assert.Equal(t, 5, f.productStock(t))
		assert.Equal(t, float64(0), f.orderTotal(t))
		count, _ := f.store.CountOrderItems(ctx)
		assert.Zero(t, count)
	})

	t.Run("missing product", func(t *testing.T) {
		f := newFixture(t, 5, 0)
		_, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: uuid.NewString(),
			Quantity:  "1",
			UnitPrice: "100",
		})
		assertCode(t, err, http.StatusNotFound)
	})

	t.Run("missing order", func(t *testing.T) {
		f := newFixture(t, 5, 0)
		_, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   uuid.NewString(),
			ProductID: f.product.ID,
			Quantity:  "1",
			UnitPrice: "100",
		})
		assertCode(t, err, http.StatusNotFound)
		assert.Equal(t, 5, f.productStock(t))
	})

	t.Run("malformed quantity", func(t *testing.T) {
		f := newFixture(t, 5, 0)
		_, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "three",
			UnitPrice: "100",
		})
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		f := newFixture(t, 5, 0)
		_, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "0",
			UnitPrice: "100",
		})
		assertCode(t, err, http.StatusBadRequest)
	})
}

func TestDeleteOrderItem(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip restores stock and total", func(t *testing.T) {
		f := newFixture(t, 100, 250000)

		item, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "3",
			UnitPrice: "100000",
		})
		require.NoError(t, err)
		require.Equal(t, 97, f.productStock(t))
		require.Equal(t, float64(550000), f.orderTotal(t))

		require.NoError(t, f.items.Delete(ctx, item.ID))

		assert.Equal(t, 100, f.productStock(t))
		assert.Equal(t, float64(250000), f.orderTotal(t))
		_, err = f.store.GetOrderItemByID(ctx, item.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		f := newFixture(t, 100, 0)
		err := f.items.Delete(ctx, uuid.NewString())
		assertCode(t, err, http.StatusNotFound)
	})
}

func TestUpdateOrderItem(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the old reservation before validating", func(t *testing.T) {
		// Stock 10, item holds 8, so only 2 remain free. Raising the
		// item to 9 is fine because its own 8 come back first.
		f := newFixture(t, 10, 0)
		item, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "8",
			UnitPrice: "100",
		})
		require.NoError(t, err)
		require.Equal(t, 2, f.productStock(t))

		updated, err := f.items.Update(ctx, item.ID, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "9",
			UnitPrice: "100",
		})
		require.NoError(t, err)
		assert.Equal(t, 9, updated.Quantity)
		assert.Equal(t, 1, f.productStock(t))
		assert.Equal(t, float64(900), f.orderTotal(t))
	})

	t.Run("lowering quantity always passes validation", func(t *testing.T) {
		f := newFixture(t, 5, 0)
		item, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "5",
			UnitPrice: "100",
		})
		require.NoError(t, err)
		require.Equal(t, 0, f.productStock(t))

		_, err = f.items.Update(ctx, item.ID, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "2",
			UnitPrice: "100",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, f.productStock(t))
		assert.Equal(t, float64(200), f.orderTotal(t))
	})

	t.Run("rejects a raise beyond released stock plus free stock", func(t *testing.T) {
		f := newFixture(t, 10, 0)
		item, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "8",
			UnitPrice: "100",
		})
		require.NoError(t, err)

		_, err = f.items.Update(ctx, item.ID, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "11",
			UnitPrice: "100",
		})
		assertCode(t, err, http.StatusBadRequest)
		assert.Equal(t, 2, f.productStock(t))
		assert.Equal(t, float64(800), f.orderTotal(t))
	})

	t.Run("unit price change keeps other lines' contribution", func(t *testing.T) {
		f := newFixture(t, 100, 0)

		first, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "2",
			UnitPrice: "1000",
		})
		require.NoError(t, err)
		_, err = f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "1",
			UnitPrice: "500",
		})
		require.NoError(t, err)
		require.Equal(t, float64(2500), f.orderTotal(t))

		// Only the first line's price changes; the second line's 500
		// must survive. The old overwrite semantics would have left
		// the total at 3000.
		_, err = f.items.Update(ctx, first.ID, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "2",
			UnitPrice: "1500",
		})
		require.NoError(t, err)
		assert.Equal(t, float64(3500), f.orderTotal(t))
	})

	t.Run("moving to another product releases the old reservation", func(t *testing.T) {
		f := newFixture(t, 10, 0)
		other := &models.Product{
			ID:              uuid.NewString(),
			Name:            "Wireless Mouse",
			Price:           20000,
			QuantityInStock: 4,
		}
		require.NoError(t, f.store.CreateProduct(ctx, other))

		item, err := f.items.Create(ctx, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "6",
			UnitPrice: "100",
		})
		require.NoError(t, err)
		require.Equal(t, 4, f.productStock(t))

		_, err = f.items.Update(ctx, item.ID, service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: other.ID,
			Quantity:  "3",
			UnitPrice: "200",
		})
		require.NoError(t, err)

		assert.Equal(t, 10, f.productStock(t))
		moved, err := f.store.GetProductByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, moved.QuantityInStock)
		assert.Equal(t, float64(600), f.orderTotal(t))
	})

	t.Run("missing item", func(t *testing.T) {
		f := newFixture(t, 10, 0)
		_, err := f.items.Update(ctx, uuid.NewString(), service.OrderItemInput{
			OrderID:   f.order.ID,
			ProductID: f.product.ID,
			Quantity:  "1",
			UnitPrice: "100",
		})
		assertCode(t, err, http.StatusNotFound)
	})
}

func TestDeleteOrderCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100, 0)

	second := &models.Product{
		ID:              uuid.NewString(),
		Name:            "USB Hub",
		Price:           5000,
		QuantityInStock: 20,
	}
	require.NoError(t, f.store.CreateProduct(ctx, second))

	_, err := f.items.Create(ctx, service.OrderItemInput{
		OrderID:   f.order.ID,
		ProductID: f.product.ID,
		Quantity:  "3",
		UnitPrice: "100000",
	})
	require.NoError(t, err)
	_, err = f.items.Create(ctx, service.OrderItemInput{
		OrderID:   f.order.ID,
		ProductID: second.ID,
		Quantity:  "5",
		UnitPrice: "5000",
	})
	require.NoError(t, err)

	require.NoError(t, f.orders.Delete(ctx, f.order.ID))

	assert.Equal(t, 100, f.productStock(t))
	p2, err := f.store.GetProductByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, p2.QuantityInStock)

	count, _ := f.store.CountOrderItems(ctx)
	assert.Zero(t, count)
	_, err = f.store.GetOrderByID(ctx, f.order.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestConcurrentCreateOrderItem(t *testing.T) {
	// Two concurrent creations whose combined quantity exceeds stock:
	// exactly one must fail and stock must never go negative.
	ctx := context.Background()
	f := newFixture(t, 10, 0)

	quantities := []string{"7", "6"}
	errs := make([]error, len(quantities))

	var wg sync.WaitGroup
	for i, q := range quantities {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			_, errs[i] = f.items.Create(ctx, service.OrderItemInput{
				OrderID:   f.order.ID,
				ProductID: f.product.ID,
				Quantity:  q,
				UnitPrice: "100",
			})
		}(i, q)
	}
	wg.Wait()

	var failed int
	for _, err := range errs {
		if err != nil {
			assertCode(t, err, http.StatusBadRequest)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
	assert.GreaterOrEqual(t, f.productStock(t), 0)
}
