// Package servicetest provides a map-backed, mutex-serialized
// implementation of service.Store for tests. Transact snapshots the
// data and restores it when the closure fails, mirroring the rollback
// the MySQL store gets from a real transaction.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/inventory/pkg/models"
	"github.com/example/inventory/pkg/service"
)

type data struct {
	users      map[string]models.User
	categories map[string]models.Category
	products   map[string]models.Product
	orders     map[string]models.Order
	orderItems map[string]models.OrderItem
}

func (d *data) clone() *data {
	c := &data{
		users:      make(map[string]models.User, len(d.users)),
		categories: make(map[string]models.Category, len(d.categories)),
		products:   make(map[string]models.Product, len(d.products)),
		orders:     make(map[string]models.Order, len(d.orders)),
		orderItems: make(map[string]models.OrderItem, len(d.orderItems)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.orderItems {
		c.orderItems[k] = v
	}
	return c
}

type Store struct {
	mu   *sync.Mutex
	data *data
	inTx bool
}

func NewStore() *Store {
	return &Store{
		mu: &sync.Mutex{},
		data: &data{
			users:      make(map[string]models.User),
			categories: make(map[string]models.Category),
			products:   make(map[string]models.Product),
			orders:     make(map[string]models.Order),
			orderItems: make(map[string]models.OrderItem),
		},
	}
}

// lock is a no-op inside a transaction; Transact already holds the
// mutex, which is what serializes concurrent workflows in tests.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Transact(ctx context.Context, fn func(service.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &Store{mu: s.mu, data: s.data, inTx: true}
	if err := fn(tx); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	defer s.lock()()
	s.data.users[user.ID] = *user
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	defer s.lock()()
	if u, ok := s.data.users[id]; ok {
		return &u, nil
	}
	return nil, service.ErrNotFound
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	defer s.lock()()
	for _, u := range s.data.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, service.ErrNotFound
}

func (s *Store) ListUsers(ctx context.Context, skip, take int) ([]models.User, error) {
	defer s.lock()()
	all := make([]models.User, 0, len(s.data.users))
	for _, u := range s.data.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, skip, take), nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.data.users)), nil
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	defer s.lock()()
	if _, ok := s.data.users[user.ID]; !ok {
		return service.ErrNotFound
	}
	s.data.users[user.ID] = *user
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	defer s.lock()()
	delete(s.data.users, id)
	return nil
}

func (s *Store) SearchUsersByName(ctx context.Context, name string) ([]models.User, error) {
	defer s.lock()()
	var out []models.User
	for _, u := range s.data.users {
		if strings.Contains(u.Name, name) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Categories

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	defer s.lock()()
	s.data.categories[category.ID] = *category
	return nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	defer s.lock()()
	if c, ok := s.data.categories[id]; ok {
		return &c, nil
	}
	return nil, service.ErrNotFound
}

func (s *Store) ListCategories(ctx context.Context, skip, take int) ([]models.Category, error) {
	defer s.lock()()
	all := make([]models.Category, 0, len(s.data.categories))
	for _, c := range s.data.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, skip, take), nil
}

func (s *Store) CountCategories(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.data.categories)), nil
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	defer s.lock()()
	if _, ok := s.data.categories[category.ID]; !ok {
		return service.ErrNotFound
	}
	s.data.categories[category.ID] = *category
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	defer s.lock()()
	delete(s.data.categories, id)
	return nil
}

func (s *Store) SearchCategoriesByName(ctx context.Context, name string) ([]models.Category, error) {
	defer s.lock()()
	var out []models.Category
	for _, c := range s.data.categories {
		if strings.Contains(c.Name, name) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Products

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	defer s.lock()()
	s.data.products[product.ID] = *product
	return nil
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	defer s.lock()()
	if p, ok := s.data.products[id]; ok {
		return &p, nil
	}
	return nil, service.ErrNotFound
}

func (s *Store) GetProductForUpdate(ctx context.Context, id string) (*models.Product, error) {
	return s.GetProductByID(ctx, id)
}

func (s *Store) ListProducts(ctx context.Context, skip, take int) ([]models.Product, error) {
	defer s.lock()()
	all := make([]models.Product, 0, len(s.data.products))
	for _, p := range s.data.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, skip, take), nil
}

func (s *Store) ListProductsByCategory(ctx context.Context, category string, skip, take int) ([]models.Product, error) {
	defer s.lock()()
	var out []models.Product
	for _, p := range s.data.products {
		if c, ok := s.data.categories[p.CategoryID]; ok && c.Name == category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, skip, take), nil
}

func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.data.products)), nil
}

func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	defer s.lock()()
	if _, ok := s.data.products[product.ID]; !ok {
		return service.ErrNotFound
	}
	s.data.products[product.ID] = *product
	return nil
}

// Stock and total writers mirror the UPDATE statements of the MySQL
// store: a missing row affects nothing and is not an error.

func (s *Store) SetProductStock(ctx context.Context, id string, quantityInStock int) error {
	defer s.lock()()
	if p, ok := s.data.products[id]; ok {
		p.QuantityInStock = quantityInStock
		s.data.products[id] = p
	}
	return nil
}

func (s *Store) AdjustProductStock(ctx context.Context, id string, delta int) error {
	defer s.lock()()
	if p, ok := s.data.products[id]; ok {
		p.QuantityInStock += delta
		s.data.products[id] = p
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	defer s.lock()()
	delete(s.data.products, id)
	return nil
}

func (s *Store) SearchProductsByName(ctx context.Context, name string) ([]models.Product, error) {
	defer s.lock()()
	var out []models.Product
	for _, p := range s.data.products {
		if strings.Contains(p.Name, name) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Orders

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	defer s.lock()()
	s.data.orders[order.ID] = *order
	return nil
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	defer s.lock()()
	if o, ok := s.data.orders[id]; ok {
		return &o, nil
	}
	return nil, service.ErrNotFound
}

func (s *Store) GetOrderForUpdate(ctx context.Context, id string) (*models.Order, error) {
	return s.GetOrderByID(ctx, id)
}

func (s *Store) ListOrders(ctx context.Context, skip, take int) ([]models.Order, error) {
	defer s.lock()()
	all := make([]models.Order, 0, len(s.data.orders))
	for _, o := range s.data.orders {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, skip, take), nil
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.data.orders)), nil
}

func (s *Store) UpdateOrder(ctx context.Context, order *models.Order) error {
	defer s.lock()()
	if _, ok := s.data.orders[order.ID]; !ok {
		return service.ErrNotFound
	}
	s.data.orders[order.ID] = *order
	return nil
}

func (s *Store) SetOrderTotal(ctx context.Context, id string, totalPrice float64) error {
	defer s.lock()()
	if o, ok := s.data.orders[id]; ok {
		o.TotalPrice = totalPrice
		s.data.orders[id] = o
	}
	return nil
}

func (s *Store) AdjustOrderTotal(ctx context.Context, id string, delta float64) error {
	defer s.lock()()
	if o, ok := s.data.orders[id]; ok {
		o.TotalPrice += delta
		s.data.orders[id] = o
	}
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	defer s.lock()()
	delete(s.data.orders, id)
	return nil
}

func (s *Store) SearchOrdersByCustomerName(ctx context.Context, customerName string) ([]models.Order, error) {
	defer s.lock()()
	var out []models.Order
	for _, o := range s.data.orders {
		if strings.Contains(o.CustomerName, customerName) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Order items

func (s *Store) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	defer s.lock()()
	s.data.orderItems[item.ID] = *item
	return nil
}

func (s *Store) GetOrderItemByID(ctx context.Context, id string) (*models.OrderItem, error) {
	defer s.lock()()
	if i, ok := s.data.orderItems[id]; ok {
		return &i, nil
	}
	return nil, service.ErrNotFound
}

func (s *Store) ListOrderItems(ctx context.Context, skip, take int) ([]models.OrderItem, error) {
	defer s.lock()()
	all := make([]models.OrderItem, 0, len(s.data.orderItems))
	for _, i := range s.data.orderItems {
		all = append(all, i)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, skip, take), nil
}

func (s *Store) ListOrderItemsByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	defer s.lock()()
	var out []models.OrderItem
	for _, i := range s.data.orderItems {
		if i.OrderID == orderID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) CountOrderItems(ctx context.Context) (int64, error) {
	defer s.lock()()
	return int64(len(s.data.orderItems)), nil
}

func (s *Store) UpdateOrderItem(ctx context.Context, item *models.OrderItem) error {
	defer s.lock()()
	if _, ok := s.data.orderItems[item.ID]; !ok {
		return service.ErrNotFound
	}
	s.data.orderItems[item.ID] = *item
	return nil
}

func (s *Store) DeleteOrderItem(ctx context.Context, id string) error {
	defer s.lock()()
	delete(s.data.orderItems, id)
	return nil
}

func page[T any](all []T, skip, take int) []T {
	if skip >= len(all) {
		return []T{}
	}
	end := skip + take
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end]
}

var _ service.Store = (*Store)(nil)
