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

type ProductService struct {
	store  Store
	logger *zap.Logger
}

func NewProductService(store Store, logger *zap.Logger) *ProductService {
	return &ProductService{store: store, logger: logger}
}

type ProductInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Price           string `json:"price"`
	QuantityInStock string `json:"quantityInStock"`
	CategoryID      string `json:"categoryId"`
	UserID          string `json:"userId"`
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	price, err := parsePrice("price", in.Price)
	if err != nil {
		return nil, err
	}
	stock, err := parseQuantity("quantityInStock", in.QuantityInStock)
	if err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, apperr.BadRequest("quantityInStock must not be negative")
	}

	if _, err := s.store.GetCategoryByID(ctx, in.CategoryID); errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Category not found")
	} else if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &models.Product{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		Price:           price,
		QuantityInStock: stock,
		CategoryID:      in.CategoryID,
		UserID:          in.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Product not found")
	} else if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, skip, take int) ([]models.Product, error) {
	skip, take = NormalizePage(skip, take)
	return s.store.ListProducts(ctx, skip, take)
}

func (s *ProductService) ListByCategory(ctx context.Context, category string, skip, take int) ([]models.Product, error) {
	skip, take = NormalizePage(skip, take)
	return s.store.ListProductsByCategory(ctx, category, skip, take)
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.store.CountProducts(ctx)
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Product not found")
	} else if err != nil {
		return nil, err
	}

	price, err := parsePrice("price", in.Price)
	if err != nil {
		return nil, err
	}
	stock, err := parseQuantity("quantityInStock", in.QuantityInStock)
	if err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, apperr.BadRequest("quantityInStock must not be negative")
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = price
	product.QuantityInStock = stock
	if in.CategoryID != "" {
		product.CategoryID = in.CategoryID
	}
	if in.UserID != "" {
		product.UserID = in.UserID
	}
	product.Category = nil
	product.User = nil
	product.UpdatedAt = time.Now()
	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetProductByID(ctx, id); errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Product not found")
	} else if err != nil {
		return err
	}
	return s.store.DeleteProduct(ctx, id)
}

func (s *ProductService) SearchByName(ctx context.Context, name string) ([]models.Product, error) {
	return s.store.SearchProductsByName(ctx, name)
}
