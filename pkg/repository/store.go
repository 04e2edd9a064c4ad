package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/example/inventory/pkg/config"
	"github.com/example/inventory/pkg/models"
	"github.com/example/inventory/pkg/service"
)

// Store is the MySQL implementation of service.Store.
type Store struct {
	db *gorm.DB
}

func NewStore(cfg *config.MySQLConfig) (*Store, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing gorm handle; used by Transact and tests.
func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transact runs fn against a transaction-scoped Store. gorm rolls the
// transaction back when fn returns an error.
func (s *Store) Transact(ctx context.Context, fn func(service.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return service.ErrNotFound
	}
	return err
}

// first wraps the common fetch-one pattern, mapping gorm's not-found.
func first(ctx context.Context, q *gorm.DB, dest interface{}) error {
	if err := q.WithContext(ctx).First(dest).Error; err != nil {
		return translate(err)
	}
	return nil
}

var _ service.Store = (*Store)(nil)
