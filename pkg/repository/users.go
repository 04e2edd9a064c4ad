package repository

import (
	"context"

	"github.com/example/inventory/pkg/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := first(ctx, s.db.Where("id = ?", id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := first(ctx, s.db.Where("email = ?", email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context, skip, take int) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Offset(skip).Limit(take).Find(&users).Error
	return users, err
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error
	return total, err
}

func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

func (s *Store) SearchUsersByName(ctx context.Context, name string) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Where("name LIKE ?", "%"+name+"%").Find(&users).Error
	return users, err
}
