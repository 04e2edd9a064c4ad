package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/inventory/pkg/apperr"
	"github.com/example/inventory/pkg/models"
)

const bcryptCost = 8

type UserService struct {
	store  Store
	logger *zap.Logger
}

func NewUserService(store Store, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, apperr.BadRequest("Email and password are required")
	}
	if _, err := s.store.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, apperr.BadRequest("Email already taken")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the email/password pair and returns the matching
// user. Bad credentials are indistinguishable from an unknown email.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.BadRequest("Incorrect email or password")
	} else if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.BadRequest("Incorrect email or password")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, skip, take int) ([]models.User, error) {
	skip, take = NormalizePage(skip, take)
	return s.store.ListUsers(ctx, skip, take)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.store.CountUsers(ctx)
}

// Update rehashes the password only when a new one is supplied.
func (s *UserService) Update(ctx context.Context, id string, in UserInput) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	} else if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Role == models.RoleAdmin || in.Role == models.RoleUser {
		user.Role = in.Role
	}
	if in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	user.UpdatedAt = time.Now()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetUserByID(ctx, id); errors.Is(err, ErrNotFound) {
		return apperr.NotFound("User not found")
	} else if err != nil {
		return err
	}
	return s.store.DeleteUser(ctx, id)
}

func (s *UserService) SearchByName(ctx context.Context, name string) ([]models.User, error) {
	return s.store.SearchUsersByName(ctx, name)
}
