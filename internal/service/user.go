package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blog-backend/internal/apperr"
	"blog-backend/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list users failed", err)
	}
	return users, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("find user failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s *UserService) Search(ctx context.Context, name string) ([]domain.User, error) {
	users, err := s.users.Search(ctx, name)
	if err != nil {
		return nil, apperr.Internal("search users failed", err)
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("delete user failed", err)
	}
	return nil
}
