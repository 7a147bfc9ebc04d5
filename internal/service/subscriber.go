package service

import (
	"context"

	"blog-backend/internal/apperr"
	"blog-backend/internal/domain"
	"blog-backend/pkg/utils"
)

type SubscriberService struct {
	subs domain.SubscriberRepository
}

func NewSubscriberService(subs domain.SubscriberRepository) *SubscriberService {
	return &SubscriberService{subs: subs}
}

func (s *SubscriberService) Subscribe(ctx context.Context, email, username, image string) (*domain.Subscriber, error) {
	existing, err := s.subs.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("db error", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already subscribed")
	}
	sub := &domain.Subscriber{
		ID:       utils.NewID(),
		Email:    email,
		Username: username,
		Image:    image,
		Active:   true,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, apperr.Internal("create subscriber failed", err)
	}
	return sub, nil
}

func (s *SubscriberService) Unsubscribe(ctx context.Context, email string) error {
	n, err := s.subs.DeleteByEmail(ctx, email)
	if err != nil {
		return apperr.Internal("delete subscriber failed", err)
	}
	if n == 0 {
		return apperr.NotFound("subscriber not found")
	}
	return nil
}

func (s *SubscriberService) List(ctx context.Context) ([]domain.Subscriber, error) {
	subs, err := s.subs.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list subscribers failed", err)
	}
	return subs, nil
}
