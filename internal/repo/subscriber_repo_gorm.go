package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blog-backend/internal/domain"
)

type SubscriberRepo struct{ db *gorm.DB }

func NewSubscriberRepo(db *gorm.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

func (r *SubscriberRepo) Create(ctx context.Context, s *domain.Subscriber) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubscriberRepo) FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	var s domain.Subscriber
	err := r.db.WithContext(ctx).First(&s, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriberRepo) List(ctx context.Context) ([]domain.Subscriber, error) {
	var subs []domain.Subscriber
	err := r.db.WithContext(ctx).Order("subscribed_at desc").Find(&subs).Error
	return subs, err
}

func (r *SubscriberRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res := r.db.WithContext(ctx).Where("email = ?", email).Delete(&domain.Subscriber{})
	return res.RowsAffected, res.Error
}
