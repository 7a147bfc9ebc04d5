package domain

import (
	"context"
	"time"
)

type Subscriber struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Username     string    `gorm:"size:64" json:"username,omitempty"`
	Image        string    `gorm:"size:255" json:"image,omitempty"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribedAt"`
}

func (Subscriber) TableName() string { return "subscribers" }

type SubscriberRepository interface {
	Create(ctx context.Context, s *Subscriber) error
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	List(ctx context.Context) ([]Subscriber, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}
