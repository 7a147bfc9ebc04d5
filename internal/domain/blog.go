package domain

import (
	"context"
	"time"
)

type Blog struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	URL         string    `gorm:"size:512;not null" json:"url"`
	URLToImage  string    `gorm:"size:512" json:"urlToImage"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    string    `gorm:"size:64;not null;default:Entertainment" json:"category"`
	PublishedAt time.Time `json:"publishedAt"`

	AuthorID string `gorm:"size:32;index" json:"authorId"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	RecommendedByEditor bool  `gorm:"not null;default:false" json:"recommendedByEditor"`
	Likes               int64 `gorm:"not null;default:0" json:"likes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Blog) TableName() string { return "blogs" }

type BlogRepository interface {
	Create(ctx context.Context, b *Blog) error
	FindByID(ctx context.Context, id string) (*Blog, error)
	ListAll(ctx context.Context) ([]Blog, error)
	Search(ctx context.Context, keyword string) ([]Blog, error)
	TopByLikes(ctx context.Context, limit int) ([]Blog, error)
	Latest(ctx context.Context, limit int) ([]Blog, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
