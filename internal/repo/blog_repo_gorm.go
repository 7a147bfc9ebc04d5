package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blog-backend/internal/domain"
)

type BlogRepo struct{ db *gorm.DB }

func NewBlogRepo(db *gorm.DB) *BlogRepo { return &BlogRepo{db: db} }

func (r *BlogRepo) Create(ctx context.Context, b *domain.Blog) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BlogRepo) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	var b domain.Blog
	err := r.db.WithContext(ctx).Preload("Author").First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepo) ListAll(ctx context.Context) ([]domain.Blog, error) {
	var blogs []domain.Blog
	err := r.db.WithContext(ctx).Preload("Author").Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepo) Search(ctx context.Context, keyword string) ([]domain.Blog, error) {
	var blogs []domain.Blog
	like := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR description LIKE ? OR content LIKE ?", like, like, like).
		Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepo) TopByLikes(ctx context.Context, limit int) ([]domain.Blog, error) {
	var blogs []domain.Blog
	err := r.db.WithContext(ctx).Order("likes desc").Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepo) Latest(ctx context.Context, limit int) ([]domain.Blog, error) {
	var blogs []domain.Blog
	err := r.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&blogs).Error
	return blogs, err
}

func (r *BlogRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Blog{}).Error
}

func (r *BlogRepo) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Blog{})
	return res.RowsAffected, res.Error
}
