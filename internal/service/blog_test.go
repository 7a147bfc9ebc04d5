package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blog-backend/internal/apperr"
	"blog-backend/internal/domain"
	"blog-backend/internal/newsapi"
)

type fakeBlogRepo struct {
	blogs map[string]*domain.Blog
}

func newFakeBlogRepo() *fakeBlogRepo { return &fakeBlogRepo{blogs: map[string]*domain.Blog{}} }

func (f *fakeBlogRepo) Create(_ context.Context, b *domain.Blog) error {
	f.blogs[b.ID] = b
	return nil
}

func (f *fakeBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	return f.blogs[id], nil
}

func (f *fakeBlogRepo) ListAll(_ context.Context) ([]domain.Blog, error) {
	out := make([]domain.Blog, 0, len(f.blogs))
	for _, b := range f.blogs {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBlogRepo) Search(_ context.Context, _ string) ([]domain.Blog, error) {
	return nil, nil
}

func (f *fakeBlogRepo) TopByLikes(_ context.Context, _ int) ([]domain.Blog, error) {
	return f.ListAll(context.Background())
}

func (f *fakeBlogRepo) Latest(_ context.Context, _ int) ([]domain.Blog, error) {
	return f.ListAll(context.Background())
}

func (f *fakeBlogRepo) Delete(_ context.Context, id string) error {
	delete(f.blogs, id)
	return nil
}

func (f *fakeBlogRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(f.blogs))
	f.blogs = map[string]*domain.Blog{}
	return n, nil
}

type fakeArticleSource struct {
	articles []newsapi.Article
	err      error
}

func (f *fakeArticleSource) Everything(_ context.Context, _ string) ([]newsapi.Article, error) {
	return f.articles, f.err
}

func TestBlogCreate_Defaults(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := NewBlogService(repo, nil, &fakeArticleSource{}, zap.NewNop())

	b, err := svc.Create(context.Background(), "author-1", CreateBlogInput{
		Title:       "t",
		Description: "d",
		URL:         "https://example.com",
		Content:     "c",
	})
	require.NoError(t, err)
	require.Equal(t, "Entertainment", b.Category)
	require.False(t, b.PublishedAt.IsZero())
	require.Equal(t, "author-1", b.AuthorID)
	require.Contains(t, repo.blogs, b.ID)
}

func TestBlogDelete_Authorization(t *testing.T) {
	repo := newFakeBlogRepo()
	svc := NewBlogService(repo, nil, &fakeArticleSource{}, zap.NewNop())
	ctx := context.Background()

	owner := &domain.User{ID: "owner", Role: domain.RoleUser}
	other := &domain.User{ID: "other", Role: domain.RoleUser}
	admin := &domain.User{ID: "admin", Role: domain.RoleAdmin}

	b, err := svc.Create(ctx, owner.ID, CreateBlogInput{Title: "t", Description: "d", URL: "u", Content: "c"})
	require.NoError(t, err)

	err = svc.Delete(ctx, other, b.ID)
	require.True(t, apperr.IsKind(err, apperr.KindForbidden))

	require.NoError(t, svc.Delete(ctx, owner, b.ID))

	err = svc.Delete(ctx, owner, b.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))

	b2, err := svc.Create(ctx, owner.ID, CreateBlogInput{Title: "t2", Description: "d", URL: "u", Content: "c"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, admin, b2.ID), "admin may delete any blog")
}

func TestImportArticles(t *testing.T) {
	repo := newFakeBlogRepo()
	src := &fakeArticleSource{articles: []newsapi.Article{
		{Title: "First", URL: "https://example.com/1", Description: "d1", Content: "c1",
			PublishedAt: time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "", URL: "https://example.com/2"}, // 无标题，跳过
		{Title: "Third", URL: ""},                 // 无链接，跳过
		{Title: "Fourth", URL: "https://example.com/4"},
	}}
	svc := NewBlogService(repo, nil, src, zap.NewNop())

	created, err := svc.ImportArticles(context.Background(), "admin-1", "apple")
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Len(t, repo.blogs, 2)
	for _, b := range created {
		require.Equal(t, "News", b.Category)
		require.Equal(t, "admin-1", b.AuthorID)
	}
}

func TestImportArticles_SourceFailure(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo(), nil, &fakeArticleSource{err: context.DeadlineExceeded}, zap.NewNop())

	_, err := svc.ImportArticles(context.Background(), "admin-1", "apple")
	require.True(t, apperr.IsKind(err, apperr.KindInternal))
}
