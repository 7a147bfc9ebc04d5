package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"blog-backend/internal/apperr"
	"blog-backend/internal/core/cache"
	"blog-backend/internal/domain"
	"blog-backend/internal/newsapi"
	"blog-backend/pkg/utils"
)

const (
	cacheKeyTopPosts    = "blog:top"
	cacheKeyLatestPosts = "blog:latest"
	listCacheTTL        = 30 * time.Second
	listLimit           = 10
)

// ArticleSource 第三方新闻源
type ArticleSource interface {
	Everything(ctx context.Context, query string) ([]newsapi.Article, error)
}

type BlogService struct {
	blogs    domain.BlogRepository
	cache    *cache.Cache
	articles ArticleSource
	log      *zap.Logger
}

func NewBlogService(blogs domain.BlogRepository, c *cache.Cache, articles ArticleSource, log *zap.Logger) *BlogService {
	return &BlogService{blogs: blogs, cache: c, articles: articles, log: log}
}

type CreateBlogInput struct {
	Title       string
	Description string
	URL         string
	URLToImage  string
	Content     string
	Category    string
	PublishedAt time.Time
}

func (s *BlogService) Create(ctx context.Context, authorID string, in CreateBlogInput) (*domain.Blog, error) {
	b := &domain.Blog{
		ID:          utils.NewID(),
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		URLToImage:  in.URLToImage,
		Content:     in.Content,
		Category:    in.Category,
		PublishedAt: in.PublishedAt,
		AuthorID:    authorID,
	}
	if b.Category == "" {
		b.Category = "Entertainment"
	}
	if b.PublishedAt.IsZero() {
		b.PublishedAt = time.Now()
	}
	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, apperr.Internal("create blog failed", err)
	}
	s.invalidateLists(ctx)
	return b, nil
}

func (s *BlogService) ListAll(ctx context.Context) ([]domain.Blog, error) {
	blogs, err := s.blogs.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("list blogs failed", err)
	}
	return blogs, nil
}

func (s *BlogService) Search(ctx context.Context, keyword string) ([]domain.Blog, error) {
	blogs, err := s.blogs.Search(ctx, keyword)
	if err != nil {
		return nil, apperr.Internal("search blogs failed", err)
	}
	return blogs, nil
}

// Top 点赞数前 10，redis 缓存 + singleflight 回源
func (s *BlogService) Top(ctx context.Context) ([]domain.Blog, error) {
	return s.cachedList(ctx, cacheKeyTopPosts, func(ctx context.Context) ([]domain.Blog, error) {
		return s.blogs.TopByLikes(ctx, listLimit)
	})
}

// Latest 最新 10 条
func (s *BlogService) Latest(ctx context.Context) ([]domain.Blog, error) {
	return s.cachedList(ctx, cacheKeyLatestPosts, func(ctx context.Context) ([]domain.Blog, error) {
		return s.blogs.Latest(ctx, listLimit)
	})
}

func (s *BlogService) cachedList(ctx context.Context, key string, load func(context.Context) ([]domain.Blog, error)) ([]domain.Blog, error) {
	if s.cache == nil {
		blogs, err := load(ctx)
		if err != nil {
			return nil, apperr.Internal("list blogs failed", err)
		}
		return blogs, nil
	}
	out, err := cache.GetOrLoadJSON[[]domain.Blog](s.cache, ctx, key, listCacheTTL, func(ctx context.Context) (*[]domain.Blog, error) {
		blogs, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return &blogs, nil
	})
	if err != nil {
		return nil, apperr.Internal("list blogs failed", err)
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

// Delete 仅作者本人或 admin 可删
func (s *BlogService) Delete(ctx context.Context, actor *domain.User, id string) error {
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("find blog failed", err)
	}
	if b == nil {
		return apperr.NotFound("blog not found")
	}
	if actor.ID != b.AuthorID && actor.Role != domain.RoleAdmin {
		return apperr.Forbidden("you are not allowed to perform this action")
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return apperr.Internal("delete blog failed", err)
	}
	s.invalidateLists(ctx)
	return nil
}

func (s *BlogService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.blogs.DeleteAll(ctx)
	if err != nil {
		return 0, apperr.Internal("delete blogs failed", err)
	}
	s.invalidateLists(ctx)
	return n, nil
}

// ImportArticles 从新闻 API 拉取文章并入库
func (s *BlogService) ImportArticles(ctx context.Context, authorID, query string) ([]domain.Blog, error) {
	articles, err := s.articles.Everything(ctx, query)
	if err != nil {
		return nil, apperr.Internal("fetch articles failed", err)
	}

	created := make([]domain.Blog, 0, len(articles))
	for _, a := range articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		b := &domain.Blog{
			ID:          utils.NewID(),
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			Content:     a.Content,
			Category:    "News",
			PublishedAt: a.PublishedAt,
			AuthorID:    authorID,
		}
		if err := s.blogs.Create(ctx, b); err != nil {
			s.log.Warn("skip article", zap.String("url", a.URL), zap.Error(err))
			continue
		}
		created = append(created, *b)
	}
	s.invalidateLists(ctx)
	s.log.Info("articles imported", zap.String("query", query), zap.Int("count", len(created)))
	return created, nil
}

func (s *BlogService) invalidateLists(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheKeyTopPosts, cacheKeyLatestPosts)
	}
}
