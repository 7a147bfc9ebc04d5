package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/apperr"
	"blog-backend/internal/service"
	mdw "blog-backend/internal/transport/http/middleware"
	resp "blog-backend/internal/transport/http/response"
)

type BlogHandler struct {
	svc *service.BlogService
}

func NewBlogHandler(svc *service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

type createBlogIn struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	URL         string    `json:"url" binding:"required"`
	URLToImage  string    `json:"urlToImage"`
	Content     string    `json:"content" binding:"required"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (h *BlogHandler) Create(c *gin.Context) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		resp.Fail(c, apperr.Unauthenticated("you are not logged in, please log in to get access"))
		return
	}
	var in createBlogIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	b, err := h.svc.Create(c.Request.Context(), u.ID, service.CreateBlogInput{
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		URLToImage:  in.URLToImage,
		Content:     in.Content,
		Category:    in.Category,
		PublishedAt: in.PublishedAt,
	})
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, "blog created successfully", gin.H{"blog": b})
}

func (h *BlogHandler) ListAll(c *gin.Context) {
	blogs, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"blogs": blogs})
}

func (h *BlogHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		resp.Fail(c, apperr.BadRequest("missing keyword query parameter"))
		return
	}
	blogs, err := h.svc.Search(c.Request.Context(), keyword)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"blogs": blogs})
}

func (h *BlogHandler) Top(c *gin.Context) {
	blogs, err := h.svc.Top(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"blogs": blogs})
}

func (h *BlogHandler) Latest(c *gin.Context) {
	blogs, err := h.svc.Latest(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"blogs": blogs})
}

func (h *BlogHandler) Delete(c *gin.Context) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		resp.Fail(c, apperr.Unauthenticated("you are not logged in, please log in to get access"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), u, c.Param("id")); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "blog deleted successfully", nil)
}

func (h *BlogHandler) DeleteAll(c *gin.Context) {
	n, err := h.svc.DeleteAll(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "blogs deleted", gin.H{"deleted": n})
}

type importIn struct {
	Query string `json:"query" binding:"required"`
}

// Import 管理端：从新闻 API 拉文章入库
func (h *BlogHandler) Import(c *gin.Context) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		resp.Fail(c, apperr.Unauthenticated("you are not logged in, please log in to get access"))
		return
	}
	var in importIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	blogs, err := h.svc.ImportArticles(c.Request.Context(), u.ID, in.Query)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, "blogs created successfully", gin.H{"stories": blogs})
}
