package handler

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/apperr"
	"blog-backend/internal/service"
	resp "blog-backend/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"users": users})
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"user": u})
}

func (h *UserHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		resp.Fail(c, apperr.BadRequest("missing name query parameter"))
		return
	}
	users, err := h.svc.Search(c.Request.Context(), name)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"users": users})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "user deleted successfully", nil)
}
