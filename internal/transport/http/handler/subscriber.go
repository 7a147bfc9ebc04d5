package handler

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/apperr"
	"blog-backend/internal/service"
	resp "blog-backend/internal/transport/http/response"
)

type SubscriberHandler struct {
	svc *service.SubscriberService
}

func NewSubscriberHandler(svc *service.SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{svc: svc}
}

type subscribeIn struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"omitempty,max=64"`
	Image    string `json:"image" binding:"omitempty,max=255"`
}

func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var in subscribeIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	sub, err := h.svc.Subscribe(c.Request.Context(), in.Email, in.Username, in.Image)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, "subscribed", gin.H{"subscriber": sub})
}

type unsubscribeIn struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	var in unsubscribeIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	if err := h.svc.Unsubscribe(c.Request.Context(), in.Email); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "unsubscribed", nil)
}

func (h *SubscriberHandler) List(c *gin.Context) {
	subs, err := h.svc.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "", gin.H{"subscribers": subs})
}
