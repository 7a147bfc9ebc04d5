package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/apperr"
	"blog-backend/internal/service"
	mdw "blog-backend/internal/transport/http/middleware"
	resp "blog-backend/internal/transport/http/response"
)

type AuthHandler struct {
	svc       *service.AuthService
	cookieTTL time.Duration
}

func NewAuthHandler(svc *service.AuthService, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, cookieTTL: cookieTTL}
}

type registerIn struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Username  string `json:"username" binding:"omitempty,max=64"`
	FirstName string `json:"firstName" binding:"omitempty,max=64"`
	LastName  string `json:"lastName" binding:"omitempty,max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	h.register(c, false)
}

func (h *AuthHandler) AdminRegister(c *gin.Context) {
	h.register(c, true)
}

func (h *AuthHandler) register(c *gin.Context, admin bool) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	input := service.RegisterInput{
		Email:     in.Email,
		Password:  in.Password,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	reg := h.svc.Register
	if admin {
		reg = h.svc.AdminRegister
	}
	u, token, err := reg(c.Request.Context(), input)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	h.setTokenCookie(c, token)
	resp.Created(c, "user registered successfully", gin.H{"user": u, "access_token": token})
}

type loginIn struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	h.setTokenCookie(c, token)
	resp.OK(c, "logged in", gin.H{"user": u, "access_token": token})
}

type forgotIn struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var in forgotIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	base := scheme + "://" + c.Request.Host
	if err := h.svc.ForgotPassword(c.Request.Context(), in.Email, base); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, "token sent to your email", nil)
}

type resetIn struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var in resetIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	u, token, err := h.svc.ResetPassword(c.Request.Context(), in.Token, in.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	h.setTokenCookie(c, token)
	resp.OK(c, "password changed successfully", gin.H{"userId": u.ID, "access_token": token})
}

type updatePasswordIn struct {
	OldPassword string `json:"oldpassword" binding:"required"`
	NewPassword string `json:"newpassword" binding:"required,min=8"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		resp.Fail(c, apperr.Unauthenticated("you are not logged in, please log in to get access"))
		return
	}
	var in updatePasswordIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, apperr.BadRequest(err.Error()))
		return
	}
	token, err := h.svc.UpdatePassword(c.Request.Context(), u, in.OldPassword, in.NewPassword)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	h.setTokenCookie(c, token)
	resp.OK(c, "password successfully updated", gin.H{"access_token": token})
}

// 24h 过期提示写在 cookie 上，服务端同样在 token 里强制
func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mdw.TokenCookie, token, int(h.cookieTTL.Seconds()), "/", "", false, true)
}
