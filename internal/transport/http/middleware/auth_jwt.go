package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/apperr"
	"blog-backend/internal/core/auth"
	"blog-backend/internal/domain"
	resp "blog-backend/internal/transport/http/response"
)

// TokenCookie 与客户端约定的 cookie 名
const TokenCookie = "jwt"

const ctxUserKey = "authUser"

// RequireAuth 认证守卫：取 token（Bearer 头优先，其次 jwt cookie）、
// 验签、加载身份、检查密码变更后签发的旧 token
func RequireAuth(j *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			token = strings.TrimPrefix(ah, "Bearer ")
		} else if ck, err := c.Cookie(TokenCookie); err == nil {
			token = ck
		}
		if token == "" {
			resp.Fail(c, apperr.Unauthenticated("you are not logged in, please log in to get access"))
			return
		}

		claims, err := j.Parse(token)
		if err != nil {
			resp.Fail(c, apperr.Unauthenticated("invalid token"))
			return
		}

		u, err := users.FindByID(c.Request.Context(), claims.Subject)
		if err != nil {
			resp.Fail(c, apperr.Internal("load user failed", err))
			return
		}
		if u == nil {
			resp.Fail(c, apperr.Unauthenticated("token no longer exists"))
			return
		}

		// 签发时间早于最近一次改密则拒绝
		if u.PasswordChangedAt != nil &&
			(claims.IssuedAt == nil || u.ChangedPasswordAfter(claims.IssuedAt.Time)) {
			resp.Fail(c, apperr.Unauthenticated("password changed, log in again"))
			return
		}

		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// CurrentUser 取出认证守卫放入的身份；守卫之前调用返回 false
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}
