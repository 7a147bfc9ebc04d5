package middleware

import (
	"github.com/gin-gonic/gin"

	"blog-backend/internal/apperr"
	"blog-backend/internal/domain"
	resp "blog-backend/internal/transport/http/response"
)

// RequireRole 角色守卫，必须挂在 RequireAuth 之后。
// 上下文里没有身份时拒绝而不是崩溃。
func RequireRole(allowed map[domain.Role]struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			resp.Fail(c, apperr.Unauthenticated("you are not logged in, please log in to get access"))
			return
		}
		if _, ok := allowed[u.Role]; !ok {
			resp.Fail(c, apperr.Forbidden("you are not allowed to access this route"))
			return
		}
		c.Next()
	}
}
