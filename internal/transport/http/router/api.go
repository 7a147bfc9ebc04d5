package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"blog-backend/internal/core/auth"
	"blog-backend/internal/domain"
	"blog-backend/internal/transport/http/handler"
	mdw "blog-backend/internal/transport/http/middleware"
)

type Deps struct {
	JWTer      *auth.JWTer
	Users      domain.UserRepository
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Blog       *handler.BlogHandler
	Subscriber *handler.SubscriberHandler
}

func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := mdw.RequireAuth(d.JWTer, d.Users)
	adminOnly := mdw.RequireRole(domain.RoleSet(domain.RoleAdmin))

	// 认证入口
	authGrp := r.Group("/auth")
	{
		authGrp.POST("/register", d.Auth.Register)
		authGrp.POST("/admin/register", d.Auth.AdminRegister)
		authGrp.POST("/login", d.Auth.Login)
		authGrp.POST("/forgotpassword", d.Auth.ForgotPassword)
		authGrp.PATCH("/resetpassword", d.Auth.ResetPassword)
		authGrp.PATCH("/updatepassword", requireAuth, d.Auth.UpdatePassword)
	}

	users := r.Group("/users")
	{
		users.GET("", requireAuth, adminOnly, d.User.List)
		users.GET("/search", requireAuth, adminOnly, d.User.Search)
		users.GET("/profile/:id", requireAuth, d.User.Profile)
		users.DELETE("/delete/:userId", requireAuth, adminOnly, d.User.Delete)
	}

	blog := r.Group("/blog")
	{
		blog.POST("/post", requireAuth, d.Blog.Create)
		blog.GET("/all", d.Blog.ListAll)
		blog.GET("/search", d.Blog.Search)
		blog.GET("/top", d.Blog.Top)
		blog.GET("/latest", d.Blog.Latest)
		blog.DELETE("/delete/:id", requireAuth, d.Blog.Delete)
		blog.DELETE("/del-all", requireAuth, adminOnly, d.Blog.DeleteAll)
		blog.POST("/addposts", requireAuth, adminOnly, d.Blog.Import)
	}

	subs := r.Group("/subscribers")
	{
		subs.POST("/subscribe", d.Subscriber.Subscribe)
		subs.DELETE("/unsubscribe", d.Subscriber.Unsubscribe)
		subs.GET("", requireAuth, adminOnly, d.Subscriber.List)
	}

	return r
}
