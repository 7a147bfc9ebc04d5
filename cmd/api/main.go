package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blog-backend/internal/core/auth"
	"blog-backend/internal/core/cache"
	"blog-backend/internal/core/config"
	"blog-backend/internal/core/database"
	"blog-backend/internal/core/logger"
	"blog-backend/internal/core/mail"
	"blog-backend/internal/domain"
	"blog-backend/internal/newsapi"
	"blog-backend/internal/repo"
	"blog-backend/internal/service"
	"blog-backend/internal/transport/http/handler"
	"blog-backend/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}, &domain.Blog{}, &domain.Subscriber{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLHour) * time.Hour,
	}

	mailer, err := mail.New(mail.Options{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal("mailer init failed", zap.Error(err))
	}

	var listCache *cache.Cache
	if cfg.Redis.Addr != "" {
		listCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	news := newsapi.NewClient(cfg.NewsAPI.BaseURL, cfg.NewsAPI.Key,
		time.Duration(cfg.NewsAPI.TimeoutSec)*time.Second)

	userRepo := repo.NewUserRepo(db)
	blogRepo := repo.NewBlogRepo(db)
	subRepo := repo.NewSubscriberRepo(db)

	resetTTL := time.Duration(cfg.Reset.TokenTTLMin) * time.Minute
	authSvc := service.NewAuthService(userRepo, jwter, mailer, resetTTL, log)
	userSvc := service.NewUserService(userRepo)
	blogSvc := service.NewBlogService(blogRepo, listCache, news, log)
	subSvc := service.NewSubscriberService(subRepo)

	r := router.NewAPIEngine(log, router.Deps{
		JWTer:      jwter,
		Users:      userRepo,
		Auth:       handler.NewAuthHandler(authSvc, jwter.TTL),
		User:       handler.NewUserHandler(userSvc),
		Blog:       handler.NewBlogHandler(blogSvc),
		Subscriber: handler.NewSubscriberHandler(subSvc),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.App.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(cfg.App.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:    time.Duration(cfg.App.HTTP.IdleTimeoutSec) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info("api starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start failed", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
