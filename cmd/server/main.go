package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/studyspots-backend-go/internal/api"
	"github.com/jengzang/studyspots-backend-go/internal/auth"
	"github.com/jengzang/studyspots-backend-go/internal/config"
	"github.com/jengzang/studyspots-backend-go/internal/database"
	"github.com/jengzang/studyspots-backend-go/internal/kvstore"
	"github.com/jengzang/studyspots-backend-go/internal/logger"
	"github.com/jengzang/studyspots-backend-go/internal/middleware"
)

func main() {
	// 加载配置
	cfg := config.Load()
	l := logger.Setup()
	defer l.Sync()

	// 初始化数据库
	dbConfig := database.Config{
		Driver: cfg.DBDriver,
		Path:   cfg.DBPath,
		URL:    cfg.DBURL,
	}
	if err := database.Init(dbConfig); err != nil {
		l.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	cache := openCache(cfg, l)

	var verifier auth.Verifier
	switch cfg.AuthMode {
	case "remote":
		if cfg.AuthServiceURL == "" {
			l.Fatal("AUTH_SERVICE_URL is required when AUTH_MODE=remote")
		}
		verifier = auth.NewRemoteVerifier(cfg.AuthServiceURL, nil)
	default:
		verifier = auth.NewJWTVerifier(cfg.JWTSecret)
	}

	limiter := middleware.NewRateLimiter(cfg.ReviewRateLimit, time.Minute)
	defer limiter.Stop()

	// 初始化路由
	router := api.SetupRouter(cfg, api.Deps{
		DB:       database.GetDB(),
		Cache:    cache,
		Verifier: verifier,
		Logger:   l,
		Limiter:  limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		l.Info("server starting", zap.String("addr", cfg.Port), zap.String("db_driver", cfg.DBDriver), zap.String("auth_mode", cfg.AuthMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	l.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openCache prefers Redis when REDIS_ADDR is set and reachable
func openCache(cfg *config.Config, l *zap.Logger) kvstore.Store {
	r := kvstore.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "studyspots:")
	if r == nil {
		return kvstore.NewMemory(256)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := r.Ping(ctx); err != nil {
		l.Warn("redis unavailable, using in-memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = r.Close()
		return kvstore.NewMemory(256)
	}
	l.Info("using redis cache", zap.String("addr", cfg.RedisAddr), zap.Int("db", cfg.RedisDB))
	return r
}
