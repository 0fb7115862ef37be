package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/jengzang/studyspots-backend-go/internal/auth"
	"github.com/jengzang/studyspots-backend-go/internal/config"
	"github.com/jengzang/studyspots-backend-go/internal/handler"
	"github.com/jengzang/studyspots-backend-go/internal/kvstore"
	"github.com/jengzang/studyspots-backend-go/internal/metrics"
	"github.com/jengzang/studyspots-backend-go/internal/middleware"
	"github.com/jengzang/studyspots-backend-go/internal/repository"
	"github.com/jengzang/studyspots-backend-go/internal/service"
)

// Deps are the long-lived collaborators the router wires together
type Deps struct {
	DB       *sqlx.DB
	Cache    kvstore.Store
	Verifier auth.Verifier
	Logger   *zap.Logger
	Limiter  *middleware.RateLimiter // review submissions
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(deps.Logger))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "StudySpots API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	spotRepo := repository.NewSpotRepository(deps.DB)
	reviewRepo := repository.NewReviewRepository(deps.DB)
	historyRepo := repository.NewHistoryRepository(deps.DB)

	spotService := service.NewSpotService(spotRepo, deps.Cache, service.SpotServiceConfig{
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
		CacheTTL:        cfg.CacheTTL,
	})
	reviewService := service.NewReviewService(spotRepo, reviewRepo, spotService, cfg.ReviewsRequireAuth)
	historyService := service.NewHistoryService(spotRepo, historyRepo)
	seedService := service.NewSeedService(deps.DB, spotRepo, spotService)

	spotHandler := handler.NewSpotHandler(spotService, seedService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	historyHandler := handler.NewHistoryHandler(historyService)

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(cfg.ReviewRateLimit, time.Minute)
	}

	// API 路由组
	// Public reads ignore tokens that fail verification; writes and user
	// routes refuse them.
	api := r.Group("/api/v1")
	public := middleware.OptionalAuthenticate(deps.Verifier)
	strict := middleware.Authenticate(deps.Verifier)
	{
		spots := api.Group("/spots")
		{
			spots.GET("", public, spotHandler.GetSpots)
			spots.GET("/:key", public, spotHandler.GetSpot)
			spots.GET("/:key/reviews", public, reviewHandler.GetReviews)
			spots.POST("/:key/reviews", strict, middleware.RateLimit(limiter), reviewHandler.CreateReview)
		}

		api.POST("/init-spots", public, spotHandler.InitSpots)

		user := api.Group("/user", strict, middleware.RequireAuth())
		{
			user.GET("/history", historyHandler.GetHistory)
			user.POST("/history", historyHandler.AddHistory)
			user.GET("/reviews", reviewHandler.GetUserReviews)
			user.DELETE("/reviews/:id", reviewHandler.DeleteUserReview)
		}
	}

	return r
}
