package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/creatorlens/youtube-analytics-go/internal/analytics"
	"github.com/creatorlens/youtube-analytics-go/internal/cache"
	"github.com/creatorlens/youtube-analytics-go/internal/config"
	"github.com/creatorlens/youtube-analytics-go/internal/db"
	"github.com/creatorlens/youtube-analytics-go/internal/generator"
	"github.com/creatorlens/youtube-analytics-go/internal/handler"
	"github.com/creatorlens/youtube-analytics-go/internal/middleware"
	"github.com/creatorlens/youtube-analytics-go/internal/provider/youtube"
	"github.com/creatorlens/youtube-analytics-go/internal/queue"
	"github.com/creatorlens/youtube-analytics-go/internal/repository"
	"github.com/creatorlens/youtube-analytics-go/internal/service"
	"github.com/creatorlens/youtube-analytics-go/internal/validation"
	"github.com/creatorlens/youtube-analytics-go/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	provider, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		logger.Log.Fatal("Failed to initialize YouTube client", zap.Error(err))
	}

	savedSearchRepo := repository.NewSavedSearchRepository(pool)
	runRepo := repository.NewSearchRunRepository(pool)

	var resultCache service.ResultCache
	if cfg.Cache.Enabled {
		redisCache, err := cache.New(cfg.Redis.URL, cfg.Cache.TTL)
		if err != nil {
			logger.Log.Warn("Failed to connect to Redis, result caching disabled", zap.Error(err))
		} else {
			defer redisCache.Close()
			resultCache = redisCache
		}
	}

	var publisher *service.MessagePublisher
	var eventPublisher service.EventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err = service.NewMessagePublisher(&cfg.RabbitMQ)
		if err != nil {
			logger.Log.Warn("Failed to connect to RabbitMQ, event publishing disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			eventPublisher = publisher
		}
	}

	searchService := service.NewSearchService(
		provider,
		analytics.NewStaticEconomics(),
		validation.New(cfg.Search.StrictValidation),
		resultCache,
		eventPublisher,
	)

	var enqueuer handler.Enqueuer
	queueClient, err := queue.NewClient(cfg.Redis.URL, runRepo)
	if err != nil {
		logger.Log.Warn("Failed to initialize queue client, async search disabled", zap.Error(err))
	} else {
		defer queueClient.Close()
		enqueuer = queueClient
	}

	handler.InitMetrics(pool)

	var textGen generator.TextGenerator = generator.NewTemplateGenerator()
	if cfg.Generator.OllamaURL != "" {
		textGen = generator.NewOllamaGenerator(generator.OllamaConfig{
			BaseURL: cfg.Generator.OllamaURL,
			Model:   cfg.Generator.OllamaModel,
			APIKey:  cfg.Generator.OllamaAPIKey,
		})
		logger.Log.Info("Using Ollama text generator", zap.String("model", cfg.Generator.OllamaModel))
	}

	searchHandler := handler.NewSearchHandler(searchService, enqueuer, runRepo)
	savedSearchHandler := handler.NewSavedSearchHandler(savedSearchRepo)
	generateHandler := handler.NewGenerateHandler(textGen)
	healthHandler := handler.NewHealthHandler(pool, publisher)

	router := setupRouter(cfg, searchHandler, savedSearchHandler, generateHandler, healthHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Log.Info("Starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Log.Info("Server stopped")
}

func setupRouter(
	cfg *config.Config,
	searchHandler *handler.SearchHandler,
	savedSearchHandler *handler.SavedSearchHandler,
	generateHandler *handler.GenerateHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(handler.MetricsMiddleware())
	router.Use(cors.Default())

	router.GET("/health/live", healthHandler.LivenessProbe)
	router.GET("/health/ready", healthHandler.ReadinessProbe)
	router.GET("/metrics", handler.MetricsHandler())

	api := router.Group("/api/v1")
	if len(cfg.Server.APIKeys) > 0 {
		api.Use(middleware.NewAPIKeyAuth(cfg.Server.APIKeys).Middleware())
	} else {
		logger.Log.Warn("No API keys configured, API endpoints are unauthenticated")
	}

	api.POST("/search", searchHandler.Search)
	api.POST("/search/async", searchHandler.SearchAsync)
	api.GET("/search/runs", searchHandler.ListRuns)
	api.GET("/search/runs/:id", searchHandler.GetRun)

	api.POST("/saved-searches", savedSearchHandler.Create)
	api.GET("/saved-searches", savedSearchHandler.List)
	api.GET("/saved-searches/:id", savedSearchHandler.Get)
	api.PUT("/saved-searches/:id", savedSearchHandler.Update)
	api.DELETE("/saved-searches/:id", savedSearchHandler.Delete)

	api.POST("/generate/titles", generateHandler.Titles)
	api.POST("/generate/script", generateHandler.Script)

	return router
}
