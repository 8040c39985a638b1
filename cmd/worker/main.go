package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/creatorlens/youtube-analytics-go/internal/analytics"
	"github.com/creatorlens/youtube-analytics-go/internal/cache"
	"github.com/creatorlens/youtube-analytics-go/internal/config"
	"github.com/creatorlens/youtube-analytics-go/internal/db"
	"github.com/creatorlens/youtube-analytics-go/internal/provider/youtube"
	"github.com/creatorlens/youtube-analytics-go/internal/queue"
	"github.com/creatorlens/youtube-analytics-go/internal/repository"
	"github.com/creatorlens/youtube-analytics-go/internal/service"
	"github.com/creatorlens/youtube-analytics-go/internal/validation"
	"github.com/creatorlens/youtube-analytics-go/pkg/logger"
)

const workerConcurrency = 5

func main() {
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

	var eventPublisher service.EventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err := service.NewMessagePublisher(&cfg.RabbitMQ)
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

	runRepo := repository.NewSearchRunRepository(pool)
	taskHandler := queue.NewSearchAnalysisHandler(searchService, runRepo)

	srv, err := queue.NewServer(cfg.Redis.URL, workerConcurrency, taskHandler)
	if err != nil {
		logger.Log.Fatal("Failed to create task server", zap.Error(err))
	}

	logger.Log.Info("Starting worker", zap.Int("concurrency", workerConcurrency))
	if err := srv.Run(); err != nil {
		logger.Log.Fatal("Worker failed", zap.Error(err))
	}
}
