package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"bookforge/internal/analysis"
	"bookforge/internal/cache"
	"bookforge/internal/config"
	"bookforge/internal/history"
	"bookforge/internal/pipeline"
	"bookforge/internal/repository"
	"bookforge/internal/scoring"
	"bookforge/internal/service"
	"bookforge/internal/transport/rest"
	"bookforge/internal/transport/ws"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	serverCfg := config.DefaultServerConfig()
	aiCfg := config.DefaultAIConfig()

	logger.Info("AI config",
		zap.String("questionsModel", aiCfg.Models.Questions),
		zap.String("tocModel", aiCfg.Models.TOC),
		zap.String("draftModel", aiCfg.Models.Draft),
		zap.Bool("enabled", aiCfg.IsEnabled()))
	if !aiCfg.IsEnabled() {
		logger.Warn("OPENAI_API_KEY not set, question generation will use templates")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(serverCfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}
	logger.Info("Connected to MongoDB")

	db := mongoClient.Database(serverCfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(serverCfg.RedisURI, "redis://")
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("Failed to ping Redis", zap.Error(err))
	}
	logger.Info("Connected to Redis")

	// WebSocket hub
	wsHub := ws.NewHub(logger)
	logger.Info("WebSocket hub started")

	// Repositories
	bookRepo := repository.NewBookRepo(db)
	chapterRepo := repository.NewChapterRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Caches
	analysisCache := cache.NewAnalysisCache(rdb)
	profileCache := cache.NewProfileCache(rdb)
	trendCache := cache.NewTrendCache(rdb)
	rateLimiter := cache.NewRateLimiter(rdb)

	// Scoring core
	trendSvc := history.NewService(history.DefaultConfig())
	pipe := pipeline.New(analysis.DefaultConfig(), scoring.DefaultConfig()).WithHistory(trendSvc)

	// Services
	auditSvc := service.NewAuditService(auditRepo, logger)
	authSvc := service.NewAuthService(serverCfg)
	generatorSvc := service.NewGeneratorService(aiCfg, logger)
	bookSvc := service.NewBookService(bookRepo, chapterRepo, generatorSvc, auditSvc, logger)
	questionSvc := service.NewQuestionService(bookSvc, questionRepo, responseRepo, analysisCache, profileCache, generatorSvc, pipe, auditSvc, wsHub, logger)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, questionRepo, trendCache, auditSvc, logger)
	insightSvc := service.NewInsightService(bookSvc, questionRepo, responseRepo, historyRepo, trendSvc, auditSvc, logger)

	// Router
	container := &rest.Container{
		AuthService:       authSvc,
		BookService:       bookSvc,
		QuestionService:   questionSvc,
		FeedbackService:   feedbackSvc,
		InsightService:    insightSvc,
		AuditService:      auditSvc,
		RateLimiter:       rateLimiter,
		RateLimit:         serverCfg.RateLimitPerMinute,
		GenerateRateLimit: serverCfg.RateLimitGeneratePerMinute,
		WSHub:             wsHub,
	}
	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + serverCfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", serverCfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
