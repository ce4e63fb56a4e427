package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/config"
	"github.com/trywilco/secure-info-concierge/db"
	"github.com/trywilco/secure-info-concierge/guard"
	"github.com/trywilco/secure-info-concierge/handlers"
	"github.com/trywilco/secure-info-concierge/llm"
	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/middleware"
	"github.com/trywilco/secure-info-concierge/models"
	"github.com/trywilco/secure-info-concierge/pipeline"
	"github.com/trywilco/secure-info-concierge/sse"
	"github.com/trywilco/secure-info-concierge/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Development, logger.LogLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		logger.Get().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	if err := db.PopulateSampleData(); err != nil {
		logger.Get().Fatal("Failed to populate sample data", zap.Error(err))
	}

	generator, err := llm.NewClient(cfg)
	if err != nil {
		logger.Get().Fatal("Failed to initialize generation client", zap.Error(err))
	}

	activity := sse.NewHub()
	audit := worker.NewPool(cfg.AuditWorkers, cfg.AuditBuffer, worker.SinkFunc(
		func(ctx context.Context, rec models.QueryRecord) error {
			if err := db.InsertQueryRecord(ctx, rec); err != nil {
				return err
			}
			activity.Broadcast(rec)
			return nil
		},
	))
	audit.Start()
	defer audit.Stop()

	inputGuard := guard.New(generator, cfg.MaxQueryLength, cfg.BlockConditions)
	classifier := llm.NewIntentClassifier(generator)
	resolver := pipeline.NewContextResolver(db.ConciergeStore{}, cfg.TransactionLimit)
	composer := pipeline.NewResponseComposer(generator)

	handlers.Concierge = pipeline.NewOrchestrator(inputGuard, classifier, resolver, composer, audit)
	handlers.Activity = activity
	handlers.Generator = generator
	handlers.TokenTTL = cfg.TokenTTL

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})
	router.Use(middleware.CorsMiddleware)

	router.GET("/health", handlers.HandleHealth)
	router.GET("/ready", handlers.HandleReady)

	api := router.Group("/api")
	{
		api.POST("/token", handlers.HandleToken)

		// Anonymous-tolerant surface: a valid token yields a principal,
		// anything else proceeds anonymously.
		open := api.Group("", middleware.OptionalAuth)
		open.POST("/secure-query", handlers.HandleSecureQuery)

		authed := api.Group("", middleware.RequireAuth)
		authed.POST("/user/secure-query", handlers.HandleUserSecureQuery)
		authed.GET("/users/me", handlers.HandleCurrentUser)
		authed.POST("/knowledge", handlers.HandleAddKnowledge)
		authed.GET("/activity/stream", handlers.HandleActivityStream)
	}

	logger.Get().Info("Server starting", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Get().Fatal("Failed to start server", zap.Error(err))
	}
}
