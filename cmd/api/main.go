package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tasktime/internal/adapter/cache"
	dbadapter "tasktime/internal/adapter/db"
	httpadapter "tasktime/internal/adapter/http"
	"tasktime/internal/adapter/http/handlers"
	httpmiddleware "tasktime/internal/adapter/http/middleware"
	appservice "tasktime/internal/app/service"
	"tasktime/internal/config"
	"tasktime/internal/core/ports"
	"tasktime/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	if cfg.AutoMigrate {
		if err := dbadapter.Migrate(context.Background(), db); err != nil {
			logger.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	var taskRepository ports.TaskRepository = dbadapter.NewTaskRepository(db)
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis connection", zap.Error(err))
			}
		}()
		taskRepository = cache.NewClientIDCache(taskRepository, redisClient, cfg.ClientCacheTTL)
		logger.Info("client id cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.ClientCacheTTL))
	}

	taskService := appservice.NewTaskService(taskRepository, appservice.SystemClock{})

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	healthHandler := handlers.NewHealthHandler(db, redisClient)
	taskHandler := handlers.NewTaskHandler(taskService)
	httpadapter.RegisterRoutes(r, healthHandler, taskHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
