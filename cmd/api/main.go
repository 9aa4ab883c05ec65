package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"schedule-bot/config"
	"schedule-bot/handlers"
	"schedule-bot/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Загружаем .env файл (игнорируем ошибку для продакшн)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg)
	logger.Info("start service", "environment", cfg.Environment)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	location, err := cfg.Location()
	if err != nil {
		logger.Error("failed to load timezone", "timezone", cfg.Timezone, "err", err)
		os.Exit(1)
	}

	phrases, err := loadPhrases(cfg, logger)
	if err != nil {
		logger.Error("failed to load phrases", "err", err)
		os.Exit(1)
	}

	logger.Info("init services")
	upstream := services.NewUpstreamService(cfg)
	eventTypes := services.NewEventTypeDirectory(upstream, cfg.EventTypesTTL, logger)
	resolver := services.NewEventResolver(cfg.OnlinePlatform, logger)
	renderer := services.NewScheduleRenderer(resolver, eventTypes, phrases, location)
	dayCache := services.NewDayCache(cfg.DayCacheTTL, cfg.NotFoundCacheTTL, phrases.Get(services.PhraseEventsNotFound), logger)
	scheduleService := services.NewScheduleService(upstream, renderer, dayCache, cfg.StartDays, location, logger)

	logger.Info("init handlers")
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, services.NewExportService(), phrases, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(scheduleHandler, cfg.CORSAllowedOrigins, logger)

	logger.Info("starting server", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadPhrases: объект в MinIO, если задан LOCALES_OBJECT, иначе локальный файл
func loadPhrases(cfg *config.Config, logger *slog.Logger) (services.Phrases, error) {
	if cfg.LocalesObject == "" {
		return services.LoadPhrasesFile(cfg.LocalesPath)
	}

	minioService, err := services.NewMinIOService(cfg, logger)
	if err != nil {
		return nil, err
	}
	return services.LoadPhrasesObject(context.Background(), minioService, minioService.Bucket(), cfg.LocalesObject)
}
