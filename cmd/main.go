package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/shenikar/jack_navigator/internal/alert"
	"github.com/shenikar/jack_navigator/internal/app"
	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/shenikar/jack_navigator/internal/dispatch"
	v1 "github.com/shenikar/jack_navigator/internal/handler/http/v1"
	"github.com/shenikar/jack_navigator/internal/metrics"
	"github.com/shenikar/jack_navigator/internal/notify"
	"github.com/shenikar/jack_navigator/internal/worker"
	"github.com/shenikar/jack_navigator/pkg/logger"
	redisclient "github.com/shenikar/jack_navigator/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/jack_navigator/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Jack Navigator API
// @version 1.0
// @description Voice navigation assistant and SOS incident tracker.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен всегда: канал уведомлений и очередь тревог
	redisClient, err := redisclient.NewRedisClient(ctx, redisclient.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Хранилище инцидентов
	if cfg.StoreBackend == config.StorePostgres {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	}
	incidentRepo, closeStore, err := app.OpenIncidentStore(ctx, cfg, redisClient, log)
	if err != nil {
		log.Fatalf("Failed to open incident store: %v", err)
	}
	defer closeStore()
	log.WithField("backend", cfg.StoreBackend).Info("Incident store initialized")

	// Внешние гео-сервисы
	geo := app.NewGeoClients(cfg)
	if !geo.ORS.Configured() {
		log.Warn("ORS_API_KEY is not set, traffic routes fall back to OSRM")
	}

	// Трекер инцидентов и доставка тревог
	incidentService, notifier := app.NewTracker(cfg, log, incidentRepo, redisClient, geo.Nominatim)
	alert.NewWorker(redisClient, log, cfg).Start(ctx)

	// Браузерный канал и фоновые таймеры
	hub := notify.NewHub(log, cfg.TranscriptBuffer)
	refresher := worker.NewStationRefresher(incidentService, cfg.StationRefreshInterval, log)
	sirenLoop := worker.NewSirenLoop(incidentService, hub, cfg.SirenInterval, log)

	notifier.Subscribe(ctx, func(event notify.ChangeEvent) {
		hub.NotifyChange(event)
		refresher.HandleEvent(ctx, event)
	})
	go refresher.RefreshPending(ctx)
	go refresher.Start(ctx)
	go sirenLoop.Start(ctx)

	// Голосовой ассистент
	session := dispatch.NewSession(cfg.SpeechLocale, cfg.AltSpeechLocale)
	dispatcher := dispatch.NewDispatcher(session, dispatch.Collaborators{
		Geocoder:      geo.Nominatim,
		Router:        geo.OSRM,
		TrafficRouter: geo.Traffic,
		Amenities:     geo.Overpass,
		Incidents:     incidentService,
		Speaker:       hub,
	}, cfg, log)
	go dispatcher.Run(ctx, hub.Transcripts())

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, dispatcher, v1.GeoServices{
		Weather:       geo.Weather,
		Amenities:     geo.Overpass,
		Router:        geo.OSRM,
		TrafficRouter: geo.Traffic,
	}, hub, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	// останавливаем воркеры до закрытия соединений с хранилищами
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
