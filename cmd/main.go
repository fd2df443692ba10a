package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/championship-tracker/brackets"
	"github.com/Dosada05/championship-tracker/config"
	"github.com/Dosada05/championship-tracker/db"
	"github.com/Dosada05/championship-tracker/handlers"
	"github.com/Dosada05/championship-tracker/repositories"
	api "github.com/Dosada05/championship-tracker/routes"
	"github.com/Dosada05/championship-tracker/services"
	"github.com/Dosada05/championship-tracker/storage"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("fixture_source", cfg.FixtureSource))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Хранилище дескрипторов расписания
	var fixtures storage.FixtureSource
	switch cfg.FixtureSource {
	case config.FixtureSourceR2:
		fixtures, err = storage.NewCloudflareR2FixtureSource(ctx, storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 fixture source", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 fixture source initialized", slog.String("bucket", cfg.R2BucketName))
	default:
		fixtures = storage.NewLocalFixtureSource(cfg.FixtureDir)
		logger.Info("local fixture source initialized", slog.String("dir", cfg.FixtureDir))
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub()
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	seedingRepo := repositories.NewPostgresSeedingRepository(dbConn)
	logger.Info("Repositories initialized")

	bracketService := services.NewBracketService(tournamentRepo, gameRepo, seedingRepo, fixtures, wsHub, logger)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	bracketHandler := handlers.NewBracketHandler(bracketService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, bracketService)

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Options{
		JWTSecret:      cfg.JWTSecretKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, bracketHandler, webSocketHandler)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		// Сначала закрываем WebSocket-комнаты, затем HTTP
		stop()
		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
