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

	_ "github.com/TraderJoe97/StackFlow/docs"
	"github.com/TraderJoe97/StackFlow/internal/api/middleware"
	"github.com/TraderJoe97/StackFlow/internal/api/routes"
	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/internal/archive"
	"github.com/TraderJoe97/StackFlow/internal/config"
	"github.com/TraderJoe97/StackFlow/internal/config/db"
	"github.com/TraderJoe97/StackFlow/internal/cron"
	"github.com/TraderJoe97/StackFlow/internal/migrations"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/policy"
	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

// @title StackFlow API
// @version 1.0
// @description Ticket tracking for projects, teams and their reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envFile     string
		port        string
		migrateOnly bool
	)
	flagSet := pflag.NewFlagSet("stackflow", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flagSet.StringVar(&port, "port", "", "listen port (overrides SERVER_PORT)")
	flagSet.BoolVar(&migrateOnly, "migrate-only", false, "apply schema migrations and exit")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	config.LoadConfig(envFile)
	if port != "" {
		config.ServerPort = port
	}

	level := slog.LevelDebug
	if config.IsProduction {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	middleware.Init()
	db.Init()
	if err := migrations.Run(db.DB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if migrateOnly {
		slog.Info("migrations applied")
		return nil
	}

	rules := policy.Default()
	if config.PolicyFile != "" {
		loaded, err := policy.LoadFile(config.PolicyFile)
		if err != nil {
			return err
		}
		rules = loaded
		slog.Info("policy loaded", "file", config.PolicyFile)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := notify.NewHub(logger)
	go hub.Run(ctx)

	// A nil *archive.Store must not reach the services as a non-nil interface.
	var archiver application.Archiver
	if config.MinioEndpoint != "" {
		store, err := archive.New(ctx, archive.OptionsFromConfig())
		if err != nil {
			return err
		}
		archiver = store
		slog.Info("report archive enabled", "endpoint", config.MinioEndpoint, "bucket", config.MinioBucket)
	} else {
		slog.Info("report archive disabled, MINIO_ENDPOINT not set")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware(logger))

	services := routes.RegisterRoutes(router, routes.Deps{
		DB:       db.DB,
		Hub:      hub,
		Policy:   rules,
		Archiver: archiver,
	})
	cron.NewCleanup(services, config.AuditRetentionDays).Start(ctx)

	srv := &http.Server{
		Addr:         ":" + config.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", config.ServerPort)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	// Closing the hub ends the websocket writers so Shutdown does not wait on them.
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
