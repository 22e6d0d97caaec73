package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/garnizeh/skillswap/api"
	"github.com/garnizeh/skillswap/db"
	"github.com/garnizeh/skillswap/internal/auth"
	"github.com/garnizeh/skillswap/internal/config"
	idb "github.com/garnizeh/skillswap/internal/db"
	"github.com/garnizeh/skillswap/internal/metrics"
	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/repository/memory"
	"github.com/garnizeh/skillswap/internal/repository/mongo"
	"github.com/garnizeh/skillswap/internal/repository/sqlite"
	"github.com/garnizeh/skillswap/internal/service"
	"github.com/garnizeh/skillswap/pkg/assets"
	"github.com/garnizeh/skillswap/pkg/repository"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// backend is the opened document store plus how to check and release it.
type backend struct {
	store repository.Store
	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)
	api.SetLogger(logger)
	assets.SetLogger(logger)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger.Info("starting skillswap server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	hasher, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to create hasher: %v", err)
	}
	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenDuration)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}
	uploader, err := assets.New(cfg.Assets)
	if err != nil {
		log.Fatalf("Failed to create asset client: %v", err)
	}
	defer uploader.Close()

	svc, err := service.New(service.Deps{
		Store:    be.store,
		Requests: memory.NewRequestStore(),
		Reports:  memory.NewReportStore(),
		Hasher:   hasher,
		Tokens:   tokens,
		Uploader: uploader,
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}

	schemas, err := payload.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load request schemas: %v", err)
	}

	metrics.Register()

	handler := api.SetupRoutes(cfg, version, buildTime, api.Deps{
		Services: svc,
		Schemas:  schemas,
		Ping:     be.ping,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	if err := be.close(ctx); err != nil {
		logger.Error("error closing storage", slog.String("error", err.Error()))
	}

	logger.Info("server exited")
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		st, err := mongo.Connect(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, logger)
		if err != nil {
			return nil, err
		}
		return &backend{store: st, ping: st.Ping, close: st.Close}, nil
	default:
		conn, err := idb.New(ctx, cfg.DatabasePath, logger)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnStart {
			if err := idb.Migrate(ctx, conn, db.Migrations, db.SeedFiles); err != nil {
				conn.Close()
				return nil, err
			}
		}
		return &backend{
			store: sqlite.New(conn, logger),
			ping:  conn.Ping,
			close: func(context.Context) error { return conn.Close() },
		}, nil
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
