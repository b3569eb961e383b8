package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pushauth/internal/api"
	"pushauth/internal/auth"
	"pushauth/internal/cache"
	"pushauth/internal/config"
	"pushauth/internal/db"
)

func main() {
	logLevel := new(slog.LevelVar)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logLevel.Set(cfg.LogLevel())

	slog.Info("starting server", "driver", cfg.Database.Driver, "denylist", cfg.Auth.Denylist)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	database, err := db.Open(startupCtx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		startupCancel()
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("database opened", "driver", database.Driver())

	healthChecks := map[string]api.HealthCheck{
		"database": database.PingContext,
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())

	var denylist auth.Denylist
	switch cfg.Auth.Denylist {
	case config.DenylistRedis:
		client, err := cache.New(startupCtx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			startupCancel()
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		slog.Info("redis connected", "addr", cfg.Redis.Addr)

		denylist = cache.NewRedisDenylist(client)
		healthChecks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	default:
		revokedTokens := db.NewRevokedTokenRepository(database)
		denylist = revokedTokens
		go db.NewCleanupService(revokedTokens, cfg.Auth.CleanupInterval).Start(cleanupCtx)
	}
	startupCancel()

	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, denylist)
	authService := auth.NewService(
		db.NewUserRepository(database),
		db.NewDeviceTokenRepository(database),
		jwtService,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	)

	server := api.NewServer(cfg, authService, jwtService, healthChecks)

	addr := cfg.Addr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down")

	cleanupCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
