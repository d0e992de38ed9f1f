package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beryllium.app/bot/common/id"
	"beryllium.app/bot/common/logger"
	"beryllium.app/bot/common/otel"
	"beryllium.app/bot/core/config"
	"beryllium.app/bot/core/db"
	"beryllium.app/bot/internal/events"
	"beryllium.app/bot/internal/http/middleware"
	httprouter "beryllium.app/bot/internal/http/router"
	"beryllium.app/bot/internal/notify"
	"beryllium.app/bot/internal/platform"
	"beryllium.app/bot/internal/queue"
	"beryllium.app/bot/internal/service"
	"beryllium.app/bot/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "beryllium starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.SnowflakeNode); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to apply schema", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "database connected")

	discord, err := platform.NewDiscordClient(cfg.Discord.Token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create discord client", "error", err)
		os.Exit(1)
	}
	defer discord.Close()

	stores := store.NewStores(database.Queries())

	bus := events.NewBus(cfg.Events.HandlerConcurrency)
	bus.Subscribe("audit_log", notify.NewAuditLog(stores.GuildSettings(), discord), events.KindInfractionCreated)

	if cfg.Events.MirrorEnabled() {
		mirror, err := newMirror(ctx, cfg.Events)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer mirror.Close()
		bus.Subscribe("redis_mirror", mirror)
		slog.InfoContext(ctx, "event mirror enabled", "stream", cfg.Events.RedisStream)
	}

	services := service.NewServices(
		stores,
		service.NewTxRunner(database),
		bus,
		notify.NewMemberNotifier(discord),
		discord,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, database)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func newMirror(ctx context.Context, cfg config.EventsConfig) (*queue.Mirror, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return queue.NewRedisMirror(client, cfg.RedisStream, slog.Default()), nil
}

func setupRouter(cfg config.Config, services *service.Services, database *db.DB) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		AdminAPIKey: cfg.AdminAPIKey,
		Database:    database,
	})

	return router
}

const banner = `
 _                    _ _ _
| |__   ___ _ __ _   _| | (_)_   _ _ __ ___
| '_ \ / _ \ '__| | | | | | | | | | '_ ' _ \
| |_) |  __/ |  | |_| | | | | |_| | | | | | |
|_.__/ \___|_|   \__, |_|_|_|\__,_|_| |_| |_|
                 |___/
`
