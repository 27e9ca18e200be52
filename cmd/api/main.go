package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gearshare/backend/internal/adapters/cache"
	"github.com/gearshare/backend/internal/adapters/database"
	"github.com/gearshare/backend/internal/api/handlers"
	"github.com/gearshare/backend/internal/api/routes"
	"github.com/gearshare/backend/internal/application/services"
	"github.com/gearshare/backend/internal/domain/providers"
	"github.com/gearshare/backend/internal/domain/repositories"
	"github.com/gearshare/backend/internal/infrastructure/clients/postgres"
	"github.com/gearshare/backend/internal/infrastructure/clients/redis"
	"github.com/gearshare/backend/internal/infrastructure/observability"
	"github.com/gearshare/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// The application works without caching
		log.Warn().Err(err).Msg("failed to initialize Redis client, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	userAdapter := database.NewUserAdapter(pgClient)
	bookingAdapter := database.NewBookingAdapter(pgClient)
	requestAdapter := database.NewRequestAdapter(pgClient)
	commentAdapter := database.NewCommentAdapter(pgClient)

	var itemAdapter repositories.ItemRepository = database.NewItemAdapter(pgClient)
	if cacheProvider != nil {
		itemAdapter = database.NewCachedItemAdapter(itemAdapter, cacheProvider, metrics)
		log.Info().Msg("item adapter wrapped with caching layer")
	}

	userService := services.NewUserService(userAdapter)
	itemService := services.NewItemService(itemAdapter, userAdapter, bookingAdapter, commentAdapter, requestAdapter)
	bookingService := services.NewBookingService(bookingAdapter, userAdapter, itemAdapter)
	requestService := services.NewRequestService(requestAdapter, userAdapter, itemAdapter)

	router := routes.NewRouter(
		handlers.NewUserHandler(userService),
		handlers.NewItemHandler(itemService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewRequestHandler(requestService),
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr(),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
