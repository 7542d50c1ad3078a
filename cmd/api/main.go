package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "moviematrix/docs" // swagger docs

	"moviematrix/internal/cache"
	"moviematrix/internal/config"
	"moviematrix/internal/db"
	"moviematrix/internal/handler"
	"moviematrix/internal/keylock"
	"moviematrix/internal/logging"
	"moviematrix/internal/realtime"
	"moviematrix/internal/repository"
	"moviematrix/internal/service"
)

// @title Movie Matrix API
// @version 1.0
// @description Movies, reviews with aggregated ratings, watchlists and users.
// @host localhost:3000
// @BasePath /
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mongo: a failed ping is not fatal, requests fail one by one until it is reachable
	client, database, err := db.Connect(ctx, cfg)
	if client == nil {
		logging.Fatal().Err(err).Msg("[mongo] invalid client configuration")
	}
	if err != nil {
		logging.Error().Err(err).Msg("[mongo] connection failed, serving anyway")
	} else if err := db.EnsureIndexes(ctx, database); err != nil {
		logging.Error().Err(err).Msg("[mongo] index setup failed")
	}

	// Redis is optional
	var listCache service.ListCache
	redisCache := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPass)
	if redisCache != nil {
		listCache = redisCache
	}

	// repos
	movieRepo := repository.NewMovieRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	watchRepo := repository.NewWatchlistRepository(database)
	userRepo := repository.NewUserRepository(database)

	// services
	locks := keylock.New()
	hub := realtime.NewHub()

	reviewOpts := []service.ReviewOption{service.WithNotifier(hub)}
	if listCache != nil {
		reviewOpts = append(reviewOpts, service.WithReviewCache(listCache))
	}

	svc := handler.Services{
		Movies:    service.NewMovieService(movieRepo, reviewRepo, locks, listCache),
		Reviews:   service.NewReviewService(reviewRepo, movieRepo, locks, reviewOpts...),
		Watchlist: service.NewWatchlistService(watchRepo, movieRepo),
		Users:     service.NewUserService(userRepo),
		Stats:     service.NewStatsService(movieRepo, userRepo, reviewRepo),
		Hub:       hub,
	}

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: handler.NewRouter(svc, handler.RouterConfig{
			CORSOrigins:  cfg.CORSOrigins,
			RateLimitRPM: cfg.RateLimitRPM,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("Movie Matrix server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http shutdown")
	}
	if err := redisCache.Close(); err != nil {
		logging.Warn().Err(err).Msg("[redis] close")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logging.Warn().Err(err).Msg("[mongo] disconnect")
	}
}
