package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"snapnote/backend/internal/config"
	"snapnote/backend/internal/handler"
	"snapnote/backend/internal/repository"
	"snapnote/backend/internal/service"
	"snapnote/backend/pkg/auth"
	"snapnote/backend/pkg/logger"
	"snapnote/backend/pkg/metrics"
)

func main() {
	cfg := config.Load()
	log := logger.NewLogger("snapnote-backend", cfg.LogLevel)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := repository.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to storage: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warnf("Failed to disconnect storage client: %v", err)
		}
	}()
	log.Info("Connected to storage")

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		// Existing duplicate data blocks index creation; the service still
		// works, minus the race protection the indexes provide.
		log.Warnf("Failed to ensure indexes: %v", err)
	}

	var tokenRepo repository.TokenRepository
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warnf("Redis unreachable, token revocation disabled: %v", err)
		} else {
			tokenRepo = repository.NewTokenRepository(redisClient)
			log.Info("Token revocation enabled")
		}
	}

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)

	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, tokenRepo, hasher, tokens)
	noteService := service.NewNoteService(noteRepo)
	tagService := service.NewTagService(tagRepo, noteRepo)
	userService := service.NewUserService(userRepo)

	m := metrics.NewMetrics("backend")

	router := handler.NewRouter(cfg, log, m, authService, handler.Handlers{
		Auth:   handler.NewAuthHandler(authService, log, cfg.TokenTTL, cfg.CookieCrossSite),
		Notes:  handler.NewNoteHandler(noteService, log),
		Tags:   handler.NewTagHandler(tagService, log),
		Users:  handler.NewUserHandler(userService, log),
		Health: handler.NewHealthHandler(client),
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Infof("Listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
		os.Exit(1)
	}
}
