package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blog-cms-api/internal/api"
	"github.com/blog-cms-api/internal/auth"
	"github.com/blog-cms-api/internal/cache"
	"github.com/blog-cms-api/internal/config"
	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/docs"
	"github.com/blog-cms-api/internal/notification"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const pingTimeout = 5 * time.Second

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	log.Info().Msg("Starting Blog CMS API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer db.Close()

	// Run migrations
	if !skipMigrations {
		if err := db.RunMigrations(); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return err
		}
	}

	// Initialize repositories
	repos := repository.New(db)

	// Session revocations live in redis when configured, so every instance sees them
	revoked, closeStore, err := revocationStore(cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeStore()

	tokens := auth.JWT{
		Secret:   []byte(cfg.Auth.Secret),
		TokenTTL: cfg.Auth.SessionTTL,
		Issuer:   cfg.Auth.Issuer,
	}
	resolver := auth.NewResolver(tokens, revoked, log)
	gate := auth.NewGate(repos.User)

	notifier := notification.NewNotifier(notification.NewMailer(cfg.SMTP, log), cfg.SMTP.Timeout, log)

	// Initialize services
	services := service.NewServices(repos, cfg, service.Deps{
		Tokens:   tokens,
		Sessions: resolver,
		Notifier: notifier,
	}, log)

	// Initialize router
	router := api.NewRouter(services, api.Options{
		Resolver:    resolver,
		Gate:        gate,
		Docs:        docs.Load(cfg.Docs.Path, log),
		HealthCheck: db.HealthCheck,
	}, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		log.Error().Err(err).Msg("Server failed")
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	// Let queued mail finish within what is left of the shutdown budget
	if err := notifier.Wait(ctx); err != nil {
		log.Warn().Err(err).Msg("Pending notifications abandoned")
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}

func revocationStore(cfg config.RedisConfig, log zerolog.Logger) (cache.Store, func(), error) {
	if cfg.Addr == "" {
		log.Info().Msg("Using in-memory session revocation store")
		return cache.NewMemoryStore(), func() {}, nil
	}

	store := cache.NewRedisStore(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, "cms:")

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		store.Close()
		log.Error().Err(err).Str("addr", cfg.Addr).Msg("Failed to connect to redis")
		return nil, nil, err
	}

	log.Info().Str("addr", cfg.Addr).Msg("Using redis session revocation store")
	return store, func() { store.Close() }, nil
}
