package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/external"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/insights"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/journals"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/moods"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/apps/notifications"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/cache"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/config"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/database"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/logging"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/quotes"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/routes"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/scheduler"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/sentiment"
	"github.com/ahmetcoskunkizilkaya/moodmitra/internal/services"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

func loadConfig() (*config.Config, slog.Handler, error) {
	cfg := config.Load()
	stdout := logging.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, stdout, nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Models() does not touch the plugin's services.
	return migrate(db, []apps.Plugin{
		moods.New(nil),
		journals.New(nil),
		insights.New(nil),
		external.New(nil, nil),
		notifications.New(nil),
	})
}

func migrate(db *gorm.DB, plugins []apps.Plugin) error {
	if err := database.MigrateShared(db); err != nil {
		return fmt.Errorf("shared migration failed: %w", err)
	}
	return database.MigratePlugins(db, plugins)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, stdout, err := loadConfig()
	if err != nil {
		return err
	}
	loc := cfg.Location()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()

	// ERROR+ records are persisted in batches alongside stdout.
	dbLog := logging.NewDBHandler(logging.NewGormSink(db), 5*time.Second)
	defer dbLog.Stop()
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, dbLog)))

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Redis is optional: without it the limiter is in-memory and quotes are
	// not cached. Interfaces stay nil rather than holding a nil *cache.Store.
	var (
		jsonCache      cache.JSONCache
		limiterStorage fiber.Storage
		cachePinger    handlers.Pinger
	)
	if cfg.RedisURL != "" {
		store, err := cache.Connect(cmd.Context(), cfg.RedisURL, "moodmitra:")
		if err != nil {
			slog.Warn("redis unavailable, continuing without cache", "error", err)
		} else {
			defer store.Close()
			jsonCache, limiterStorage, cachePinger = store, store, store
			slog.Info("redis connected")
		}
	}

	userStore := services.NewGormUserStore(db)
	authService := services.NewAuthService(userStore, services.TokenConfig{
		Secret:        cfg.JWTSecret,
		AccessExpiry:  cfg.JWTAccessExpiry,
		RefreshExpiry: cfg.JWTRefreshExpiry,
	})

	sentimentProvider := sentiment.NewHTTPProvider(cfg.SentimentAPIURL, cfg.SentimentAPIKey, cfg.ExternalTimeout)
	quotesProvider := quotes.NewHTTPProvider(cfg.QuotesAPIURL, cfg.QuotesAPIKey, cfg.ExternalTimeout)

	moodRepo := moods.NewGormRepository(db)
	moodService := moods.NewMoodService(moodRepo, loc)
	journalService := journals.NewJournalService(journals.NewGormRepository(db), moodRepo, loc)
	analyticsService := insights.NewAnalyticsService(moodRepo, journalService, loc)
	notificationService := notifications.NewNotificationService(
		notifications.NewGormRepository(db), userStore, moodService, loc)

	// Journals reference mood entries, so moods migrate first.
	plugins := []apps.Plugin{
		moods.New(moodService),
		journals.New(journalService),
		insights.New(analyticsService),
		external.New(
			sentiment.NewAnalyzer(sentimentProvider, sentiment.Substring),
			quotes.NewService(quotesProvider, jsonCache),
		),
		notifications.New(notificationService),
	}

	if !skipMigrate {
		if err := migrate(db, plugins); err != nil {
			return err
		}
	}

	sched, err := scheduler.New(notificationService,
		func(ctx context.Context, cutoff time.Time) (int64, error) {
			return logging.PurgeBefore(db.WithContext(ctx), cutoff)
		},
		scheduler.Config{Location: loc, RetentionDays: cfg.LogRetentionDays},
	)
	if err != nil {
		return fmt.Errorf("scheduler init failed: %w", err)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("scheduler start failed: %w", err)
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Error("scheduler shutdown error", "error", err)
		}
	}()

	health := handlers.NewHealthHandler(
		handlers.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		cachePinger,
		map[string]bool{
			"sentiment": sentimentProvider.IsConfigured(),
			"quotes":    quotesProvider.IsConfigured(),
		},
	)

	app := routes.NewApp(cfg)
	routes.Setup(app, cfg, routes.Deps{
		Auth:           handlers.NewAuthHandler(authService),
		Health:         health,
		Plugins:        plugins,
		LimiterStorage: limiterStorage,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "timezone", loc.String())
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down server...")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}
