package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusportal/internal/clock"
	"campusportal/internal/config"
	"campusportal/internal/content"
	"campusportal/internal/handler"
	"campusportal/internal/repository"
	"campusportal/internal/repository/postgres"
	redisrepo "campusportal/internal/repository/redis"
	"campusportal/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Campus Portal Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("slot_backend", cfg.SlotBackend),
		zap.Bool("auto_resume", cfg.Portal.AutoResume),
	)

	slots, closeSlots, err := openSlots(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open slot store", zap.Error(err))
	}
	defer closeSlots()

	// Initialize services
	provider, err := content.New()
	if err != nil {
		logger.Fatal("Failed to load content", zap.Error(err))
	}

	wall := clock.NewWall()
	portal := service.NewPortal(
		slots,
		service.NewRenderer(provider),
		service.NewResponder(service.DefaultTopics()),
		wall,
		logger,
		service.SessionOptions{
			RenderDelay: cfg.Portal.RenderDelay,
			ReplyDelay:  cfg.Portal.ReplyDelay,
			AutoResume:  cfg.Portal.AutoResume,
		},
	)
	retentionService := service.NewRetentionService(slots, cfg.Portal.RememberDays, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, portal, wall, cfg.Portal.NoticeDuration, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCleanupJob(ctx, retentionService, h, cfg.Portal.SessionIdle, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// openSlots connects the configured slot backend
func openSlots(cfg *config.Config, logger *zap.Logger) (repository.SlotRepository, func(), error) {
	switch cfg.SlotBackend {
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}

		logger.Info("Redis connection established", zap.String("addr", cfg.Redis.Addr))
		return redisrepo.NewSlotRepo(client, cfg.RememberTTL()), func() { client.Close() }, nil
	}

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	logger.Info("Database migrations completed")

	return postgres.NewSlotRepo(db), func() { db.Close() }, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies the slots schema
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case err == migrate.ErrNoChange:
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob expires old remembered identities and idle sessions once a day
func runCleanupJob(ctx context.Context, retentionService *service.RetentionService, h *handler.Handler, sessionIdle time.Duration, logger *zap.Logger) {
	if err := retentionService.CleanupExpired(); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup")
			if err := retentionService.CleanupExpired(); err != nil {
				logger.Error("Failed to run scheduled cleanup", zap.Error(err))
			}
			if n := h.EvictIdle(sessionIdle); n > 0 {
				logger.Info("Evicted idle chats", zap.Int("count", n))
			}
		}
	}
}
