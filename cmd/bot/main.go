package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/vkotelnikov/timetable-bot/internal/app"
	"github.com/vkotelnikov/timetable-bot/internal/config"
	"github.com/vkotelnikov/timetable-bot/internal/controller"
	"github.com/vkotelnikov/timetable-bot/internal/dialog"
	"github.com/vkotelnikov/timetable-bot/internal/repository"
	"github.com/vkotelnikov/timetable-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Схема создаётся до приёма первого события
	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Database schema is up to date", zap.Int64("version", version))
	}
	migrator.Close()

	groupRepo := repository.NewGroupRepository(pool, logger)
	entryRepo := repository.NewScheduleEntryRepository(pool, logger)

	scheduleService := service.NewScheduleService(groupRepo, entryRepo, logger)
	exportService := service.NewExportService(scheduleService, logger)
	previewService := service.NewPreviewService(cfg.PreviewFontPath, logger)

	engine := dialog.NewEngine(scheduleService, exportService, previewService, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, engine, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	logger.Info("Starting timetable bot",
		zap.String("environment", cfg.Environment))

	botController.Start(ctx)

	logger.Info("Bot stopped")
}
