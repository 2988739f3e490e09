package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/plazen/telegram/internal/app"
	"github.com/plazen/telegram/internal/config"
	"github.com/plazen/telegram/internal/controller"
	"github.com/plazen/telegram/internal/crypto"
	"github.com/plazen/telegram/internal/repository"
	"github.com/plazen/telegram/internal/service"
)

// htmlSender адаптер бота под app.Sender для цикла напоминаний
type htmlSender struct {
	bot *bot.Bot
}

func (s *htmlSender) SendHTML(ctx context.Context, chatID int64, text string) error {
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	return err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting Plazen bot", zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Подключаемся к PostgreSQL
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("✅ Connected to database")

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Кодек заголовков: ключ уже провалидирован в config.Load
	titleCodec, err := crypto.NewTitleCodec(cfg.TitleKey)
	if err != nil {
		logger.Fatal("Failed to create title codec", zap.Error(err))
	}

	// Репозитории и сервисы
	settingsRepo := repository.NewSettingsRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)

	userService := service.NewUserService(settingsRepo, logger)
	taskService := service.NewTaskService(taskRepo, settingsRepo, titleCodec, logger)

	// Telegram бот
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, userService, taskService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Фоновый цикл напоминаний
	reminderLoop := app.NewReminderLoop(userService, taskService, &htmlSender{bot: b}, logger)
	reminderLoop.Start(ctx)
	defer reminderLoop.Stop()

	// Блокируется до отмены контекста
	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down successfully")
}
