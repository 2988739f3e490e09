package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/plazen/telegram/internal/controller/handlers"
	"github.com/plazen/telegram/internal/service"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	taskService *service.TaskService,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:      botInstance,
		handlers: handlers.NewHandlers(userService, taskService, logger),
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/schedule", bot.MatchTypeExact, c.handlers.HandleSchedule)

	// Команды с аргументами регистрируем по префиксу
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/timezone", bot.MatchTypePrefix, c.handlers.HandleTimezone)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/workinghours", bot.MatchTypePrefix, c.handlers.HandleWorkingHours)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/notifications", bot.MatchTypePrefix, c.handlers.HandleNotifications)

	// Обработчик свободного текста (команды создания задач)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Get your Chat ID to link your Plazen account"},
		{Command: "schedule", Description: "📅 Today's tasks"},
		{Command: "timezone", Description: "🌍 Set your UTC offset (e.g. /timezone -7)"},
		{Command: "workinghours", Description: "🕘 Set your daily window (e.g. /workinghours 9-17)"},
		{Command: "notifications", Description: "🔔 Reminders on/off"},
		{Command: "help", Description: "❓ How to create tasks"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
