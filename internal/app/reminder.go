package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plazen/telegram/internal/service"
)

// Sender минимальный интерфейс отправки сообщения в чат.
// Его реализует обёртка над telegram-ботом в main.
type Sender interface {
	SendHTML(ctx context.Context, chatID int64, text string) error
}

// ReminderLoop фоновый цикл напоминаний.
// Тикает каждые 60 секунд против минутного окна ReminderWindow:
// период опроса не должен превышать ширину окна, иначе задачи будут
// проскакивать между тиками.
type ReminderLoop struct {
	userService *service.UserService
	taskService *service.TaskService
	sender      Sender
	logger      *zap.Logger
	interval    time.Duration
	stopChan    chan struct{}
}

// NewReminderLoop создаёт новый цикл напоминаний
func NewReminderLoop(
	userService *service.UserService,
	taskService *service.TaskService,
	sender Sender,
	logger *zap.Logger,
) *ReminderLoop {
	return &ReminderLoop{
		userService: userService,
		taskService: taskService,
		sender:      sender,
		logger:      logger,
		interval:    60 * time.Second,
		stopChan:    make(chan struct{}),
	}
}

// Start запускает фоновый цикл
func (r *ReminderLoop) Start(ctx context.Context) {
	r.logger.Info("Starting reminder loop", zap.Duration("interval", r.interval))
	go r.run(ctx)
}

// Stop останавливает фоновый цикл
func (r *ReminderLoop) Stop() {
	r.logger.Info("Stopping reminder loop")
	close(r.stopChan)
}

func (r *ReminderLoop) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.tick(ctx)
		case <-r.stopChan:
			r.logger.Info("Reminder loop stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Reminder loop cancelled")
			return
		}
	}
}

// tick один проход: пользователи с включёнными напоминаниями, задачи в
// окне [now+30m, now+31m), отправка. Ошибка по одному пользователю не
// прерывает проход по остальным.
func (r *ReminderLoop) tick(ctx context.Context) {
	users, err := r.userService.ListNotifiable(ctx)
	if err != nil {
		r.logger.Error("Failed to list users for reminders", zap.Error(err))
		return
	}

	for _, settings := range users {
		reminders, err := r.taskService.DueReminders(ctx, settings)
		if err != nil {
			// Профили без валидной таймзоны просто пропускаем
			if errors.Is(err, service.ErrTimezoneNotSet) {
				continue
			}
			r.logger.Error("Failed to collect reminders",
				zap.String("user_id", settings.UserID.String()),
				zap.Error(err),
			)
			continue
		}

		for _, reminder := range reminders {
			message := fmt.Sprintf(
				"🔔 <b>Reminder!</b>\n\n"+
					"Your task is starting in 30 minutes (at %s):\n<b>%s</b>",
				reminder.LocalStart.Format("15:04"),
				escapeHTML(reminder.Title),
			)

			if err := r.sender.SendHTML(ctx, reminder.ChatID, message); err != nil {
				r.logger.Error("Failed to send reminder",
					zap.Int64("chat_id", reminder.ChatID),
					zap.Error(err),
				)
				continue
			}

			r.logger.Info("Sent reminder",
				zap.Int64("chat_id", reminder.ChatID),
				zap.Time("task_start", reminder.LocalStart),
			)
		}
	}
}

// escapeHTML экранирует заголовок для HTML-разметки Telegram
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
