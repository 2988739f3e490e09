package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/plazen/telegram/internal/schedule"
	"github.com/plazen/telegram/internal/service"
)

// HandleTextMessage обрабатывает свободный текст: единственная
// поддерживаемая форма - команда создания задачи
// "i want to <title> for <duration> [at <time>]".
// Всё остальное молча игнорируется - не каждое сообщение адресовано боту.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются своими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID

	cmd, ok := schedule.MatchTaskCommand(update.Message.Text)
	if !ok {
		h.logger.Debug("Ignoring non-task message", zap.Int64("chat_id", chatID))
		return
	}

	h.logger.Info("Matched task creation syntax", zap.Int64("chat_id", chatID))

	created, err := h.taskService.CreateFromCommand(ctx, chatID, cmd)
	if err != nil {
		h.replyTaskError(ctx, b, chatID, cmd, err)
		return
	}

	h.replyHTML(ctx, b, chatID, formatCreatedTask(created))
}

// replyTaskError превращает ошибку пайплайна создания задачи в
// корректирующее сообщение пользователю
func (h *Handlers) replyTaskError(ctx context.Context, b *bot.Bot, chatID int64, cmd schedule.TaskCommand, err error) {
	switch {
	case errors.Is(err, service.ErrNotLinked):
		h.reply(ctx, b, chatID,
			"I can't schedule this for you until I know who you are. 😢\n"+
				"Please send /start to get your Chat ID, then add it to your Plazen app settings.")

	case errors.Is(err, service.ErrTimezoneNotSet):
		h.replyHTML(ctx, b, chatID,
			"I can't schedule this for you until I know your timezone!\n"+
				"Please set your timezone first using <code>/timezone +5:30</code> or <code>/timezone -7</code>.")

	case errors.Is(err, service.ErrWorkingHoursNotSet):
		h.replyHTML(ctx, b, chatID,
			"To pick a free slot for you I need your working hours.\n"+
				"Set them first with <code>/workinghours 9-17</code>, or name an exact time (\"... at 14:00\").")

	case errors.Is(err, service.ErrEmptyTitle):
		h.reply(ctx, b, chatID, "Please provide a title for the task.")

	case errors.Is(err, schedule.ErrInvalidDuration), errors.Is(err, schedule.ErrDurationNotPositive):
		h.replyHTML(ctx, b, chatID, fmt.Sprintf(
			"I didn't understand the duration <b>'%s'</b>.\n"+
				"Please try '30 min' or '1 hour' or just '30'.",
			escapeHTML(cmd.DurationText),
		))

	case errors.Is(err, schedule.ErrInvalidTime):
		h.replyHTML(ctx, b, chatID, fmt.Sprintf(
			"I didn't understand the time <b>'%s'</b>.\n"+
				"Please try '17:30' or '5:30PM'.",
			escapeHTML(cmd.TimeText),
		))

	case errors.Is(err, schedule.ErrNoFreeSlot):
		h.reply(ctx, b, chatID,
			"😔 No free slot left in your working hours today.\n"+
				"Try a shorter duration, or name an exact time (\"... at 21:00\").")

	default:
		h.logger.Error("Task creation failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.reply(ctx, b, chatID, "Oops! Something went wrong while trying to schedule that. Please try again.")
	}
}
