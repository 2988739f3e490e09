package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/plazen/telegram/internal/controller/render"
	"github.com/plazen/telegram/internal/schedule"
	"github.com/plazen/telegram/internal/service"
)

// HandleStart обрабатывает команду /start: показывает chat id для
// привязки аккаунта в приложении Plazen
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	firstName := update.Message.From.FirstName

	h.logger.Info("User started the bot", zap.Int64("chat_id", chatID))

	h.replyHTML(ctx, b, chatID, fmt.Sprintf(
		"Hi %s! Welcome to the Plazen Bot. 🤖\n\n"+
			"To link this bot to your Plazen account, copy your Chat ID below and paste it "+
			"into the 'Telegram Chat ID' field in your Plazen app's settings.\n\n"+
			"Your Telegram Chat ID is:\n<code>%d</code>\n\n"+
			"Once linked, please use /timezone to set your local timezone, "+
			"/workinghours to set your daily window, then /schedule to see your tasks.",
		escapeHTML(firstName), chatID,
	))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "Available commands:\n" +
		"/start - Get your Telegram Chat ID to link your account.\n" +
		"/schedule - Get your schedule for today.\n" +
		"/timezone - Set your local timezone (e.g., /timezone -7)\n" +
		"/workinghours - Set your daily working window (e.g., /workinghours 9-17)\n" +
		"/notifications - Turn reminders on or off (/notifications on)\n\n" +
		"To create a task, just write:\n" +
		"\"I want to write report for 1 hour at 14:00\"\n" +
		"Leave out \"at ...\" and I'll pick a free slot inside your working hours."

	h.reply(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleTimezone обрабатывает команду /timezone <offset>
func (h *Handlers) HandleTimezone(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	args := commandArgs(update.Message.Text)

	if len(args) == 0 {
		h.replyHTML(ctx, b, chatID,
			"Please provide your timezone offset from UTC.\n\n"+
				"<b>Examples:</b>\n"+
				"<code>/timezone +5:30</code> (for India)\n"+
				"<code>/timezone -7</code> (for Mountain Time)\n"+
				"<code>/timezone +10</code> (for Sydney)\n\n"+
				"You can google \"my timezone offset\" to find yours.")
		return
	}

	offset, err := h.userService.SetTimezone(ctx, chatID, args[0])
	switch {
	case errors.Is(err, schedule.ErrInvalidOffset):
		h.replyHTML(ctx, b, chatID,
			"<b>Invalid format.</b> 😕\n"+
				"Please use one of these formats:\n"+
				"<code>+5:30</code>\n<code>-7</code>\n<code>+09:00</code>")
	case errors.Is(err, service.ErrNotLinked):
		h.reply(ctx, b, chatID,
			"I couldn't find your user account. 😢\n"+
				"Please make sure you have linked your account in the Plazen app using /start first.")
	case err != nil:
		h.logger.Error("Failed to set timezone", zap.Int64("chat_id", chatID), zap.Error(err))
		h.reply(ctx, b, chatID, "An error occurred while trying to save your timezone. Please try again.")
	default:
		h.replyHTML(ctx, b, chatID, fmt.Sprintf("Success! Your timezone is set to <b>%s</b>. 🎉", offset.Label()))
	}
}

// HandleWorkingHours обрабатывает команду /workinghours <start>-<end>
func (h *Handlers) HandleWorkingHours(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	args := commandArgs(update.Message.Text)

	usage := "Please provide your working window as hours, for example:\n" +
		"<code>/workinghours 9-17</code>\n<code>/workinghours 8-20</code>"

	if len(args) == 0 {
		h.replyHTML(ctx, b, chatID, usage)
		return
	}

	startHour, endHour, ok := parseHourRange(args[0])
	if !ok {
		h.replyHTML(ctx, b, chatID, "<b>Invalid format.</b> 😕\n"+usage)
		return
	}

	err := h.userService.SetWorkingHours(ctx, chatID, startHour, endHour)
	switch {
	case errors.Is(err, service.ErrInvalidWorkingHours):
		h.replyHTML(ctx, b, chatID, "<b>Invalid hours.</b> 😕\nUse whole hours 0-23 with start before end, e.g. <code>/workinghours 9-17</code>.")
	case errors.Is(err, service.ErrNotLinked):
		h.reply(ctx, b, chatID,
			"I couldn't find your user account. 😢\n"+
				"Please make sure you have linked your account in the Plazen app using /start first.")
	case err != nil:
		h.logger.Error("Failed to set working hours", zap.Int64("chat_id", chatID), zap.Error(err))
		h.reply(ctx, b, chatID, "An error occurred while trying to save your working hours. Please try again.")
	default:
		h.replyHTML(ctx, b, chatID, fmt.Sprintf(
			"Success! Your working hours are set to <b>%02d:00-%02d:00</b>. 🎉\n"+
				"Tasks without an explicit time will be placed inside this window.",
			startHour, endHour,
		))
	}
}

// HandleNotifications обрабатывает команду /notifications on|off
func (h *Handlers) HandleNotifications(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	args := commandArgs(update.Message.Text)

	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		h.replyHTML(ctx, b, chatID, "Use <code>/notifications on</code> or <code>/notifications off</code>.")
		return
	}
	enabled := args[0] == "on"

	err := h.userService.SetNotifications(ctx, chatID, enabled)
	switch {
	case errors.Is(err, service.ErrNotLinked):
		h.reply(ctx, b, chatID,
			"I couldn't find your user account. 😢\n"+
				"Please make sure you have linked your account in the Plazen app using /start first.")
	case err != nil:
		h.logger.Error("Failed to toggle notifications", zap.Int64("chat_id", chatID), zap.Error(err))
		h.reply(ctx, b, chatID, "An error occurred. Please try again.")
	case enabled:
		h.reply(ctx, b, chatID, "🔔 Reminders are on. I'll ping you 30 minutes before each task.")
	default:
		h.reply(ctx, b, chatID, "🔕 Reminders are off.")
	}
}

// HandleSchedule обрабатывает команду /schedule: текстовый список задач
// на сегодня плюс картинка дня
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Info("Received /schedule command", zap.Int64("chat_id", chatID))

	day, err := h.taskService.TodaySchedule(ctx, chatID)
	switch {
	case errors.Is(err, service.ErrNotLinked):
		h.reply(ctx, b, chatID,
			"I don't recognize you. 😢\n"+
				"Please send /start to get your Chat ID, then add it to your Plazen app settings.")
		return
	case errors.Is(err, service.ErrTimezoneNotSet):
		h.replyHTML(ctx, b, chatID,
			"Please set your timezone first!\n"+
				"I need to know your timezone to find your schedule for 'today'.\n\n"+
				"Use <code>/timezone +5:30</code> or <code>/timezone -7</code>.")
		return
	case err != nil:
		h.logger.Error("Failed to build schedule", zap.Int64("chat_id", chatID), zap.Error(err))
		h.reply(ctx, b, chatID, "Oops! Something went wrong. Please try again.")
		return
	}

	h.replyHTML(ctx, b, chatID, formatDaySchedule(day))

	if len(day.Items) == 0 {
		return
	}

	png, err := render.DayImage(day)
	if err != nil {
		// Картинка - приятное дополнение, текст уже отправлен
		h.logger.Warn("Failed to render day image", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "schedule.png",
			Data:     bytes.NewReader(png),
		},
	})
	if err != nil {
		h.logger.Error("Failed to send day image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// commandArgs отрезает саму команду и возвращает аргументы
func commandArgs(text string) []string {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// parseHourRange разбирает "9-17" в пару часов
func parseHourRange(s string) (int, int, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
