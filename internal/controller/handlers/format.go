package handlers

import (
	"fmt"
	"strings"

	"github.com/plazen/telegram/internal/service"
)

// escapeHTML экранирует заголовок для HTML-разметки Telegram
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// formatDaySchedule собирает текст сегодняшнего расписания
func formatDaySchedule(day *service.DaySchedule) string {
	if len(day.Items) == 0 {
		return "You have no tasks scheduled for today. ✨"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Here is your schedule for today (%s):</b>\n\n", day.OffsetLabel)

	for _, item := range day.Items {
		status := "🔲"
		if item.Completed {
			status = "✅"
		}

		duration := ""
		if item.DurationMinutes != nil {
			duration = fmt.Sprintf(" (%d min)", *item.DurationMinutes)
		}

		fmt.Fprintf(&sb, "%s <b>%s</b> - %s%s\n",
			status,
			item.LocalStart.Format("15:04"),
			escapeHTML(item.Title),
			duration,
		)
	}

	return sb.String()
}

// formatCreatedTask собирает подтверждение создания задачи
func formatCreatedTask(created *service.CreatedTask) string {
	header := "<b>Task Scheduled!</b> 👍"
	if created.Auto {
		header = "<b>Task Scheduled!</b> 🎲 I picked a free slot for you."
	}

	return fmt.Sprintf(
		"%s\n\n"+
			"<b>Task:</b> %s\n"+
			"<b>When:</b> %s (%s)\n"+
			"<b>Duration:</b> %d minutes",
		header,
		escapeHTML(created.Title),
		created.LocalStart.Format("15:04 on Jan 02"),
		created.OffsetLabel,
		created.DurationMinutes,
	)
}
