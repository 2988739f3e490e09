package model

import (
	"time"

	"github.com/google/uuid"
)

// Settings профиль планирования пользователя Plazen.
// Привязка к Telegram происходит в приложении Plazen: пользователь
// вставляет chat id в настройках, поэтому TelegramID может быть NULL.
type Settings struct {
	UserID         uuid.UUID `json:"user_id"`
	TelegramID     *int64    `json:"telegram_id"`
	TimezoneOffset *string   `json:"timezone_offset"` // например "+5:30", NULL пока не задан
	WorkStartHour  *int      `json:"work_start_hour"`
	WorkEndHour    *int      `json:"work_end_hour"`
	Notifications  bool      `json:"notifications"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasWorkingHours проверяет что рабочее окно настроено
func (s *Settings) HasWorkingHours() bool {
	return s.WorkStartHour != nil && s.WorkEndHour != nil
}
