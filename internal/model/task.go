package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTaskMinutes длительность, которую занимает задача без
// явной длительности при проверке конфликтов
const DefaultTaskMinutes = 30

// Task задача пользователя.
// ScheduledTime хранится как naive timestamp: локальное настенное время
// пользователя на момент создания, без привязки к зоне. При чтении оно
// интерпретируется через ТЕКУЩИЙ offset профиля. TzOffsetAt фиксирует
// offset, действовавший при записи (см. DESIGN.md про дрейф).
type Task struct {
	ID              int64     `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Title           string    `json:"title"` // в БД - вывод TitleCodec
	ScheduledTime   time.Time `json:"scheduled_time"`
	DurationMinutes *int      `json:"duration_minutes"` // указатель - может быть nil
	IsCompleted     bool      `json:"is_completed"`
	TzOffsetAt      *string   `json:"tz_offset_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// BusyMinutes длительность задачи для расчёта занятых интервалов
func (t *Task) BusyMinutes() int {
	if t.DurationMinutes == nil || *t.DurationMinutes < DefaultTaskMinutes {
		return DefaultTaskMinutes
	}
	return *t.DurationMinutes
}
