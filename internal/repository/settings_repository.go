package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plazen/telegram/internal/model"
	"github.com/plazen/telegram/internal/repository/base"
)

type SettingsRepository struct {
	*base.Repository
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{Repository: base.NewRepository(pool)}
}

const settingsColumns = `user_id, telegram_id, timezone_offset, work_start_hour, work_end_hour, notifications, created_at`

// GetByTelegramID получает профиль по chat id Telegram.
// Возвращает nil, если аккаунт не привязан.
func (r *SettingsRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Settings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM user_settings
		WHERE telegram_id = $1
	`

	var s model.Settings
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&s.UserID,
		&s.TelegramID,
		&s.TimezoneOffset,
		&s.WorkStartHour,
		&s.WorkEndHour,
		&s.Notifications,
		&s.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Аккаунт не привязан
		}
		return nil, fmt.Errorf("get settings by telegram id: %w", err)
	}

	return &s, nil
}

// UpdateTimezone сохраняет строку смещения профиля.
// false - профиль с таким chat id не найден.
func (r *SettingsRepository) UpdateTimezone(ctx context.Context, telegramID int64, offset string) (bool, error) {
	query := `
		UPDATE user_settings
		SET timezone_offset = $1
		WHERE telegram_id = $2
	`

	affected, err := r.ExecAffected(ctx, query, offset, telegramID)
	if err != nil {
		return false, fmt.Errorf("update timezone: %w", err)
	}

	return affected > 0, nil
}

// UpdateWorkingHours сохраняет рабочее окно [start, end)
func (r *SettingsRepository) UpdateWorkingHours(ctx context.Context, telegramID int64, startHour, endHour int) (bool, error) {
	query := `
		UPDATE user_settings
		SET work_start_hour = $1, work_end_hour = $2
		WHERE telegram_id = $3
	`

	affected, err := r.ExecAffected(ctx, query, startHour, endHour, telegramID)
	if err != nil {
		return false, fmt.Errorf("update working hours: %w", err)
	}

	return affected > 0, nil
}

// UpdateNotifications включает/выключает напоминания
func (r *SettingsRepository) UpdateNotifications(ctx context.Context, telegramID int64, enabled bool) (bool, error) {
	query := `
		UPDATE user_settings
		SET notifications = $1
		WHERE telegram_id = $2
	`

	affected, err := r.ExecAffected(ctx, query, enabled, telegramID)
	if err != nil {
		return false, fmt.Errorf("update notifications: %w", err)
	}

	return affected > 0, nil
}

// ListNotifiable получает профили с включёнными напоминаниями и
// привязанным chat id
func (r *SettingsRepository) ListNotifiable(ctx context.Context) ([]*model.Settings, error) {
	query := `
		SELECT ` + settingsColumns + `
		FROM user_settings
		WHERE notifications = true AND telegram_id IS NOT NULL
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list notifiable settings: %w", err)
	}
	defer rows.Close()

	var result []*model.Settings
	for rows.Next() {
		var s model.Settings
		err := rows.Scan(
			&s.UserID,
			&s.TelegramID,
			&s.TimezoneOffset,
			&s.WorkStartHour,
			&s.WorkEndHour,
			&s.Notifications,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan settings: %w", err)
		}
		result = append(result, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	return result, nil
}
