package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/plazen/telegram/internal/model"
	"github.com/plazen/telegram/internal/schedule"
)

// SettingsStore хранилище профилей планирования (внешний коллаборатор)
type SettingsStore interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Settings, error)
	UpdateTimezone(ctx context.Context, telegramID int64, offset string) (bool, error)
	UpdateWorkingHours(ctx context.Context, telegramID int64, startHour, endHour int) (bool, error)
	UpdateNotifications(ctx context.Context, telegramID int64, enabled bool) (bool, error)
	ListNotifiable(ctx context.Context) ([]*model.Settings, error)
}

type UserService struct {
	settings SettingsStore
	logger   *zap.Logger
}

func NewUserService(settings SettingsStore, logger *zap.Logger) *UserService {
	return &UserService{
		settings: settings,
		logger:   logger,
	}
}

// GetByTelegramID получает профиль по chat id; nil если аккаунт не привязан
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Settings, error) {
	return s.settings.GetByTelegramID(ctx, telegramID)
}

// SetTimezone валидирует и сохраняет смещение от UTC.
// schedule.ErrInvalidOffset - неверный формат, ErrNotLinked - нет профиля.
func (s *UserService) SetTimezone(ctx context.Context, telegramID int64, offsetStr string) (*schedule.Offset, error) {
	offset, err := schedule.ParseOffset(offsetStr)
	if err != nil {
		return nil, err
	}

	updated, err := s.settings.UpdateTimezone(ctx, telegramID, offsetStr)
	if err != nil {
		return nil, fmt.Errorf("save timezone: %w", err)
	}
	if !updated {
		return nil, ErrNotLinked
	}

	s.logger.Info("Timezone updated",
		zap.Int64("telegram_id", telegramID),
		zap.String("offset", offsetStr),
	)

	return offset, nil
}

// SetWorkingHours сохраняет дневное рабочее окно [startHour, endHour).
// Часы в [0,24), начало строго раньше конца.
func (s *UserService) SetWorkingHours(ctx context.Context, telegramID int64, startHour, endHour int) error {
	if startHour < 0 || startHour > 23 || endHour < 0 || endHour > 23 || startHour >= endHour {
		return ErrInvalidWorkingHours
	}

	updated, err := s.settings.UpdateWorkingHours(ctx, telegramID, startHour, endHour)
	if err != nil {
		return fmt.Errorf("save working hours: %w", err)
	}
	if !updated {
		return ErrNotLinked
	}

	s.logger.Info("Working hours updated",
		zap.Int64("telegram_id", telegramID),
		zap.Int("start_hour", startHour),
		zap.Int("end_hour", endHour),
	)

	return nil
}

// SetNotifications включает/выключает напоминания
func (s *UserService) SetNotifications(ctx context.Context, telegramID int64, enabled bool) error {
	updated, err := s.settings.UpdateNotifications(ctx, telegramID, enabled)
	if err != nil {
		return fmt.Errorf("save notifications flag: %w", err)
	}
	if !updated {
		return ErrNotLinked
	}

	s.logger.Info("Notifications toggled",
		zap.Int64("telegram_id", telegramID),
		zap.Bool("enabled", enabled),
	)

	return nil
}

// ListNotifiable профили для цикла напоминаний
func (s *UserService) ListNotifiable(ctx context.Context) ([]*model.Settings, error) {
	return s.settings.ListNotifiable(ctx)
}
