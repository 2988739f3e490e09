package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plazen/telegram/internal/crypto"
	"github.com/plazen/telegram/internal/model"
	"github.com/plazen/telegram/internal/schedule"
)

// TaskStore хранилище задач (внешний коллаборатор).
// Про смещения и шифрование оно ничего не знает: границы диапазонов -
// naive timestamps, заголовки - уже вывод TitleCodec.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*model.Task, error)
	ListPendingInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*model.Task, error)
}

type TaskService struct {
	tasks    TaskStore
	settings SettingsStore
	codec    *crypto.TitleCodec
	locks    *ChatLocks
	logger   *zap.Logger

	now func() time.Time
}

func NewTaskService(
	tasks TaskStore,
	settings SettingsStore,
	codec *crypto.TitleCodec,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		settings: settings,
		codec:    codec,
		locks:    NewChatLocks(),
		logger:   logger,
		now:      time.Now,
	}
}

// CreatedTask результат создания задачи для подтверждения пользователю
type CreatedTask struct {
	Title           string
	LocalStart      time.Time
	DurationMinutes int
	Auto            bool
	OffsetLabel     string
}

// CreateFromCommand выполняет распознанную команду создания задачи.
// На время всего пайплайна чат заперт: между выбором свободного слота
// и вставкой не должно вклиниться второе создание для того же чата.
func (s *TaskService) CreateFromCommand(ctx context.Context, chatID int64, cmd schedule.TaskCommand) (*CreatedTask, error) {
	s.locks.Lock(chatID)
	defer s.locks.Unlock(chatID)

	settings, err := s.settings.GetByTelegramID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if settings == nil {
		return nil, ErrNotLinked
	}

	offset, err := s.profileOffset(settings)
	if err != nil {
		return nil, err
	}

	if cmd.Title == "" {
		return nil, ErrEmptyTitle
	}

	durationMinutes, err := schedule.ParseDurationMinutes(cmd.DurationText)
	if err != nil {
		return nil, err
	}

	now := s.now().In(offset.Location())

	var naiveStart time.Time
	auto := cmd.Kind() == schedule.KindAutoSlot

	if auto {
		naiveStart, err = s.allocateToday(ctx, settings, offset, now, durationMinutes)
		if err != nil {
			return nil, err
		}
	} else {
		naiveStart, err = schedule.ResolveLocalTime(cmd.TimeText, now)
		if err != nil {
			return nil, err
		}
	}

	encryptedTitle, err := s.codec.Encrypt(cmd.Title)
	if err != nil {
		return nil, fmt.Errorf("encrypt title: %w", err)
	}

	task := &model.Task{
		UserID:          settings.UserID,
		Title:           encryptedTitle,
		ScheduledTime:   naiveStart,
		DurationMinutes: &durationMinutes,
		IsCompleted:     false,
		TzOffsetAt:      settings.TimezoneOffset,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	s.logger.Info("Task created",
		zap.Int64("task_id", task.ID),
		zap.String("user_id", settings.UserID.String()),
		zap.Time("scheduled_time", naiveStart),
		zap.Int("duration_minutes", durationMinutes),
		zap.Bool("auto_slot", auto),
	)

	return &CreatedTask{
		Title:           cmd.Title,
		LocalStart:      offset.FromNaive(naiveStart),
		DurationMinutes: durationMinutes,
		Auto:            auto,
		OffsetLabel:     offset.Label(),
	}, nil
}

// allocateToday подбирает свободный слот в сегодняшнем рабочем окне.
// Занятые интервалы - незавершённые задачи сегодняшнего дня,
// переинтерпретированные под текущее смещение профиля.
func (s *TaskService) allocateToday(
	ctx context.Context,
	settings *model.Settings,
	offset *schedule.Offset,
	now time.Time,
	durationMinutes int,
) (time.Time, error) {
	if !settings.HasWorkingHours() {
		return time.Time{}, ErrWorkingHoursNotSet
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	existing, err := s.tasks.ListPendingInRange(ctx,
		settings.UserID,
		schedule.ToNaive(dayStart),
		schedule.ToNaive(dayStart.Add(24*time.Hour)),
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("list today's tasks: %w", err)
	}

	busy := make([]schedule.Interval, 0, len(existing))
	for _, t := range existing {
		start := offset.FromNaive(t.ScheduledTime)
		busy = append(busy, schedule.Interval{
			Start: start,
			End:   start.Add(time.Duration(t.BusyMinutes()) * time.Minute),
		})
	}

	slot, err := schedule.AllocateSlot(now, *settings.WorkStartHour, *settings.WorkEndHour, durationMinutes, busy)
	if err != nil {
		return time.Time{}, err
	}

	return schedule.ToNaive(slot), nil
}

// TaskView задача с расшифрованным заголовком в локальном времени
type TaskView struct {
	LocalStart      time.Time
	DurationMinutes *int
	Title           string
	Completed       bool
}

// DaySchedule сегодняшнее расписание пользователя
type DaySchedule struct {
	OffsetLabel   string
	Date          time.Time
	WorkStartHour *int
	WorkEndHour   *int
	Items         []TaskView
}

// TodaySchedule собирает задачи пользователя на сегодня под текущим
// смещением профиля
func (s *TaskService) TodaySchedule(ctx context.Context, chatID int64) (*DaySchedule, error) {
	settings, err := s.settings.GetByTelegramID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if settings == nil {
		return nil, ErrNotLinked
	}

	offset, err := s.profileOffset(settings)
	if err != nil {
		return nil, err
	}

	now := s.now().In(offset.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	tasks, err := s.tasks.ListInRange(ctx,
		settings.UserID,
		schedule.ToNaive(dayStart),
		schedule.ToNaive(dayStart.Add(24*time.Hour)),
	)
	if err != nil {
		return nil, fmt.Errorf("list today's tasks: %w", err)
	}

	day := &DaySchedule{
		OffsetLabel:   offset.Label(),
		Date:          dayStart,
		WorkStartHour: settings.WorkStartHour,
		WorkEndHour:   settings.WorkEndHour,
	}

	for _, t := range tasks {
		day.Items = append(day.Items, TaskView{
			LocalStart:      offset.FromNaive(t.ScheduledTime),
			DurationMinutes: t.DurationMinutes,
			Title:           s.decryptTitle(t, settings),
			Completed:       t.IsCompleted,
		})
	}

	return day, nil
}

// Reminder напоминание к отправке
type Reminder struct {
	ChatID     int64
	Title      string
	LocalStart time.Time
}

// DueReminders задачи пользователя, стартующие через 30 минут от now.
// Профиль без валидного смещения или без chat id пропускается выше.
func (s *TaskService) DueReminders(ctx context.Context, settings *model.Settings) ([]Reminder, error) {
	if settings.TelegramID == nil {
		return nil, nil
	}
	offset, err := s.profileOffset(settings)
	if err != nil {
		return nil, err
	}

	now := s.now().In(offset.Location())
	windowStart, windowEnd := schedule.ReminderWindow(now)

	tasks, err := s.tasks.ListPendingInRange(ctx, settings.UserID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("list reminder tasks: %w", err)
	}

	var reminders []Reminder
	for _, t := range tasks {
		reminders = append(reminders, Reminder{
			ChatID:     *settings.TelegramID,
			Title:      s.decryptTitle(t, settings),
			LocalStart: offset.FromNaive(t.ScheduledTime),
		})
	}

	return reminders, nil
}

// decryptTitle расшифровывает заголовок для показа.
// Провал аутентификации не валит ответ целиком: поле показывается в
// сохранённом виде, детали пишутся только в лог. Битый hex подменяется
// заглушкой.
func (s *TaskService) decryptTitle(t *model.Task, settings *model.Settings) string {
	if t.TzOffsetAt != nil && settings.TimezoneOffset != nil && *t.TzOffsetAt != *settings.TimezoneOffset {
		s.logger.Warn("Task was stored under a different offset",
			zap.Int64("task_id", t.ID),
			zap.String("stored_offset", *t.TzOffsetAt),
			zap.String("current_offset", *settings.TimezoneOffset),
		)
	}

	title, err := s.codec.Decrypt(t.Title)
	switch {
	case errors.Is(err, crypto.ErrCiphertextMalformed):
		s.logger.Error("Task title ciphertext malformed", zap.Int64("task_id", t.ID))
		return "⚠️ unreadable title"
	case errors.Is(err, crypto.ErrAuthFailed):
		s.logger.Warn("Task title failed authentication", zap.Int64("task_id", t.ID))
		return title // сохранённое значение как есть
	}
	return title
}

// profileOffset смещение профиля; отсутствующее или некорректно
// сохранённое значение равнозначно "таймзона не задана"
func (s *TaskService) profileOffset(settings *model.Settings) (*schedule.Offset, error) {
	if settings.TimezoneOffset == nil {
		return nil, ErrTimezoneNotSet
	}
	offset, err := schedule.ParseOffset(*settings.TimezoneOffset)
	if err != nil {
		s.logger.Warn("Stored timezone offset is invalid",
			zap.String("user_id", settings.UserID.String()),
			zap.String("offset", *settings.TimezoneOffset),
		)
		return nil, ErrTimezoneNotSet
	}
	return offset, nil
}
