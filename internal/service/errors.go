package service

import "errors"

// Ошибки пользовательского ввода: превращаются в подсказку, как
// исправить команду, и не логируются как сбои системы.
var (
	ErrEmptyTitle          = errors.New("task title is empty")
	ErrInvalidWorkingHours = errors.New("working hours must be within 0..23 with start before end")
)

// Ошибки состояния профиля: пользователю отвечаем инструкцией, какой
// шаг настройки он пропустил.
var (
	ErrNotLinked          = errors.New("account not linked")
	ErrTimezoneNotSet     = errors.New("timezone not set")
	ErrWorkingHoursNotSet = errors.New("working hours not set")
)
