package schedule

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

var ErrInvalidOffset = errors.New("invalid timezone offset")

// offsetRe грамматика фиксированного смещения: знак обязателен,
// 1-2 цифры часов, опциональные минуты с двоеточием или без
var offsetRe = regexp.MustCompile(`^([+-])(\d{1,2})(?::?(\d{2}))?$`)

// Offset фиксированное смещение от UTC. Никакого DST, никогда.
type Offset struct {
	raw   string
	delta time.Duration
	loc   *time.Location
}

// ParseOffset разбирает строку вида "+5:30", "-7", "+09:00".
// Часы до 14, минуты до 59 (реальный диапазон UTC-смещений).
// Невалидный ввод - ошибка, которую вызывающий превращает в сообщение
// пользователю; паник здесь нет.
func ParseOffset(s string) (*Offset, error) {
	m := offsetRe.FindStringSubmatch(s)
	if m == nil {
		return nil, ErrInvalidOffset
	}

	hours, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, ErrInvalidOffset
	}
	minutes := 0
	if m[3] != "" {
		minutes, err = strconv.Atoi(m[3])
		if err != nil {
			return nil, ErrInvalidOffset
		}
	}

	if hours > 14 || minutes > 59 {
		return nil, ErrInvalidOffset
	}

	delta := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if m[1] == "-" {
		delta = -delta
	}

	return &Offset{
		raw:   s,
		delta: delta,
		loc:   time.FixedZone("UTC"+s, int(delta/time.Second)),
	}, nil
}

// String возвращает исходную строку смещения ("+5:30")
func (o *Offset) String() string {
	return o.raw
}

// Label метка зоны для сообщений пользователю ("UTC+5:30")
func (o *Offset) Label() string {
	return "UTC" + o.raw
}

// Location фиксированная зона для арифметики локального времени
func (o *Offset) Location() *time.Location {
	return o.loc
}

// Now текущее локальное время пользователя
func (o *Offset) Now() time.Time {
	return time.Now().In(o.loc)
}

// ToNaive отбрасывает зону: те же поля настенного времени, но в UTC.
// Именно в таком виде timestamp уходит в хранилище.
func ToNaive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// FromNaive интерпретирует naive timestamp из хранилища как настенное
// время в зоне пользователя
func (o *Offset) FromNaive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, o.loc)
}
