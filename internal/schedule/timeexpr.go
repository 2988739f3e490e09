package schedule

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidTime = errors.New("unparseable time")

// Форматы в порядке проверки: "17:30", "5:30PM", "5PM"
var clockLayouts = []string{"15:04", "3:04PM", "3PM"}

// ResolveLocalTime разбирает фразу времени ("17:30", "5:30PM", "5PM")
// и резолвит её в ближайшее будущее вхождение относительно now
// (локальное время пользователя). Если полученное время строго раньше
// now - это "завтра", добавляем сутки. Результат - naive timestamp,
// готовый к записи в хранилище.
func ResolveLocalTime(s string, now time.Time) (time.Time, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	var parsed time.Time
	var ok bool
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			parsed = t
			ok = true
			break
		}
	}
	if !ok {
		return time.Time{}, ErrInvalidTime
	}

	local := time.Date(
		now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		now.Location(),
	)

	if local.Before(now) {
		local = local.Add(24 * time.Hour)
	}

	return ToNaive(local), nil
}
