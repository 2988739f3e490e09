package schedule

import (
	"errors"
	"math/rand"
	"time"
)

var ErrNoFreeSlot = errors.New("no free slot available")

const slotStride = 15 * time.Minute

// Interval занятый интервал [Start, End) в локальном времени
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps полуоткрытый тест пересечения интервалов
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// FreeSlots перечисляет все свободные старты для задачи длительностью
// duration внутри окна [startHour, endHour) сегодняшнего дня.
// Кандидаты идут с шагом 15 минут от max(now, начало окна), притянутого
// вверх к 15-минутной границе. Перечисление останавливается на первом
// кандидате, чей конец вылезает за окно: шаг только увеличивает старт,
// дальше лучше не будет. Переноса на завтра нет - аллокация строго
// однодневная.
func FreeSlots(now time.Time, startHour, endHour, durationMinutes int, busy []Interval) []time.Time {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), startHour, 0, 0, 0, now.Location())
	todayEnd := time.Date(now.Year(), now.Month(), now.Day(), endHour, 0, 0, 0, now.Location())

	searchStart := todayStart
	if now.After(searchStart) {
		searchStart = now
	}
	searchStart = snapUp(searchStart)

	duration := time.Duration(durationMinutes) * time.Minute

	var free []time.Time
	for start := searchStart; start.Before(todayEnd); start = start.Add(slotStride) {
		candidate := Interval{Start: start, End: start.Add(duration)}
		if candidate.End.After(todayEnd) {
			break
		}

		conflict := false
		for _, b := range busy {
			if candidate.Overlaps(b) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, start)
		}
	}

	return free
}

// AllocateSlot выбирает РАВНОМЕРНО СЛУЧАЙНЫЙ свободный слот, а не самый
// ранний: так автозадачи размазываются по дню, а не сбиваются в утро.
// Это осознанное свойство, тесты проверяют принадлежность множеству,
// а не конкретное значение.
func AllocateSlot(now time.Time, startHour, endHour, durationMinutes int, busy []Interval) (time.Time, error) {
	free := FreeSlots(now, startHour, endHour, durationMinutes, busy)
	if len(free) == 0 {
		return time.Time{}, ErrNoFreeSlot
	}
	return free[rand.Intn(len(free))], nil
}

// snapUp притягивает время вверх к ближайшей 15-минутной границе
// настенных часов; время на границе не меняется
func snapUp(t time.Time) time.Time {
	floor := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()-t.Minute()%15, 0, 0, t.Location())
	if floor.Before(t) {
		floor = floor.Add(slotStride)
	}
	return floor
}
