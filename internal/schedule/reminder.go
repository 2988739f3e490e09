package schedule

import "time"

// ReminderLead за сколько до старта задачи уходит напоминание
const ReminderLead = 30 * time.Minute

// ReminderWindow окно поиска задач, стартующих "скоро": секунды
// обнуляются, дальше [now+30m, now+30m+1m). Ширина окна (1 минута)
// должна оставаться не меньше периода опроса цикла напоминаний, иначе
// задачи будут проскакивать между тиками. Возвращает naive-границы
// для запроса к хранилищу.
func ReminderWindow(now time.Time) (time.Time, time.Time) {
	rounded := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())
	start := rounded.Add(ReminderLead)
	end := start.Add(time.Minute)
	return ToNaive(start), ToNaive(end)
}
