package schedule

import (
	"regexp"
	"strings"
)

// CommandKind вид распознанной команды создания задачи
type CommandKind int

const (
	// KindAutoSlot время не указано - слот подбирает аллокатор
	KindAutoSlot CommandKind = iota
	// KindExplicitTime пользователь назвал точное время
	KindExplicitTime
)

// taskCommandRe грамматика: "i want to <title> for <duration> [at <time>]".
// Заголовок жадный (в нём могут быть свои "for"/"at"), длительность
// ленивая, хвост "at ..." опционален.
var taskCommandRe = regexp.MustCompile(`(?i)^i want to (.+) for (.+?)(?: at (.+))?$`)

// TaskCommand сырые сегменты команды до валидации
type TaskCommand struct {
	Title        string
	DurationText string
	TimeText     string
}

// Kind возвращает способ назначения времени
func (c TaskCommand) Kind() CommandKind {
	if c.TimeText != "" {
		return KindExplicitTime
	}
	return KindAutoSlot
}

// MatchTaskCommand сопоставляет текст сообщения с грамматикой.
// Несовпадение - не ошибка: не каждое сообщение является командой,
// вызывающий просто молча игнорирует такие тексты.
func MatchTaskCommand(text string) (TaskCommand, bool) {
	m := taskCommandRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return TaskCommand{}, false
	}

	return TaskCommand{
		Title:        strings.TrimSpace(m[1]),
		DurationText: strings.TrimSpace(m[2]),
		TimeText:     strings.TrimSpace(m[3]),
	}, true
}
