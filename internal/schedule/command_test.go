package schedule

import "testing"

func TestMatchTaskCommand_ExplicitTime(t *testing.T) {
	cmd, ok := MatchTaskCommand("I want to write report for 1 hour at 14:00")
	if !ok {
		t.Fatal("expected a match")
	}
	if cmd.Title != "write report" {
		t.Errorf("title = %q", cmd.Title)
	}
	if cmd.DurationText != "1 hour" {
		t.Errorf("duration = %q", cmd.DurationText)
	}
	if cmd.TimeText != "14:00" {
		t.Errorf("time = %q", cmd.TimeText)
	}
	if cmd.Kind() != KindExplicitTime {
		t.Error("expected explicit-time kind")
	}
}

func TestMatchTaskCommand_AutoSlot(t *testing.T) {
	cmd, ok := MatchTaskCommand("i want to call mom for 30 min")
	if !ok {
		t.Fatal("expected a match")
	}
	if cmd.Title != "call mom" || cmd.DurationText != "30 min" {
		t.Errorf("parsed %+v", cmd)
	}
	if cmd.Kind() != KindAutoSlot {
		t.Error("no time clause means auto-slot kind")
	}
}

func TestMatchTaskCommand_CaseAndWhitespace(t *testing.T) {
	cmd, ok := MatchTaskCommand("  I WANT TO Read For 45 AT 5PM  ")
	if !ok {
		t.Fatal("expected a match")
	}
	if cmd.Title != "Read" || cmd.DurationText != "45" || cmd.TimeText != "5PM" {
		t.Errorf("parsed %+v", cmd)
	}
}

func TestMatchTaskCommand_TitleMayContainKeywords(t *testing.T) {
	// "for" и "at" внутри заголовка не должны рвать грамматику
	cmd, ok := MatchTaskCommand("i want to prepare slides for the board for 2 hours")
	if !ok {
		t.Fatal("expected a match")
	}
	if cmd.Title != "prepare slides for the board" {
		t.Errorf("title = %q", cmd.Title)
	}
	if cmd.DurationText != "2 hours" {
		t.Errorf("duration = %q", cmd.DurationText)
	}

	cmd, ok = MatchTaskCommand("i want to look at stars for 20 min")
	if !ok {
		t.Fatal("expected a match")
	}
	if cmd.Title != "look at stars" || cmd.TimeText != "" {
		t.Errorf("parsed %+v", cmd)
	}
}

func TestMatchTaskCommand_NotACommand(t *testing.T) {
	for _, in := range []string{
		"hello there",
		"i want to sleep", // нет "for"
		"schedule something for me",
		"",
	} {
		if _, ok := MatchTaskCommand(in); ok {
			t.Errorf("MatchTaskCommand(%q): expected no match", in)
		}
	}
}

func TestMatchTaskCommand_EmptyTitlePassesThrough(t *testing.T) {
	// Пустой заголовок - ошибка валидации уровнем выше, не "не команда"
	cmd, ok := MatchTaskCommand("i want to   for 30 min")
	if !ok {
		t.Fatal("expected a match")
	}
	if cmd.Title != "" {
		t.Errorf("title = %q, want empty", cmd.Title)
	}
}
