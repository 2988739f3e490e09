package schedule

import (
	"testing"
	"time"
)

func TestReminderWindow(t *testing.T) {
	// now = 10:00:17 -> окно [10:30:00, 10:31:00)
	now := time.Date(2025, time.June, 10, 10, 0, 17, 0, time.UTC)
	start, end := ReminderWindow(now)

	wantStart := time.Date(2025, time.June, 10, 10, 30, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.June, 10, 10, 31, 0, 0, time.UTC)

	if !start.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("window end = %v, want %v", end, wantEnd)
	}
}

func TestReminderWindow_Boundaries(t *testing.T) {
	now := time.Date(2025, time.June, 10, 10, 0, 17, 0, time.UTC)
	start, end := ReminderWindow(now)

	inWindow := func(task time.Time) bool {
		return !task.Before(start) && task.Before(end)
	}

	if !inWindow(time.Date(2025, time.June, 10, 10, 30, 0, 0, time.UTC)) {
		t.Error("task at 10:30:00 must be included")
	}
	if inWindow(time.Date(2025, time.June, 10, 10, 29, 59, 0, time.UTC)) {
		t.Error("task at 10:29:59 must be excluded")
	}
	if inWindow(time.Date(2025, time.June, 10, 10, 31, 0, 0, time.UTC)) {
		t.Error("task at 10:31:00 must be excluded")
	}
}

func TestReminderWindow_WidthCoversPollCadence(t *testing.T) {
	start, end := ReminderWindow(time.Date(2025, time.June, 10, 23, 59, 1, 0, time.UTC))
	if end.Sub(start) < time.Minute {
		t.Error("window width must stay >= the 60s polling cadence")
	}
}
