package schedule

import (
	"errors"
	"testing"
	"time"
)

func day(hour, minute int) time.Time {
	return time.Date(2025, time.June, 10, hour, minute, 0, 0, time.UTC)
}

func TestFreeSlots_EmptyDay(t *testing.T) {
	free := FreeSlots(day(9, 0), 9, 17, 30, nil)

	if len(free) == 0 {
		t.Fatal("expected candidates in an empty window")
	}
	if !free[0].Equal(day(9, 0)) {
		t.Errorf("first candidate = %v, want 09:00", free[0])
	}

	last := free[len(free)-1]
	if !last.Equal(day(16, 30)) {
		t.Errorf("last candidate = %v, want 16:30 (end must fit the window)", last)
	}

	for _, s := range free {
		if s.Minute()%15 != 0 || s.Second() != 0 {
			t.Errorf("candidate %v is not 15-minute aligned", s)
		}
		if s.Add(30 * time.Minute).After(day(17, 0)) {
			t.Errorf("candidate %v ends after the window", s)
		}
	}
}

func TestFreeSlots_SnapsUpToQuarterHour(t *testing.T) {
	now := time.Date(2025, time.June, 10, 9, 7, 42, 0, time.UTC)
	free := FreeSlots(now, 9, 17, 30, nil)

	if len(free) == 0 {
		t.Fatal("expected candidates")
	}
	if !free[0].Equal(day(9, 15)) {
		t.Errorf("09:07:42 snaps to 09:15, got %v", free[0])
	}
}

func TestFreeSlots_BeforeWindowStartsAtWindow(t *testing.T) {
	free := FreeSlots(day(6, 30), 9, 17, 60, nil)

	if len(free) == 0 || !free[0].Equal(day(9, 0)) {
		t.Fatalf("search starts at window start, got %v", free)
	}
}

func TestFreeSlots_PastWindowEnd(t *testing.T) {
	if free := FreeSlots(day(18, 0), 9, 17, 30, nil); len(free) != 0 {
		t.Errorf("no wraparound to tomorrow, got %v", free)
	}
}

func TestFreeSlots_SkipsBusyIntervals(t *testing.T) {
	busy := []Interval{
		{Start: day(10, 0), End: day(11, 0)},
	}

	free := FreeSlots(day(9, 0), 9, 17, 30, busy)
	for _, s := range free {
		end := s.Add(30 * time.Minute)
		if s.Before(busy[0].End) && end.After(busy[0].Start) {
			t.Errorf("candidate %v overlaps busy interval", s)
		}
	}

	// Стык интервалов не конфликт: 09:30-10:00 и 11:00-11:30 валидны
	found930, found1100 := false, false
	for _, s := range free {
		if s.Equal(day(9, 30)) {
			found930 = true
		}
		if s.Equal(day(11, 0)) {
			found1100 = true
		}
	}
	if !found930 || !found1100 {
		t.Errorf("half-open overlap must allow touching slots: 09:30=%v 11:00=%v", found930, found1100)
	}
}

func TestAllocateSlot_FullyBusyDay(t *testing.T) {
	busy := []Interval{{Start: day(9, 0), End: day(17, 0)}}

	_, err := AllocateSlot(day(9, 0), 9, 17, 30, busy)
	if !errors.Is(err, ErrNoFreeSlot) {
		t.Errorf("want ErrNoFreeSlot, got %v", err)
	}
}

func TestAllocateSlot_MembershipInFreeSet(t *testing.T) {
	// Выбор случайный - проверяем принадлежность множеству, не значение
	busy := []Interval{{Start: day(12, 0), End: day(13, 0)}}
	free := FreeSlots(day(9, 0), 9, 17, 45, busy)

	valid := make(map[time.Time]bool, len(free))
	for _, s := range free {
		valid[s] = true
	}

	for i := 0; i < 50; i++ {
		slot, err := AllocateSlot(day(9, 0), 9, 17, 45, busy)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !valid[slot] {
			t.Fatalf("allocated slot %v is not in the free set", slot)
		}
		if slot.Add(45 * time.Minute).After(day(17, 0)) {
			t.Fatalf("slot %v ends after window end", slot)
		}
	}
}

func TestFreeSlots_StopsAtFirstOverflow(t *testing.T) {
	// Для 120-минутной задачи последний влезающий старт - 15:00
	free := FreeSlots(day(14, 50), 9, 17, 120, nil)

	if len(free) != 1 || !free[0].Equal(day(15, 0)) {
		t.Errorf("want exactly [15:00], got %v", free)
	}
}
