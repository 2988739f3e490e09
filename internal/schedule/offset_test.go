package schedule

import (
	"testing"
	"time"
)

func TestParseOffset_Valid(t *testing.T) {
	cases := []struct {
		in        string
		wantDelta time.Duration
	}{
		{"+5:30", 5*time.Hour + 30*time.Minute},
		{"-7", -7 * time.Hour},
		{"+09:00", 9 * time.Hour},
		{"+0", 0},
		{"+14:00", 14 * time.Hour},
		{"-14", -14 * time.Hour},
		{"+0530", 5*time.Hour + 30*time.Minute}, // минуты без двоеточия
	}

	for _, c := range cases {
		o, err := ParseOffset(c.in)
		if err != nil {
			t.Errorf("ParseOffset(%q): unexpected error %v", c.in, err)
			continue
		}
		if o.delta != c.wantDelta {
			t.Errorf("ParseOffset(%q): delta = %v, want %v", c.in, o.delta, c.wantDelta)
		}
	}
}

func TestParseOffset_Invalid(t *testing.T) {
	cases := []string{
		"",
		"7",      // знак обязателен
		"+15:00", // часы > 14
		"-15",
		"+5:60", // минуты > 59
		"+5:3",  // минуты - ровно две цифры
		"abc",
		"+1:2:3",
		"++5",
	}

	for _, c := range cases {
		if _, err := ParseOffset(c); err == nil {
			t.Errorf("ParseOffset(%q): expected error, got nil", c)
		}
	}
}

func TestParseOffset_EquivalentSpellings(t *testing.T) {
	a, err := ParseOffset("-7")
	if err != nil {
		t.Fatalf("ParseOffset(-7): %v", err)
	}
	b, err := ParseOffset("-07:00")
	if err != nil {
		t.Fatalf("ParseOffset(-07:00): %v", err)
	}
	if a.delta != b.delta {
		t.Errorf("-7 and -07:00 should be the same delta: %v vs %v", a.delta, b.delta)
	}
}

func TestOffset_NaiveRoundTrip(t *testing.T) {
	o, err := ParseOffset("+5:30")
	if err != nil {
		t.Fatalf("ParseOffset: %v", err)
	}

	local := time.Date(2025, time.June, 10, 14, 45, 12, 0, o.Location())
	naive := ToNaive(local)

	if naive.Location() != time.UTC {
		t.Error("naive timestamp must carry no offset (stored as UTC wall clock)")
	}
	if naive.Hour() != 14 || naive.Minute() != 45 {
		t.Errorf("naive keeps wall clock fields: got %02d:%02d", naive.Hour(), naive.Minute())
	}

	back := o.FromNaive(naive)
	if !back.Equal(local) {
		t.Errorf("round trip mismatch: %v vs %v", back, local)
	}
}

func TestOffset_Label(t *testing.T) {
	o, _ := ParseOffset("+5:30")
	if o.Label() != "UTC+5:30" {
		t.Errorf("Label() = %q", o.Label())
	}
}
