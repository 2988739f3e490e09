package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/plazen/telegram/internal/service"
)

func TestDayImage_ProducesDecodablePNG(t *testing.T) {
	loc := time.FixedZone("UTC+2:00", 2*3600)
	workStart, workEnd := 9, 17
	thirty := 30

	day := &service.DaySchedule{
		OffsetLabel:   "UTC+2:00",
		Date:          time.Date(2025, time.June, 10, 0, 0, 0, 0, loc),
		WorkStartHour: &workStart,
		WorkEndHour:   &workEnd,
		Items: []service.TaskView{
			{LocalStart: time.Date(2025, time.June, 10, 9, 30, 0, 0, loc), DurationMinutes: &thirty, Title: "standup"},
			{LocalStart: time.Date(2025, time.June, 10, 14, 0, 0, 0, loc), Title: "write report", Completed: true},
		},
	}

	data, err := DayImage(day)
	if err != nil {
		t.Fatalf("DayImage: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != imageWidth || img.Bounds().Dy() != imageHeight {
		t.Errorf("unexpected image size: %v", img.Bounds())
	}
}

func TestDayImage_ExpandsHourBoundsForEarlyTasks(t *testing.T) {
	loc := time.UTC
	day := &service.DaySchedule{
		OffsetLabel: "UTC+0",
		Date:        time.Date(2025, time.June, 10, 0, 0, 0, 0, loc),
		Items: []service.TaskView{
			{LocalStart: time.Date(2025, time.June, 10, 5, 0, 0, 0, loc), Title: "early run"},
			{LocalStart: time.Date(2025, time.June, 10, 23, 45, 0, 0, loc), Title: "late read"},
		},
	}

	minHour, maxHour := hourBounds(day)
	if minHour > 5 {
		t.Errorf("minHour = %d, must include the 05:00 task", minHour)
	}
	if maxHour != 24 {
		t.Errorf("maxHour = %d, late task crosses midnight and must clamp to 24", maxHour)
	}

	if _, err := DayImage(day); err != nil {
		t.Fatalf("DayImage: %v", err)
	}
}
