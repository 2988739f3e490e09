package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/plazen/telegram/internal/model"
	"github.com/plazen/telegram/internal/service"
)

// Константы размеров и отступов
const (
	imageWidth      = 520
	imageHeight     = 840
	headerHeight    = 56
	leftLabelsWidth = 64
	taskPaddingX    = 10
	minTaskHeight   = 14.0
	taskRadius      = 5.0
	defaultMinHour  = 8
	defaultMaxHour  = 20
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	headerColor    = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 120}
	windowColor    = color.NRGBA{133, 193, 85, 35}
	taskColor      = color.RGBA{120, 170, 220, 230}
	taskDoneColor  = color.RGBA{158, 158, 158, 200}
	taskTextColor  = color.RGBA{20, 24, 28, 230}
)

// DayImage рисует однодневную колонку расписания: часовая сетка,
// подсветка рабочего окна, прямоугольники задач
func DayImage(day *service.DaySchedule) ([]byte, error) {
	minHour, maxHour := hourBounds(day)
	hoursShown := maxHour - minHour
	hourPx := float64(imageHeight-headerHeight) / float64(hoursShown)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	// Заголовок
	dc.SetColor(headerColor)
	title := fmt.Sprintf("%s  (%s)", day.Date.Format("Mon, Jan 02"), day.OffsetLabel)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/2, 0.5, 0.35)

	yFor := func(t time.Time) float64 {
		minutes := float64((t.Hour()-minHour)*60 + t.Minute())
		return headerHeight + minutes/60*hourPx
	}

	// Подсветка рабочего окна
	if day.WorkStartHour != nil && day.WorkEndHour != nil {
		top := headerHeight + float64(*day.WorkStartHour-minHour)*hourPx
		bottom := headerHeight + float64(*day.WorkEndHour-minHour)*hourPx
		dc.SetColor(windowColor)
		dc.DrawRectangle(leftLabelsWidth, top, imageWidth-leftLabelsWidth, bottom-top)
		dc.Fill()
	}

	// Часовая сетка
	for h := minHour; h <= maxHour; h++ {
		y := headerHeight + float64(h-minHour)*hourPx

		dc.SetColor(hourLineColor)
		dc.DrawLine(leftLabelsWidth, y, imageWidth, y)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), leftLabelsWidth-8, y, 1, 0.35)
	}

	// Задачи
	for _, item := range day.Items {
		minutes := model.DefaultTaskMinutes
		if item.DurationMinutes != nil {
			minutes = *item.DurationMinutes
		}

		top := yFor(item.LocalStart)
		height := float64(minutes) / 60 * hourPx
		if height < minTaskHeight {
			height = minTaskHeight
		}

		if item.Completed {
			dc.SetColor(taskDoneColor)
		} else {
			dc.SetColor(taskColor)
		}
		dc.DrawRoundedRectangle(leftLabelsWidth+taskPaddingX, top, imageWidth-leftLabelsWidth-2*taskPaddingX, height, taskRadius)
		dc.Fill()

		dc.SetColor(taskTextColor)
		label := fmt.Sprintf("%s  %s", item.LocalStart.Format("15:04"), truncate(item.Title, 48))
		dc.DrawString(label, leftLabelsWidth+taskPaddingX+8, top+13)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode day image: %w", err)
	}
	return buf.Bytes(), nil
}

// hourBounds подбирает показываемый диапазон часов: рабочее окно и все
// задачи должны попасть в кадр
func hourBounds(day *service.DaySchedule) (int, int) {
	minHour, maxHour := defaultMinHour, defaultMaxHour

	if day.WorkStartHour != nil && *day.WorkStartHour < minHour {
		minHour = *day.WorkStartHour
	}
	if day.WorkEndHour != nil && *day.WorkEndHour > maxHour {
		maxHour = *day.WorkEndHour
	}

	for _, item := range day.Items {
		start := item.LocalStart.Hour()
		if start < minHour {
			minHour = start
		}

		minutes := model.DefaultTaskMinutes
		if item.DurationMinutes != nil {
			minutes = *item.DurationMinutes
		}
		end := item.LocalStart.Add(time.Duration(minutes) * time.Minute)
		endHour := end.Hour()
		if end.Minute() > 0 || end.Second() > 0 {
			endHour++
		}
		if end.Day() != item.LocalStart.Day() {
			endHour = 24
		}
		if endHour > maxHour {
			maxHour = endHour
		}
	}

	if maxHour > 24 {
		maxHour = 24
	}
	if maxHour <= minHour {
		maxHour = minHour + 1
	}

	return minHour, maxHour
}

// truncate обрезает длинный заголовок для подписи на картинке
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
