package schedule

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidDuration     = errors.New("unparseable duration")
	ErrDurationNotPositive = errors.New("duration must be positive")
)

// Порядок важен: сначала часы, потом минуты, потом голое число
var (
	durationHoursRe   = regexp.MustCompile(`([\d.]+)\s*(hour|hr|h)`)
	durationMinutesRe = regexp.MustCompile(`([\d.]+)\s*(minute|min|m)`)
	durationBareRe    = regexp.MustCompile(`^([\d.]+)$`)
)

// ParseDurationMinutes извлекает число минут из свободного текста:
// "1 hour" -> 60, "90m" -> 90, "45" -> 45, десятичные дроби допустимы.
// Нулевые и отрицательные результаты отклоняются (см. DESIGN.md).
func ParseDurationMinutes(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	var minutes float64
	switch {
	case matchNumber(durationHoursRe, s, &minutes):
		minutes *= 60
	case matchNumber(durationMinutesRe, s, &minutes):
	case matchNumber(durationBareRe, s, &minutes):
	default:
		return 0, ErrInvalidDuration
	}

	result := int(math.Round(minutes))
	if result < 1 {
		return 0, ErrDurationNotPositive
	}
	return result, nil
}

func matchNumber(re *regexp.Regexp, s string, out *float64) bool {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return false
	}
	*out = n
	return true
}
