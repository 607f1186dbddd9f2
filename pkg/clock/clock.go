package clock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/plant-shift-api/pkg/jalali"
)

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" to minutes. Empty or malformed input reads as 0.
func ParseClock(raw string) int {
	minutes, err := ParseClockStrict(raw)
	if err != nil {
		return 0
	}
	return minutes
}

// ParseClockStrict converts "HH:MM" to minutes and reports malformed input.
// Hours are not capped at 23 so durations such as "12:00" or "30:15" parse.
func ParseClockStrict(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	hoursPart, minutesPart, found := strings.Cut(raw, ":")
	if !found {
		return 0, fmt.Errorf("clock value %q must be HH:MM", raw)
	}
	if !unsigned(hoursPart) || !unsigned(minutesPart) {
		return 0, fmt.Errorf("clock value %q must be unsigned HH:MM", raw)
	}
	hours, err := strconv.Atoi(hoursPart)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid hours in %q", raw)
	}
	minutes, err := strconv.Atoi(minutesPart)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", raw)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes as H:MM. Negative input is treated as 0.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// ElapsedMinutes returns the minutes from (d1, t1) to (d2, t2), never negative.
// Invalid dates yield 0.
func ElapsedMinutes(d1 jalali.Date, t1 string, d2 jalali.Date, t2 string) int {
	from, ok := absoluteMinutes(d1, t1)
	if !ok {
		return 0
	}
	to, ok := absoluteMinutes(d2, t2)
	if !ok {
		return 0
	}
	if to < from {
		return 0
	}
	return to - from
}

// CompareDateTime returns -1, 0 or 1 as (d1, t1) is before, equal to or after (d2, t2).
// An invalid date sorts before any valid one.
func CompareDateTime(d1 jalali.Date, t1 string, d2 jalali.Date, t2 string) int {
	a, okA := absoluteMinutes(d1, t1)
	b, okB := absoluteMinutes(d2, t2)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func absoluteMinutes(d jalali.Date, t string) (int, bool) {
	jdn, ok := d.JDN()
	if !ok {
		return 0, false
	}
	return jdn*minutesPerDay + ParseClock(t), true
}

func unsigned(part string) bool {
	return part != "" && part[0] != '+' && part[0] != '-'
}
