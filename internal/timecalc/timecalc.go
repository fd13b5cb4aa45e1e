package timecalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

const Zero = "0:00"

var (
	ErrInvalidClock     = errors.New("invalid time of day")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrNegativeDuration = errors.New("pause exceeds worked time")
)

// PausePolicy decides what IntervalWithPause does when the pause is longer
// than the interval itself.
type PausePolicy string

const (
	PauseClamp  PausePolicy = "clamp"
	PauseReject PausePolicy = "reject"
)

func ParsePausePolicy(raw string) (PausePolicy, error) {
	switch PausePolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PauseClamp:
		return PauseClamp, nil
	case PauseReject:
		return PauseReject, nil
	default:
		return "", fmt.Errorf("unknown pause policy %q", raw)
	}
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(raw string) (int, error) {
	h, m, err := splitHM(raw)
	if err != nil || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, raw)
	}
	return h*60 + m, nil
}

// ParseDuration parses "H:MM" into minutes. Hours are not bounded.
func ParseDuration(raw string) (int, error) {
	h, m, err := splitHM(raw)
	if err != nil || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}
	return h*60 + m, nil
}

func IsClock(raw string) bool {
	_, err := ParseClock(raw)
	return err == nil
}

// Interval returns the elapsed time between two times of day as "H:MM".
// An absent or malformed bound yields "0:00"; an end before the start
// crosses midnight.
func Interval(start, end string) string {
	return Format(intervalMinutes(start, end))
}

// IntervalWithPause is Interval minus a pause given as "H:MM".
func IntervalWithPause(start, end, pause string, policy PausePolicy) (string, error) {
	minutes, err := IntervalMinutesWithPause(start, end, pause, policy)
	if err != nil {
		return "", err
	}
	return Format(minutes), nil
}

func IntervalMinutes(start, end string) int {
	return intervalMinutes(start, end)
}

func IntervalMinutesWithPause(start, end, pause string, policy PausePolicy) (int, error) {
	total := intervalMinutes(start, end)
	if strings.TrimSpace(pause) == "" {
		return total, nil
	}
	pauseMinutes, err := ParseDuration(pause)
	if err != nil {
		// unparseable pause is treated like an absent one
		return total, nil
	}
	total -= pauseMinutes
	if total < 0 {
		if policy == PauseReject {
			return 0, fmt.Errorf("%w: %s-%s minus %s", ErrNegativeDuration, start, end, pause)
		}
		return 0, nil
	}
	return total, nil
}

// Format renders minutes as "H:MM" without zero-padding the hour.
func Format(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}

// Hours converts an "H:MM" duration into fractional hours. Malformed input is zero.
func Hours(duration string) float64 {
	minutes, err := ParseDuration(duration)
	if err != nil {
		return 0
	}
	return float64(minutes) / 60
}

func intervalMinutes(start, end string) int {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return 0
	}
	from, err := ParseClock(start)
	if err != nil {
		return 0
	}
	to, err := ParseClock(end)
	if err != nil {
		return 0
	}
	if to < from {
		to += minutesPerDay
	}
	return to - from
}

func splitHM(raw string) (int, int, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) != 2 || parts[0] == "" || len(parts[1]) != 2 {
		return 0, 0, ErrInvalidDuration
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return 0, 0, ErrInvalidDuration
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 {
		return 0, 0, ErrInvalidDuration
	}
	return h, m, nil
}
