package utils

import (
	"fmt"
	"time"
)

const (
	secondsPerYear  = 31_536_000
	secondsPerMonth = 2_592_000
	secondsPerDay   = 86_400
	secondsPerHour  = 3_600
)

// FormatShortNotation formats a number using short notation (e.g., 50k instead of 50000)
func FormatShortNotation(value int64) string {
	absValue := value
	sign := ""
	if value < 0 {
		absValue = -value
		sign = "-"
	}

	switch {
	case absValue >= 1_000_000_000:
		return fmt.Sprintf("%s%.2fB", sign, float64(absValue)/1_000_000_000)
	case absValue >= 1_000_000:
		return fmt.Sprintf("%s%.2fM", sign, float64(absValue)/1_000_000)
	case absValue >= 10_000:
		return fmt.Sprintf("%s%dk", sign, absValue/1_000)
	case absValue >= 1_000:
		return fmt.Sprintf("%s%.1fk", sign, float64(absValue)/1_000)
	default:
		return fmt.Sprintf("%s%d", sign, absValue)
	}
}

// FormatCooldown renders a remaining wait using its two largest non-zero units,
// such as "1 day and 3 hours".
func FormatCooldown(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}

	units := []struct {
		name    string
		seconds int64
	}{
		{"year", secondsPerYear},
		{"month", secondsPerMonth},
		{"day", secondsPerDay},
		{"hour", secondsPerHour},
		{"minute", 60},
	}

	var parts []string
	for _, u := range units {
		n := seconds / u.seconds
		seconds %= u.seconds
		if n > 0 {
			parts = append(parts, pluralize(n, u.name))
		}
		if len(parts) == 2 {
			break
		}
	}

	switch len(parts) {
	case 0:
		return "0 minutes"
	case 1:
		return parts[0]
	default:
		return parts[0] + " and " + parts[1]
	}
}

func pluralize(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
