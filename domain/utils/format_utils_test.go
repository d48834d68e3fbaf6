package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFormatShortNotation(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		expected string
	}{
		{name: "zero", value: 0, expected: "0"},
		{name: "small positive", value: 999, expected: "999"},
		{name: "exactly 1k", value: 1000, expected: "1.0k"},
		{name: "9.9k", value: 9900, expected: "9.9k"},
		{name: "15k", value: 15000, expected: "15k"},
		{name: "1.5M", value: 1_500_000, expected: "1.50M"},
		{name: "2B", value: 2_000_000_000, expected: "2.00B"},
		{name: "negative", value: -2500, expected: "-2.5k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatShortNotation(tt.value))
		})
	}
}

func TestFormatCooldown(t *testing.T) {
	const day = 24 * time.Hour

	tests := []struct {
		name     string
		wait     time.Duration
		expected string
	}{
		{name: "zero", wait: 0, expected: "0 minutes"},
		{name: "under a minute", wait: 59 * time.Second, expected: "0 minutes"},
		{name: "negative", wait: -time.Hour, expected: "0 minutes"},
		{name: "one minute", wait: time.Minute, expected: "1 minute"},
		{name: "minutes", wait: 45 * time.Minute, expected: "45 minutes"},
		{name: "one hour", wait: time.Hour, expected: "1 hour"},
		{name: "hours and minutes", wait: 2*time.Hour + 5*time.Minute, expected: "2 hours and 5 minutes"},
		{name: "two largest units", wait: day + 3*time.Hour + 20*time.Minute, expected: "1 day and 3 hours"},
		{name: "skips zero units", wait: day + 20*time.Minute, expected: "1 day and 20 minutes"},
		{name: "days only", wait: 3 * day, expected: "3 days"},
		{name: "month", wait: 30*day + 2*day + time.Hour, expected: "1 month and 2 days"},
		{name: "year", wait: 365 * day, expected: "1 year"},
		{name: "everything", wait: 365*day + 2*30*day + day + 4*time.Hour + 10*time.Minute, expected: "1 year and 2 months"},
		{name: "year month day hour", wait: 365*day + 30*day + day + time.Hour, expected: "1 year and 1 month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCooldown(tt.wait))
		})
	}
}

func TestFormatCooldown_Properties(t *testing.T) {
	units := []string{"year", "month", "day", "hour", "minute"}

	rapid.Check(t, func(rt *rapid.T) {
		seconds := rapid.Int64Range(0, 5*secondsPerYear).Draw(rt, "seconds")
		out := FormatCooldown(time.Duration(seconds) * time.Second)

		if out == "" {
			rt.Fatalf("empty output for %ds", seconds)
		}
		if seconds >= secondsPerDay {
			first := strings.SplitN(out, " and ", 2)[0]
			if strings.Contains(first, "hour") || strings.Contains(first, "minute") {
				rt.Fatalf("leading unit smaller than a day for %ds: %q", seconds, out)
			}
		}
		if strings.Count(out, ",") > 0 {
			rt.Fatalf("more than two units in %q", out)
		}
		if strings.Count(out, " and ") > 1 {
			rt.Fatalf("more than one conjunction in %q", out)
		}
		if strings.HasPrefix(out, "1 ") {
			for _, u := range units {
				if strings.HasPrefix(out, "1 "+u+"s") {
					rt.Fatalf("plural after 1 in %q", out)
				}
			}
		}
	})
}
