// Package readtime estimates how long an article body takes to read and
// formats cumulative per-profile reading totals.
package readtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WordsPerMinute is the assumed reading rate.
const WordsPerMinute = 275

const (
	lessThanAMinute = "Less than a minute"
	aboutOneMinute  = "About 1 minute"
)

// Estimate returns the display string for the estimated reading time of body.
func Estimate(body string) string {
	words := countWords(body)
	minutes := float64(words) / WordsPerMinute

	switch {
	case minutes < 1:
		return lessThanAMinute
	case minutes < 2:
		return aboutOneMinute
	default:
		return fmt.Sprintf("%d minutes", int(math.Round(minutes)))
	}
}

// ParseMinutes converts a reading-time display string back to whole minutes.
// "Less than a minute" parses as 1, not 0, and "About 1 minute" as 2 — the
// aggregate reading stats depend on these exact values.
func ParseMinutes(display string) int {
	switch display {
	case lessThanAMinute:
		return 1
	case aboutOneMinute:
		return 2
	}
	for _, field := range strings.Fields(display) {
		if n, err := strconv.Atoi(field); err == nil {
			return n
		}
	}
	return 0
}

// FormatTotal renders a cumulative minute count as a reading-stats string.
func FormatTotal(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func countWords(body string) int {
	total := 0
	for _, line := range strings.Split(body, "\n") {
		total += len(strings.Fields(line))
	}
	return total
}
