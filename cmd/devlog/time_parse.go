// Package main provides the entry point for the devlog CLI.
package main

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// durationRegex accepts relative ages: hours, days, weeks, months.
var durationRegex = regexp.MustCompile(`^(\d+)([hdwm])$`)

// parseSinceValue turns a --since argument into a cutoff. Relative forms
// (24h, 7d, 2w, 1m) count back from now; absolute dates are taken as is.
func parseSinceValue(value string) (time.Time, error) {
	t, err := parseTimeValue(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since value %q; use duration (24h, 7d, 2w) or date (2026-08-01)", value)
	}
	return t, nil
}

// parseUntilValue is the upper-bound counterpart. A bare date stretches
// to the end of that day, so --until 2026-08-15 includes the 15th.
func parseUntilValue(value string) (time.Time, error) {
	cutoff, err := parseTimeValue(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --until value %q; use duration (24h, 7d, 2w) or date (2026-08-15)", value)
	}
	if len(value) == 10 && value[4] == '-' && value[7] == '-' {
		cutoff = cutoff.Add(24*time.Hour - time.Second)
	}
	return cutoff, nil
}

// parseTimeValue handles the shared duration-or-date grammar.
func parseTimeValue(value string) (time.Time, error) {
	if matches := durationRegex.FindStringSubmatch(value); len(matches) == 3 {
		return parseDuration(matches[1], matches[2])
	}

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid time value: %s", value)
}

// parseDuration subtracts n units from the current time.
func parseDuration(numStr, unit string) (time.Time, error) {
	num, err := strconv.Atoi(numStr)
	if err != nil || num <= 0 {
		return time.Time{}, fmt.Errorf("invalid duration number: %s", numStr)
	}

	now := time.Now().UTC()

	switch unit {
	case "h":
		return now.Add(-time.Duration(num) * time.Hour), nil
	case "w":
		num *= 7
		fallthrough
	case "d":
		return now.AddDate(0, 0, -num), nil
	case "m":
		return now.AddDate(0, -num, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
