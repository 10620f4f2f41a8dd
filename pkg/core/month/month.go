// Package month provides helpers for the YYYYMM month keys and YYYYMMDD
// date strings used throughout the scheduler. Dates are kept as strings at
// the storage boundary so that range queries stay lexicographic.
package month

import (
	"fmt"
	"time"
)

const (
	// KeyLayout is the month key format (e.g. "202603").
	KeyLayout = "200601"

	// DateLayout is the event date format (e.g. "20260315").
	DateLayout = "20060102"
)

// ParseKey validates a YYYYMM month key and returns the first day of that month.
func ParseKey(key string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q (want YYYYMM): %w", key, err)
	}
	return t, nil
}

// ParseDate validates a YYYYMMDD date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYYMMDD): %w", date, err)
	}
	return t, nil
}

// Bounds returns the inclusive first and last YYYYMMDD dates of the month.
func Bounds(key string) (string, string, error) {
	first, err := ParseKey(key)
	if err != nil {
		return "", "", err
	}
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout), nil
}

// Prev returns the month key immediately before the given one.
func Prev(key string) (string, error) {
	first, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return first.AddDate(0, -1, 0).Format(KeyLayout), nil
}

// KeyOf returns the month key a YYYYMMDD date belongs to.
func KeyOf(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Format(KeyLayout), nil
}

// DayDiff returns the number of calendar days between two parsed dates
// (b minus a). Both arguments are truncated to midnight before comparing.
func DayDiff(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Days returns every date of the month in ascending order.
func Days(key string) ([]string, error) {
	first, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	end := first.AddDate(0, 1, 0)
	var days []string
	for d := first; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days, nil
}

// FirstWeekday returns the date of the first occurrence of the given weekday
// in the month.
func FirstWeekday(key string, weekday time.Weekday) (string, error) {
	first, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	d := first
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(DateLayout), nil
}
