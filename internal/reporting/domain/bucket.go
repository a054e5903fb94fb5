package domain

import (
	"strings"
	"time"
)

// Bucket is a calendar-aligned grouping key derivation.
type Bucket string

const (
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// ParseBucket normalizes a caller-supplied bucket name.
func ParseBucket(raw string) (Bucket, error) {
	switch Bucket(strings.ToLower(strings.TrimSpace(raw))) {
	case BucketWeek:
		return BucketWeek, nil
	case BucketMonth:
		return BucketMonth, nil
	default:
		return "", ErrInvalidBucket
	}
}

// WeekStart floors t to the Monday of its ISO week, discarding time of day.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday counts Sunday=0; shift so Monday=0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthStart floors t to the first day of its month, discarding time of day.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
