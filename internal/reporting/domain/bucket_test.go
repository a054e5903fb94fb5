package domain

import (
	"errors"
	"testing"
	"time"
)

func TestWeekStartFloorsToMonday(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	got := WeekStart(time.Date(2024, 3, 6, 14, 30, 45, 0, time.UTC))
	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWeekStartMondayIsFixpoint(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := WeekStart(monday); !got.Equal(monday) {
		t.Fatalf("expected %v, got %v", monday, got)
	}
}

func TestWeekStartSundayBelongsToPrecedingMonday(t *testing.T) {
	// 2024-03-10 is a Sunday; its week started on the 4th.
	got := WeekStart(time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC))
	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWeekStartCrossesMonthBoundary(t *testing.T) {
	// 2024-03-01 is a Friday; its Monday is 2024-02-26.
	got := WeekStart(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC))
	want := time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMonthStartDiscardsDayAndTime(t *testing.T) {
	got := MonthStart(time.Date(2024, 3, 31, 18, 45, 12, 0, time.UTC))
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseBucketNormalizesCase(t *testing.T) {
	bucket, err := ParseBucket("  Month ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bucket != BucketMonth {
		t.Fatalf("expected month, got %s", bucket)
	}
}

func TestParseBucketRejectsUnknown(t *testing.T) {
	if _, err := ParseBucket("quarter"); !errors.Is(err, ErrInvalidBucket) {
		t.Fatalf("expected ErrInvalidBucket, got %v", err)
	}
}

func TestParseTimestampAcceptedLayouts(t *testing.T) {
	for _, raw := range []string{
		"2024-03-04T10:30:00Z",
		"2024-03-04 10:30:00",
		"2024-03-04",
	} {
		parsed, err := ParseTimestamp("order_date", raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if parsed.Year() != 2024 || parsed.Month() != time.March || parsed.Day() != 4 {
			t.Fatalf("unexpected date for %q: %v", raw, parsed)
		}
	}
}

func TestParseTimestampRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "04/03/2024", "not-a-date"} {
		_, err := ParseTimestamp("registration_date", raw)
		var formatErr *DataFormatError
		if !errors.As(err, &formatErr) {
			t.Fatalf("expected DataFormatError for %q, got %v", raw, err)
		}
		if formatErr.Field != "registration_date" {
			t.Fatalf("expected field registration_date, got %s", formatErr.Field)
		}
	}
}
