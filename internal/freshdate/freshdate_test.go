package freshdate

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize_DayOffsets(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "zero offset is today", input: "0", want: "2025-06-15"},
		{name: "positive offset", input: "30", want: "2025-07-15"},
		{name: "explicit plus sign", input: "+7", want: "2025-06-22"},
		{name: "negative offset", input: "-5", want: "2025-06-10"},
		{name: "offset crossing year boundary", input: "200", want: "2026-01-01"},
		{name: "surrounding whitespace trimmed", input: "  14  ", want: "2025-06-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalize_Formats(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "iso", input: "2025-12-31", want: "2025-12-31"},
		{name: "dotted", input: "31.12.2025", want: "2025-12-31"},
		{name: "slashed day first", input: "31/12/2025", want: "2025-12-31"},
		{name: "dashed day first", input: "31-12-2025", want: "2025-12-31"},
		{name: "slashed year first", input: "2025/12/31", want: "2025-12-31"},
		{name: "dotted two-digit year", input: "31.12.25", want: "2025-12-31"},
		{name: "slashed two-digit year", input: "31/12/25", want: "2025-12-31"},
		{name: "leap day 2024", input: "29.02.2024", want: "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalize_Rejects(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "nonsense", input: "next tuesday"},
		{name: "leap day in non-leap year", input: "29.02.2023"},
		{name: "day out of range", input: "32.01.2025"},
		{name: "month out of range", input: "15.13.2025"},
		{name: "unpadded day does not round-trip", input: "5.1.2025"},
		{name: "month first ambiguity rejected", input: "12/31/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.input, now); !errors.Is(err, ErrNotParseable) {
				t.Fatalf("want ErrNotParseable, got %v", err)
			}
		})
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	for _, day := range []time.Time{
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
	} {
		rendered := day.Format("02.01.2006")
		got, err := Normalize(rendered, now)
		if err != nil {
			t.Fatalf("normalize %q: %v", rendered, err)
		}
		if want := day.Format(Canonical); got != want {
			t.Fatalf("normalize %q: want %q, got %q", rendered, want, got)
		}
	}
}
