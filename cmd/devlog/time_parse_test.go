package main

import (
	"testing"
	"time"
)

func TestParseSinceValue(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "hours", value: "24h", want: now.Add(-24 * time.Hour)},
		{name: "days", value: "7d", want: now.AddDate(0, 0, -7)},
		{name: "weeks", value: "2w", want: now.AddDate(0, 0, -14)},
		{name: "months", value: "1m", want: now.AddDate(0, -1, 0)},
		{name: "date", value: "2026-08-01", want: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2026-08-01T09:30:00Z", want: time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)},
		{name: "zero duration", value: "0d", wantErr: true},
		{name: "unknown unit", value: "3y", wantErr: true},
		{name: "garbage", value: "last week", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSinceValue(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSinceValue(%q) expected error, got %v", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSinceValue(%q) unexpected error: %v", tt.value, err)
			}
			// Duration-based values depend on the clock; allow a window.
			diff := got.Sub(tt.want)
			if diff < -time.Minute || diff > time.Minute {
				t.Errorf("parseSinceValue(%q) = %v, want ~%v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseUntilValue_DateExtendsToEndOfDay(t *testing.T) {
	got, err := parseUntilValue("2026-08-15")
	if err != nil {
		t.Fatalf("parseUntilValue() unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 15, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseUntilValue(2026-08-15) = %v, want %v", got, want)
	}
}

func TestParseUntilValue_TimestampUnchanged(t *testing.T) {
	got, err := parseUntilValue("2026-08-15T12:00:00Z")
	if err != nil {
		t.Fatalf("parseUntilValue() unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseUntilValue() = %v, want %v", got, want)
	}
}

func TestParseUntilValue_Invalid(t *testing.T) {
	if _, err := parseUntilValue("soon"); err == nil {
		t.Fatal("parseUntilValue(soon) expected error")
	}
}
