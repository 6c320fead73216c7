package model

import (
	"testing"
	"time"
)

func TestIsTimeOfDay(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"09:60", false},
		{"9:00", false},
		{"09-00", false},
		{"", false},
		{"09:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsTimeOfDay(tt.input); got != tt.want {
				t.Errorf("IsTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-08-05", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"2024-8-5", false},
		{"not-a-date", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsDate(tt.input); got != tt.want {
				t.Errorf("IsDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"01:00", 60, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"25:00", 0, true},
		{"bogus", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := MinutesOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MinutesOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("MinutesOfDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2024-08-05", "09:30", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 8, 5, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateTime = %v, want %v", got, want)
	}

	if _, err := CombineDateTime("2024-08-05", "25:00", time.UTC); err == nil {
		t.Errorf("expected error for invalid time of day")
	}
}

func TestBookingStartsAt(t *testing.T) {
	b := &Booking{Date: "2024-08-05", StartTime: "14:00"}
	got, err := b.StartsAt(time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 8, 5, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartsAt = %v, want %v", got, want)
	}
}
