package alertwindow

import (
	"errors"
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 10, hour, minute, 30, 0, time.UTC)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{in: "08:00", want: ClockTime{Hour: 8}},
		{in: "23:59", want: ClockTime{Hour: 23, Minute: 59}},
		{in: " 7:05 ", want: ClockTime{Hour: 7, Minute: 5}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12", wantErr: true},
		{in: "aa:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidClock) {
					t.Fatalf("ParseClock(%q) = %v, %v, want ErrInvalidClock", tt.in, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWindowContains(t *testing.T) {
	day, err := Parse("08:00", "22:00")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	overnight, err := Parse("22:00", "07:00")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	midnight, err := Parse("08:00", "00:00")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		name string
		w    Window
		now  time.Time
		want bool
	}{
		{name: "day window morning", w: day, now: at(9, 0), want: true},
		{name: "day window before start", w: day, now: at(7, 59), want: false},
		{name: "day window after end", w: day, now: at(22, 0), want: false},
		{name: "overnight late evening", w: overnight, now: at(23, 0), want: true},
		{name: "overnight midday", w: overnight, now: at(12, 0), want: false},
		// The window is anchored on the current day, so the early-morning
		// part of yesterday's window is not covered.
		{name: "overnight early morning", w: overnight, now: at(3, 0), want: false},
		{name: "until midnight evening", w: midnight, now: at(23, 30), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Contains(tt.now); got != tt.want {
				t.Errorf("%s.Contains(%s) = %t, want %t", tt.w, tt.now.Format(time.Kitchen), got, tt.want)
			}
		})
	}
}
