package roster

import (
	"testing"
	"time"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plural radiographers", raw: "Radiographers", want: "Radiographer"},
		{name: "mri wins over plain radiographer", raw: "MRI Radiographer - Weekend", want: "MRI Radiographer"},
		{name: "sonographers", raw: "Sonographers (General)", want: "Sonographer"},
		{name: "reception", raw: "Front Reception", want: "Receptionist"},
		{name: "no role maps to leave", raw: "No role", want: "Leave"},
		{name: "case insensitive", raw: "SONOGRAPHERS", want: "Sonographer"},
		{name: "unknown passes through", raw: "Courier", want: "Courier"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeRole(tc.raw); got != tc.want {
				t.Fatalf("NormalizeRole(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeLeaveType(t *testing.T) {
	if got := NormalizeLeaveType("Personal (Sick/Carer's) Leave"); got != "Personal/carer's leave" {
		t.Fatalf("unexpected mapping: %q", got)
	}
	if got := NormalizeLeaveType("Annual Leave"); got != "Annual leave" {
		t.Fatalf("unexpected mapping: %q", got)
	}
	if got := NormalizeLeaveType("Jury Duty"); got != "Jury Duty" {
		t.Fatalf("unmapped input must pass through, got %q", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "morning", raw: "2025-01-06T08:00:00", want: "8:00am"},
		{name: "afternoon", raw: "2025-01-06T17:30:00", want: "5:30pm"},
		{name: "midnight", raw: "2025-01-06T00:05:00", want: "12:05am"},
		{name: "noon", raw: "2025-01-06T12:00:00", want: "12:00pm"},
		{name: "space separated", raw: "2025-01-06 09:15:00", want: "9:15am"},
		{name: "empty", raw: "", want: ""},
		{name: "garbage", raw: "not a time", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseClock(tc.raw); got != tc.want {
				t.Fatalf("ParseClock(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestClockSortKey(t *testing.T) {
	if ClockSortKey("12:00am") != 0 {
		t.Fatal("midnight should sort first")
	}
	if ClockSortKey("12:30pm") != 12*60+30 {
		t.Fatal("unexpected key for half past noon")
	}
	if got := ClockSortKey("9:00am"); got != 9*60 {
		t.Fatalf("unexpected key for 9:00am: %d", got)
	}
	if ClockSortKey("") != clockSortLast {
		t.Fatal("empty display time must sort last")
	}
	if ClockSortKey("banana") != clockSortLast {
		t.Fatal("unparseable display time must sort last")
	}
}

func TestClockRoundTripOrdering(t *testing.T) {
	// Chronological input order must survive the display round trip.
	datetimes := []string{
		"2025-01-06T06:45:00",
		"2025-01-06T08:00:00",
		"2025-01-06T11:59:00",
		"2025-01-06T12:00:00",
		"2025-01-06T13:15:00",
		"2025-01-06T21:30:00",
	}
	previous := -1
	for _, raw := range datetimes {
		key := ClockSortKey(ParseClock(raw))
		if key < previous {
			t.Fatalf("ordering broken at %s: key %d < previous %d", raw, key, previous)
		}
		previous = key
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to its monday",
			date: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday maps to itself",
			date: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the preceding monday",
			date: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStart(tc.date); !got.Equal(tc.want) {
				t.Fatalf("WeekStart(%s) = %s, want %s", tc.date, got, tc.want)
			}
		})
	}
}

func TestDayIndex(t *testing.T) {
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		if got := DayIndex(monday.AddDate(0, 0, offset)); got != offset {
			t.Fatalf("DayIndex(monday+%d) = %d", offset, got)
		}
	}
}
