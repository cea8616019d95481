package roster

import (
	"strings"
	"testing"
	"time"
)

const sampleHeader = "Staff full name,Clinic,Instance type,Role,Start date,Start time,End time,Status,Leave type"

func sampleCSV(rows ...string) string {
	return sampleHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestParseRetainsPublishedAndApprovedOnly(t *testing.T) {
	text := sampleCSV(
		"Alice Hart,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,",
		"Bob Lowe,Northside,Shift,Radiographers,2025-01-06,2025-01-06T13:00:00,2025-01-06T21:00:00,Approved,",
		"Cara Ng,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Draft,",
		"Dan Oduya,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Cancelled,",
	)

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Entries) != 2 {
		t.Fatalf("expected 2 retained entries, got %d", len(parsed.Entries))
	}
	for _, entry := range parsed.Entries {
		if entry.Status != "Published" && entry.Status != "Approved" {
			t.Fatalf("retained entry with status %q", entry.Status)
		}
	}
}

func TestParseDropsRowsWithoutStartDate(t *testing.T) {
	text := sampleCSV(
		"Alice Hart,Northside,Shift,Radiographers,,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,",
		"Bob Lowe,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,",
	)

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Entries) != 1 {
		t.Fatalf("expected the dateless row to be dropped, got %d entries", len(parsed.Entries))
	}
	if parsed.Entries[0].StaffName != "Bob Lowe" {
		t.Fatalf("wrong entry retained: %q", parsed.Entries[0].StaffName)
	}
}

func TestParseQuotedCommas(t *testing.T) {
	text := sampleCSV(
		`"Hart, Alice",Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,`,
	)

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(parsed.Entries))
	}
	if parsed.Entries[0].StaffName != "Hart, Alice" {
		t.Fatalf("quoted comma mishandled: %q", parsed.Entries[0].StaffName)
	}
}

func TestParseToleratesReorderedColumns(t *testing.T) {
	text := "Status,Staff full name,Start date,Clinic,Instance type,Role,Start time,End time,Leave type\n" +
		"Published,Alice Hart,2025-01-06,Northside,Shift,Radiographers,2025-01-06T09:00:00,2025-01-06T17:00:00,\n"

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(parsed.Entries))
	}
	entry := parsed.Entries[0]
	if entry.StaffName != "Alice Hart" || entry.Clinic != "Northside" || entry.StartTime != "9:00am" {
		t.Fatalf("field lookup broke under reordering: %+v", entry)
	}
}

func TestParseMissingHeaderDropsEveryRow(t *testing.T) {
	// A renamed date header reads "" for every row, so every row falls
	// to the date guard. That is the documented failure mode.
	text := "Staff full name,Clinic,Instance type,Role,Commencement,Start time,End time,Status,Leave type\n" +
		"Alice Hart,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,\n"

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Entries) != 0 {
		t.Fatalf("expected all rows dropped, got %d", len(parsed.Entries))
	}
}

func TestParseWeekBucketing(t *testing.T) {
	text := sampleCSV(
		"Alice Hart,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,",
		"Bob Lowe,Northside,Shift,Radiographers,2025-01-15,2025-01-15T09:00:00,2025-01-15T17:00:00,Published,",
		"Cara Ng,Westgate,Shift,Sonographers,2025-01-18,2025-01-18T08:00:00,2025-01-18T12:00:00,Approved,",
	)

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Weeks) != 2 {
		t.Fatalf("expected 2 distinct weeks, got %d", len(parsed.Weeks))
	}
	if !parsed.Weeks[0].Before(parsed.Weeks[1]) {
		t.Fatal("weeks must be sorted ascending")
	}

	// Each entry belongs to exactly one listed week and falls inside it.
	for _, entry := range parsed.Entries {
		week := WeekStart(entry.Date)
		found := false
		for _, listed := range parsed.Weeks {
			if listed.Equal(week) {
				found = true
			}
		}
		if !found {
			t.Fatalf("entry week %s missing from week list", week)
		}
		if entry.Date.Before(week) || !entry.Date.Before(week.AddDate(0, 0, 7)) {
			t.Fatalf("entry %s outside its week %s", entry.Date, week)
		}
	}
}

func TestParseClinicsSortedDistinct(t *testing.T) {
	text := sampleCSV(
		"Alice Hart,Westgate,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,",
		"Bob Lowe,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,",
		"Cara Ng,Northside,Shift,Radiographers,2025-01-07,2025-01-07T09:00:00,2025-01-07T17:00:00,Published,",
	)

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Clinics) != 2 || parsed.Clinics[0] != "Northside" || parsed.Clinics[1] != "Westgate" {
		t.Fatalf("unexpected clinic list: %v", parsed.Clinics)
	}
}

func TestParseLeaveRow(t *testing.T) {
	text := sampleCSV(
		"Alice Hart,Northside,Leave,No role,2025-01-06,,,Published,Personal (Sick/Carer's) Leave",
	)

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(parsed.Entries))
	}
	entry := parsed.Entries[0]
	if entry.Instance != InstanceLeave {
		t.Fatalf("expected leave instance, got %q", entry.Instance)
	}
	if entry.Role != RoleLeave {
		t.Fatalf("expected leave role, got %q", entry.Role)
	}
	if entry.LeaveType != "Personal/carer's leave" {
		t.Fatalf("leave type not normalized: %q", entry.LeaveType)
	}
	if entry.StartTime != "" {
		t.Fatalf("missing time must degrade to empty, got %q", entry.StartTime)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Parse("\n\n  \n"); err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestParseCRLFInput(t *testing.T) {
	text := strings.ReplaceAll(sampleCSV(
		"Alice Hart,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,",
	), "\n", "\r\n")

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(parsed.Entries) != 1 {
		t.Fatalf("CRLF input mishandled, got %d entries", len(parsed.Entries))
	}
	if parsed.Entries[0].Status != "Published" {
		t.Fatalf("trailing CR left on status: %q", parsed.Entries[0].Status)
	}
}

func TestParseDayIndexRemap(t *testing.T) {
	text := sampleCSV(
		"Alice Hart,Northside,Shift,Radiographers,2025-01-06,2025-01-06T09:00:00,2025-01-06T17:00:00,Published,",
		"Bob Lowe,Northside,Shift,Radiographers,2025-01-12,2025-01-12T09:00:00,2025-01-12T17:00:00,Published,",
	)

	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	monday := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	for _, entry := range parsed.Entries {
		if entry.Date.Equal(monday) && entry.Day != 0 {
			t.Fatalf("monday entry has day %d", entry.Day)
		}
		if !entry.Date.Equal(monday) && entry.Day != 6 {
			t.Fatalf("sunday entry has day %d", entry.Day)
		}
	}
}
