package roster

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Column headers expected in the scheduling export. Lookup is by
// header name so column reordering is harmless; a renamed header means
// every row reads "" for that field and falls to the date guard below.
const (
	headerStaffName = "Staff full name"
	headerClinic    = "Clinic"
	headerInstance  = "Instance type"
	headerRole      = "Role"
	headerStartDate = "Start date"
	headerStartTime = "Start time"
	headerEndTime   = "End time"
	headerStatus    = "Status"
	headerLeaveType = "Leave type"
)

var ErrEmptyFile = errors.New("csv file has no rows")

// acceptedStatuses: anything else (Draft, Cancelled, ...) is silently
// dropped, by policy. The converter is best-effort over dirty exports.
var acceptedStatuses = map[string]bool{
	"Published": true,
	"Approved":  true,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2/1/2006",
	"02/01/2006",
}

// Parse reads a full scheduling export. Rows without a parseable start
// date or with a status outside the accepted set are dropped without
// error.
func Parse(text string) (*Parsed, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrEmptyFile
	}

	columns := map[string]int{}
	for i, name := range splitRecord(lines[0]) {
		columns[strings.TrimSpace(name)] = i
	}

	parsed := &Parsed{}
	weekSet := map[time.Time]bool{}
	clinicSet := map[string]bool{}

	for _, line := range lines[1:] {
		fields := splitRecord(line)
		date, ok := parseDate(field(fields, columns, headerStartDate))
		if !ok {
			continue
		}
		if !acceptedStatuses[field(fields, columns, headerStatus)] {
			continue
		}

		instance := InstanceShift
		if strings.EqualFold(field(fields, columns, headerInstance), "Leave") {
			instance = InstanceLeave
		}

		entry := Entry{
			StaffName: field(fields, columns, headerStaffName),
			Clinic:    field(fields, columns, headerClinic),
			Instance:  instance,
			Role:      NormalizeRole(field(fields, columns, headerRole)),
			Date:      date,
			StartTime: ParseClock(field(fields, columns, headerStartTime)),
			EndTime:   ParseClock(field(fields, columns, headerEndTime)),
			Status:    field(fields, columns, headerStatus),
			LeaveType: NormalizeLeaveType(field(fields, columns, headerLeaveType)),
			Day:       DayIndex(date),
		}
		parsed.Entries = append(parsed.Entries, entry)
		weekSet[WeekStart(date)] = true
		if entry.Clinic != "" {
			clinicSet[entry.Clinic] = true
		}
	}

	for week := range weekSet {
		parsed.Weeks = append(parsed.Weeks, week)
	}
	sort.Slice(parsed.Weeks, func(i, j int) bool { return parsed.Weeks[i].Before(parsed.Weeks[j]) })

	for clinic := range clinicSet {
		parsed.Clinics = append(parsed.Clinics, clinic)
	}
	sort.Strings(parsed.Clinics)

	return parsed, nil
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitRecord splits one CSV line respecting double-quoted fields with
// embedded commas. Quotes toggle state and are not emitted; escaped
// quotes inside quoted fields are not interpreted, matching the
// scheduling system's export.
func splitRecord(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// field returns "" for a missing column or a row too short to hold it.
func field(fields []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
