package roster

import (
	"fmt"
	"strings"
	"time"
)

// RoleLeave is the display role assigned to rows the scheduling system
// exports with no real role ("No role"). Leave instances are rendered
// as their own row per clinic, never as a role row.
const RoleLeave = "Leave"

// roleKeywords is matched in order; the first keyword found as a
// case-insensitive substring of the raw role wins. "mri" must come
// before the plain radiographer keyword.
var roleKeywords = []struct {
	keyword string
	label   string
}{
	{"mri radiographer", "MRI Radiographer"},
	{"radiographer", "Radiographer"},
	{"sonographer", "Sonographer"},
	{"radiologist", "Radiologist"},
	{"nurse", "Nurse"},
	{"reception", "Receptionist"},
	{"admin", "Administration"},
	{"no role", RoleLeave},
}

// NormalizeRole maps a free-text role from the export to its canonical
// display label. Unrecognised roles pass through unchanged.
func NormalizeRole(raw string) string {
	lowered := strings.ToLower(raw)
	for _, entry := range roleKeywords {
		if strings.Contains(lowered, entry.keyword) {
			return entry.label
		}
	}
	return raw
}

// RoleOrder is the display priority of role rows within a clinic
// block. Roles not listed sort after all listed roles in the order
// they were first seen.
func RoleOrder() []string {
	return []string{
		"Radiographer",
		"MRI Radiographer",
		"Sonographer",
		"Radiologist",
		"Nurse",
		"Receptionist",
		"Administration",
	}
}

var leaveTypeLabels = map[string]string{
	"Personal (Sick/Carer's) Leave": "Personal/carer's leave",
	"Annual Leave":                  "Annual leave",
	"Long Service Leave":            "Long service leave",
	"Leave Without Pay":             "Leave without pay",
	"Parental Leave":                "Parental leave",
	"Public Holiday":                "Public holiday",
	"Professional Development":      "Professional development",
}

// NormalizeLeaveType maps known leave-type labels to their display
// form; unmapped input passes through unchanged.
func NormalizeLeaveType(raw string) string {
	if label, ok := leaveTypeLabels[raw]; ok {
		return label
	}
	return raw
}

var clockLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2/1/2006 15:04",
	"02/01/2006 15:04:05",
}

// ParseClock extracts the time of day from a datetime string and
// renders it on a 12-hour clock ("8:05am", "12:30pm"). Unparseable
// input yields "" rather than an error; a missing time degrades the
// cell, it does not drop the row.
func ParseClock(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range clockLayouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		hour := parsed.Hour()
		suffix := "am"
		if hour >= 12 {
			suffix = "pm"
		}
		display := hour % 12
		if display == 0 {
			display = 12
		}
		return fmt.Sprintf("%d:%02d%s", display, parsed.Minute(), suffix)
	}
	return ""
}

// clockSortLast sorts empty or unparseable display times after every
// real time of day.
const clockSortLast = 24 * 60

// ClockSortKey converts a ParseClock result back to minutes since
// midnight for ordering occupants within a day cell.
func ClockSortKey(display string) int {
	display = strings.TrimSpace(strings.ToLower(display))
	if len(display) < 3 {
		return clockSortLast
	}
	suffix := display[len(display)-2:]
	if suffix != "am" && suffix != "pm" {
		return clockSortLast
	}
	parts := strings.SplitN(display[:len(display)-2], ":", 2)
	if len(parts) != 2 {
		return clockSortLast
	}
	var hour, minute int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return clockSortLast
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &minute); err != nil {
		return clockSortLast
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return clockSortLast
	}
	hour = hour % 12
	if suffix == "pm" {
		hour += 12
	}
	return hour*60 + minute
}
