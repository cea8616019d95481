package roster

import "time"

type InstanceType string

const (
	InstanceShift InstanceType = "Shift"
	InstanceLeave InstanceType = "Leave"
)

// Entry is one shift or leave instance from the scheduling export.
// Entries are immutable once parsed and live only for the duration of
// a single conversion.
type Entry struct {
	StaffName string
	Clinic    string
	Instance  InstanceType
	Role      string
	Date      time.Time
	StartTime string
	EndTime   string
	Status    string
	LeaveType string
	Day       int // 0=Monday .. 6=Sunday
}

// Parsed is the result of reading a full export: the retained entries
// plus the distinct Monday week starts and clinic names seen.
type Parsed struct {
	Entries []Entry
	Weeks   []time.Time
	Clinics []string
}

// WeekStart returns the Monday at midnight of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -DayIndex(day))
}

// DayIndex remaps time.Weekday (Sunday=0) so that Monday=0 .. Sunday=6.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
