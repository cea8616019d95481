package roster

import (
	"strings"
	"testing"
	"time"
)

var testWeek = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func shift(name, clinic, role string, day int, start, end string) Entry {
	date := testWeek.AddDate(0, 0, day)
	return Entry{
		StaffName: name,
		Clinic:    clinic,
		Instance:  InstanceShift,
		Role:      role,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    "Published",
		Day:       day,
	}
}

func leave(name, clinic, leaveType string, day int) Entry {
	date := testWeek.AddDate(0, 0, day)
	return Entry{
		StaffName: name,
		Clinic:    clinic,
		Instance:  InstanceLeave,
		Role:      RoleLeave,
		Date:      date,
		Status:    "Published",
		LeaveType: leaveType,
		Day:       day,
	}
}

func TestGridRowWidth(t *testing.T) {
	entries := []Entry{
		shift("Alice Hart", "Northside", "Radiographer", 0, "9:00am", "5:00pm"),
		leave("Bob Lowe", "Northside", "Annual leave", 2),
	}
	grid := BuildWeekGrid(entries, testWeek)
	if len(grid) == 0 {
		t.Fatal("expected non-empty grid")
	}
	for i, row := range grid {
		if len(row) != GridColumns {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), GridColumns)
		}
	}
}

func TestGridHeaderRows(t *testing.T) {
	grid := BuildWeekGrid([]Entry{shift("Alice Hart", "Northside", "Radiographer", 0, "9:00am", "5:00pm")}, testWeek)

	if grid[0][0].Kind != CellBrandHeader || grid[0][0].Value == "" {
		t.Fatal("row 0 must be the brand banner")
	}
	if grid[1][1].Value != "Mon 6 Jan" {
		t.Fatalf("first day header = %q", grid[1][1].Value)
	}
	if grid[1][6].Value != "Sat 11 Jan" {
		t.Fatalf("last day header = %q, Sunday must not appear", grid[1][6].Value)
	}
}

func TestGridClinicsAlphabetical(t *testing.T) {
	entries := []Entry{
		shift("Alice Hart", "Westgate", "Radiographer", 0, "9:00am", "5:00pm"),
		shift("Bob Lowe", "Northside", "Radiographer", 0, "9:00am", "5:00pm"),
	}
	grid := BuildWeekGrid(entries, testWeek)

	var banners []string
	for _, row := range grid {
		if row[0].Kind == CellClinicBanner {
			banners = append(banners, row[0].Value)
		}
	}
	if len(banners) != 2 || banners[0] != "Northside" || banners[1] != "Westgate" {
		t.Fatalf("clinic order wrong: %v", banners)
	}
}

func TestGridRoleOrdering(t *testing.T) {
	entries := []Entry{
		shift("Cara Ng", "Northside", "Sonographer", 0, "8:00am", "4:00pm"),
		shift("Alice Hart", "Northside", "Radiographer", 0, "9:00am", "5:00pm"),
		shift("Dan Oduya", "Northside", "Courier", 0, "7:00am", "3:00pm"),
	}
	grid := BuildWeekGrid(entries, testWeek)

	var roles []string
	for _, row := range grid {
		if row[0].Kind == CellRoleLabel {
			roles = append(roles, row[0].Value)
		}
	}
	want := []string{"Radiographer", "Sonographer", "Courier"}
	if len(roles) != len(want) {
		t.Fatalf("role rows = %v", roles)
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Fatalf("role order %v, want %v", roles, want)
		}
	}
}

func TestGridStackedOccupantsSortedByStart(t *testing.T) {
	entries := []Entry{
		shift("Bob Lowe", "Northside", "Radiographer", 0, "1:00pm", "9:00pm"),
		shift("Alice Hart", "Northside", "Radiographer", 0, "9:00am", "5:00pm"),
	}
	grid := BuildWeekGrid(entries, testWeek)

	var cell Cell
	for _, row := range grid {
		if row[0].Kind == CellRoleLabel && row[0].Value == "Radiographer" {
			cell = row[1]
		}
	}
	want := "9:00am-5:00pm\nAlice Hart" + OccupantSeparator + "1:00pm-9:00pm\nBob Lowe"
	if cell.Value != want {
		t.Fatalf("stacked cell = %q, want %q", cell.Value, want)
	}
	if OccupantCount(cell.Value) != 2 {
		t.Fatalf("occupant count = %d", OccupantCount(cell.Value))
	}
}

func TestGridLeaveRowOmittedWhenNoLeave(t *testing.T) {
	entries := []Entry{
		shift("Alice Hart", "Northside", "Radiographer", 0, "9:00am", "5:00pm"),
	}
	grid := BuildWeekGrid(entries, testWeek)

	for _, row := range grid {
		if row[0].Kind == CellRoleLabel && row[0].Value == RoleLeave {
			t.Fatal("leave row emitted for a clinic with no leave")
		}
	}
}

func TestGridLeaveRowContents(t *testing.T) {
	entries := []Entry{
		shift("Alice Hart", "Northside", "Radiographer", 0, "9:00am", "5:00pm"),
		leave("Bob Lowe", "Northside", "Annual leave", 2),
	}
	grid := BuildWeekGrid(entries, testWeek)

	var leaveRow []Cell
	for _, row := range grid {
		if row[0].Kind == CellRoleLabel && row[0].Value == RoleLeave {
			leaveRow = row
		}
	}
	if leaveRow == nil {
		t.Fatal("expected a leave row")
	}
	if leaveRow[3].Value != "Annual leave\nBob Lowe" || leaveRow[3].Kind != CellLeave {
		t.Fatalf("leave cell = %+v", leaveRow[3])
	}
	if leaveRow[1].Kind != CellEmpty {
		t.Fatal("days without leave must render as empty cells")
	}
}

func TestGridExcludesOtherWeeksAndSunday(t *testing.T) {
	nextWeek := testWeek.AddDate(0, 0, 7)
	entries := []Entry{
		shift("Alice Hart", "Northside", "Radiographer", 0, "9:00am", "5:00pm"),
		{
			StaffName: "Elsewhere Clinic Shift",
			Clinic:    "Southbank",
			Instance:  InstanceShift,
			Role:      "Radiographer",
			Date:      nextWeek,
			StartTime: "9:00am",
			EndTime:   "5:00pm",
			Day:       0,
		},
		shift("Sunday Worker", "Northside", "Radiographer", 6, "9:00am", "5:00pm"),
	}
	grid := BuildWeekGrid(entries, testWeek)

	joined := ""
	for _, row := range grid {
		for _, cell := range row {
			joined += cell.Value + "|"
		}
	}
	if strings.Contains(joined, "Southbank") {
		t.Fatal("clinic with no entries in the selected week must not appear")
	}
	if strings.Contains(joined, "Sunday Worker") {
		t.Fatal("sunday entries must not render")
	}
}

func TestGridSameInputSameOutput(t *testing.T) {
	entries := []Entry{
		shift("Alice Hart", "Northside", "Radiographer", 0, "9:00am", "5:00pm"),
		shift("Bob Lowe", "Northside", "Radiographer", 0, "1:00pm", "9:00pm"),
		leave("Cara Ng", "Westgate", "Annual leave", 4),
	}
	first := BuildWeekGrid(entries, testWeek)
	second := BuildWeekGrid(entries, testWeek)

	if len(first) != len(second) {
		t.Fatal("grid shape differs between identical runs")
	}
	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("cell (%d,%d) differs between identical runs", i, j)
			}
		}
	}
}
