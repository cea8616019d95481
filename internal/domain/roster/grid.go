package roster

import (
	"sort"
	"strings"
	"time"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellBrandHeader
	CellDateHeader
	CellClinicBanner
	CellRoleLabel
	CellShift
	CellLeave
)

// Cell is one logical grid unit: display text plus the style variant
// the emitters render it with.
type Cell struct {
	Value string
	Kind  CellKind
}

const (
	// DaysShown fixes the business week at Monday through Saturday.
	// Sunday entries parse fine but are never rendered.
	DaysShown = 6
	// GridColumns is one label column plus the six day columns.
	GridColumns = DaysShown + 1

	// OccupantSeparator stacks multiple staff inside one day cell.
	OccupantSeparator = "\n\n"

	brandTitle = "STAFF ROSTER"
)

// BuildWeekGrid renders the grid for the week starting at weekStart:
// two header rows, then per clinic (alphabetical) a banner row, one
// row per role in display order, and a leave row only when the clinic
// has leave that week. Every row has exactly GridColumns cells.
func BuildWeekGrid(entries []Entry, weekStart time.Time) [][]Cell {
	grid := [][]Cell{brandRow(), dateRow(weekStart)}

	byClinic := map[string][]Entry{}
	for _, entry := range entries {
		if !WeekStart(entry.Date).Equal(weekStart) {
			continue
		}
		byClinic[entry.Clinic] = append(byClinic[entry.Clinic], entry)
	}

	clinics := make([]string, 0, len(byClinic))
	for clinic := range byClinic {
		clinics = append(clinics, clinic)
	}
	sort.Strings(clinics)

	for _, clinic := range clinics {
		grid = append(grid, clinicBlock(clinic, byClinic[clinic])...)
	}
	return grid
}

func brandRow() []Cell {
	row := make([]Cell, GridColumns)
	row[0] = Cell{Value: brandTitle, Kind: CellBrandHeader}
	for i := 1; i < GridColumns; i++ {
		row[i] = Cell{Kind: CellBrandHeader}
	}
	return row
}

func dateRow(weekStart time.Time) []Cell {
	row := make([]Cell, GridColumns)
	weekEnd := weekStart.AddDate(0, 0, DaysShown-1)
	row[0] = Cell{
		Value: "Week " + weekStart.Format("2 Jan") + " - " + weekEnd.Format("2 Jan 2006"),
		Kind:  CellDateHeader,
	}
	for day := 0; day < DaysShown; day++ {
		row[day+1] = Cell{
			Value: weekStart.AddDate(0, 0, day).Format("Mon 2 Jan"),
			Kind:  CellDateHeader,
		}
	}
	return row
}

func clinicBlock(clinic string, entries []Entry) [][]Cell {
	var shifts, leaves []Entry
	for _, entry := range entries {
		if entry.Instance == InstanceLeave {
			leaves = append(leaves, entry)
		} else {
			shifts = append(shifts, entry)
		}
	}

	banner := make([]Cell, GridColumns)
	banner[0] = Cell{Value: clinic, Kind: CellClinicBanner}
	for i := 1; i < GridColumns; i++ {
		banner[i] = Cell{Kind: CellClinicBanner}
	}
	block := [][]Cell{banner}

	for _, role := range rolesInOrder(shifts) {
		block = append(block, roleRow(role, shifts))
	}
	if len(leaves) > 0 {
		block = append(block, leaveRow(leaves))
	}
	return block
}

// rolesInOrder returns the distinct roles among shifts, listed roles
// first per RoleOrder, then unlisted roles in encounter order. The
// leave pseudo-role never gets a role row.
func rolesInOrder(shifts []Entry) []string {
	var roles []string
	seen := map[string]bool{}
	for _, entry := range shifts {
		if entry.Role == RoleLeave || seen[entry.Role] {
			continue
		}
		seen[entry.Role] = true
		roles = append(roles, entry.Role)
	}

	rank := map[string]int{}
	for i, role := range RoleOrder() {
		rank[role] = i
	}
	unlisted := len(rank)
	sort.SliceStable(roles, func(i, j int) bool {
		ri, ok := rank[roles[i]]
		if !ok {
			ri = unlisted
		}
		rj, ok := rank[roles[j]]
		if !ok {
			rj = unlisted
		}
		return ri < rj
	})
	return roles
}

func roleRow(role string, shifts []Entry) []Cell {
	row := make([]Cell, GridColumns)
	row[0] = Cell{Value: role, Kind: CellRoleLabel}

	for day := 0; day < DaysShown; day++ {
		var bucket []Entry
		for _, entry := range shifts {
			if entry.Role == role && entry.Day == day {
				bucket = append(bucket, entry)
			}
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return ClockSortKey(bucket[i].StartTime) < ClockSortKey(bucket[j].StartTime)
		})

		occupants := make([]string, 0, len(bucket))
		for _, entry := range bucket {
			occupants = append(occupants, entry.StartTime+"-"+entry.EndTime+"\n"+entry.StaffName)
		}
		row[day+1] = occupancyCell(occupants, CellShift)
	}
	return row
}

func leaveRow(leaves []Entry) []Cell {
	row := make([]Cell, GridColumns)
	row[0] = Cell{Value: RoleLeave, Kind: CellRoleLabel}

	for day := 0; day < DaysShown; day++ {
		var occupants []string
		for _, entry := range leaves {
			if entry.Day == day {
				occupants = append(occupants, entry.LeaveType+"\n"+entry.StaffName)
			}
		}
		row[day+1] = occupancyCell(occupants, CellLeave)
	}
	return row
}

func occupancyCell(occupants []string, kind CellKind) Cell {
	if len(occupants) == 0 {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Value: strings.Join(occupants, OccupantSeparator), Kind: kind}
}

// OccupantCount reports how many staff are stacked in a cell, used to
// size row heights so nothing truncates.
func OccupantCount(value string) int {
	if value == "" {
		return 0
	}
	return len(strings.Split(value, OccupantSeparator))
}
