// Package excel renders a weekly roster grid as a styled single-sheet
// workbook, matching the layout the clinics print and pin up.
package excel

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"radhub/internal/domain/roster"
)

const (
	sheetName = "Roster"

	labelColumnWidth = 32
	dayColumnWidth   = 22

	brandRowHeight = 30
	dateRowHeight  = 24

	// Data rows grow with the most crowded cell in the row so stacked
	// occupants never truncate.
	minDataRowHeight      = 36
	occupantRowHeight     = 40
	defaultWorkbookSheet  = "Sheet1"
	attachmentNamePattern = "STAFF_ROSTER_Week_%s.xlsx"
)

// Filename is a pure function of the selected week.
func Filename(week time.Time) string {
	return fmt.Sprintf(attachmentNamePattern, week.Format("02_Jan_2006"))
}

// Write serializes the grid to xlsx bytes ready for download.
func Write(grid [][]roster.Cell) (*bytes.Buffer, error) {
	file, err := Build(grid)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return file.WriteToBuffer()
}

// Build produces the styled workbook for a grid from
// roster.BuildWeekGrid.
func Build(grid [][]roster.Cell) (*excelize.File, error) {
	file := excelize.NewFile()
	file.SetDefaultFont("Calibri")

	if _, err := file.NewSheet(sheetName); err != nil {
		return nil, err
	}
	if err := file.DeleteSheet(defaultWorkbookSheet); err != nil {
		return nil, err
	}

	if err := file.SetColWidth(sheetName, "A", "A", labelColumnWidth); err != nil {
		return nil, err
	}
	if err := file.SetColWidth(sheetName, "B", "G", dayColumnWidth); err != nil {
		return nil, err
	}

	styles, err := newStyles(file)
	if err != nil {
		return nil, err
	}

	for rowIdx, row := range grid {
		maxOccupants := 0
		for colIdx, cell := range row {
			ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			if cell.Value != "" {
				if err := file.SetCellValue(sheetName, ref, cell.Value); err != nil {
					return nil, err
				}
			}
			if err := file.SetCellStyle(sheetName, ref, ref, styles[cell.Kind]); err != nil {
				return nil, err
			}
			if n := roster.OccupantCount(cell.Value); n > maxOccupants {
				maxOccupants = n
			}
		}
		if err := file.SetRowHeight(sheetName, rowIdx+1, rowHeight(rowIdx, maxOccupants)); err != nil {
			return nil, err
		}
	}

	if len(grid) > 0 {
		if err := file.MergeCell(sheetName, "A1", "G1"); err != nil {
			return nil, err
		}
	}
	return file, nil
}

func rowHeight(rowIdx, maxOccupants int) float64 {
	switch rowIdx {
	case 0:
		return brandRowHeight
	case 1:
		return dateRowHeight
	}
	height := float64(maxOccupants * occupantRowHeight)
	if height < minDataRowHeight {
		return minDataRowHeight
	}
	return height
}

// Fixed colour treatment per cell kind. These values are a visual
// contract with the printed roster, not a business rule.
const (
	fillNavy       = "1F3864"
	fillGrey       = "D9D9D9"
	fillYellow     = "FFD966"
	fillWhite      = "FFFFFF"
	fillLightGrey  = "F2F2F2"
	fillLightGreen = "E2EFDA"
	fillCream      = "FCE4D6"
)

func newStyles(file *excelize.File) (map[roster.CellKind]int, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "BFBFBF", Style: 1},
		{Type: "right", Color: "BFBFBF", Style: 1},
		{Type: "top", Color: "BFBFBF", Style: 1},
		{Type: "bottom", Color: "BFBFBF", Style: 1},
	}

	definitions := map[roster.CellKind]*excelize.Style{
		roster.CellBrandHeader: {
			Font:      &excelize.Font{Bold: true, Size: 16, Color: fillWhite},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillNavy}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		roster.CellDateHeader: {
			Font:      &excelize.Font{Bold: true, Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillGrey}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thin,
		},
		roster.CellClinicBanner: {
			Font:      &excelize.Font{Bold: true, Size: 12},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillYellow}},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
			Border:    thin,
		},
		roster.CellRoleLabel: {
			Font:      &excelize.Font{Bold: true, Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillWhite}},
			Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
			Border:    thin,
		},
		roster.CellShift: {
			Font:      &excelize.Font{Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillLightGreen}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true},
			Border:    thin,
		},
		roster.CellLeave: {
			Font:      &excelize.Font{Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillCream}},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top", WrapText: true},
			Border:    thin,
		},
		roster.CellEmpty: {
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fillLightGrey}},
			Border: thin,
		},
	}

	styles := make(map[roster.CellKind]int, len(definitions))
	for kind, definition := range definitions {
		id, err := file.NewStyle(definition)
		if err != nil {
			return nil, err
		}
		styles[kind] = id
	}
	return styles, nil
}
