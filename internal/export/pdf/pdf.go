// Package pdf renders the weekly roster grid as a printable landscape
// PDF for sites that want paper copies without opening a spreadsheet.
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"radhub/internal/domain/roster"
)

const (
	pageMargin   = 10.0
	labelWidth   = 57.0
	dayWidth     = 37.0
	lineHeight   = 4.0
	cellPadding  = 1.5
	pageBreakAtY = 190.0
)

func Filename(week time.Time) string {
	return fmt.Sprintf("STAFF_ROSTER_Week_%s.pdf", week.Format("02_Jan_2006"))
}

func Write(grid [][]roster.Cell) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()
	pdf.SetY(pageMargin)

	for _, row := range grid {
		height := rowHeight(row)
		if pdf.GetY()+height > pageBreakAtY {
			pdf.AddPage()
			pdf.SetY(pageMargin)
		}
		drawRow(pdf, row, height)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func rowHeight(row []roster.Cell) float64 {
	maxLines := 1
	for _, cell := range row {
		if cell.Value == "" {
			continue
		}
		if n := len(strings.Split(cell.Value, "\n")); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*lineHeight + 2*cellPadding
}

func drawRow(pdf *gofpdf.Fpdf, row []roster.Cell, height float64) {
	y := pdf.GetY()
	x := pageMargin
	pdf.SetDrawColor(191, 191, 191)

	for col, cell := range row {
		width := dayWidth
		if col == 0 {
			width = labelWidth
		}

		r, g, b := fillFor(cell.Kind)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x, y, width, height, "FD")

		if cell.Value != "" {
			setFontFor(pdf, cell.Kind)
			for i, line := range strings.Split(cell.Value, "\n") {
				pdf.SetXY(x+cellPadding, y+cellPadding+float64(i)*lineHeight)
				pdf.CellFormat(width-2*cellPadding, lineHeight, line, "", 0, "L", false, 0, "")
			}
		}
		x += width
	}
	pdf.SetY(y + height)
}

func fillFor(kind roster.CellKind) (int, int, int) {
	switch kind {
	case roster.CellBrandHeader:
		return 31, 56, 100
	case roster.CellDateHeader:
		return 217, 217, 217
	case roster.CellClinicBanner:
		return 255, 217, 102
	case roster.CellRoleLabel:
		return 255, 255, 255
	case roster.CellShift:
		return 226, 239, 218
	case roster.CellLeave:
		return 252, 228, 214
	default:
		return 242, 242, 242
	}
}

func setFontFor(pdf *gofpdf.Fpdf, kind roster.CellKind) {
	switch kind {
	case roster.CellBrandHeader:
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetTextColor(255, 255, 255)
	case roster.CellDateHeader, roster.CellClinicBanner, roster.CellRoleLabel:
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(0, 0, 0)
	default:
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}
}
