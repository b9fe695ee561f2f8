// Package pdf renders the weekly time report as a PDF document.
package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/xolan/truflow/internal/stats"
	"github.com/xolan/truflow/internal/timeutil"
)

// Column widths in mm for A4 landscape with 10 mm margins.
const (
	bucketWidth = 67.0
	dayWidth    = 25.0
	totalWidth  = 35.0
	rowHeight   = 8.0
)

// WeekReport is the data drawn on the page.
type WeekReport struct {
	Title  string
	Grid   stats.WeekGrid
	Labels []string // row labels, parallel to Grid.Rows
}

// WriteWeek renders r to w.
func WriteWeek(w io.Writer, r WeekReport) error {
	doc := build(r)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// SaveWeek renders r to the file at path.
func SaveWeek(path string, r WeekReport) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return WriteWeek(f, r)
}

func build(r WeekReport) *fpdf.Fpdf {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetMargins(10, 10, 10)
	doc.SetTitle(r.Title, true)
	doc.SetCreator("truflow", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.Cell(0, 10, tr(r.Title))
	doc.Ln(10)
	doc.SetFont("Arial", "", 11)
	doc.Cell(0, 8, tr(r.Grid.Window.RangeLabel()))
	doc.Ln(12)

	if r.Grid.Empty() {
		doc.SetFont("Arial", "I", 12)
		doc.Cell(0, 10, "No time logged this week.")
		return doc
	}

	// Header
	doc.SetFont("Arial", "B", 10)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(bucketWidth, rowHeight, "Bucket", "1", 0, "L", true, 0, "")
	for i := range timeutil.DayNames {
		name, date := r.Grid.Window.DayLabel(i)
		doc.CellFormat(dayWidth, rowHeight, name+" "+date, "1", 0, "C", true, 0, "")
	}
	doc.CellFormat(totalWidth, rowHeight, "Total", "1", 1, "R", true, 0, "")

	// Rows
	doc.SetFont("Arial", "", 10)
	for i, row := range r.Grid.Rows {
		label := row.Bucket.String()
		if i < len(r.Labels) {
			label = r.Labels[i]
		}
		doc.CellFormat(bucketWidth, rowHeight, tr(label), "1", 0, "L", false, 0, "")
		for _, sec := range row.Days {
			doc.CellFormat(dayWidth, rowHeight, tr(stats.FormatCell(sec)), "1", 0, "C", false, 0, "")
		}
		doc.CellFormat(totalWidth, rowHeight, stats.FormatHM(row.Total), "1", 1, "R", false, 0, "")
	}

	// Totals
	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(bucketWidth, rowHeight, "Daily total", "1", 0, "L", true, 0, "")
	for _, sec := range r.Grid.DayTotals {
		doc.CellFormat(dayWidth, rowHeight, tr(stats.FormatCell(sec)), "1", 0, "C", true, 0, "")
	}
	doc.CellFormat(totalWidth, rowHeight, stats.FormatHM(r.Grid.WeekTotal), "1", 1, "R", true, 0, "")

	return doc
}
