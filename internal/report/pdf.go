package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/banshee-data/telemetry.report/internal/units"
	"github.com/banshee-data/telemetry.report/internal/version"
)

const (
	pdfMargin       = 12.7 // mm
	pdfPageWidth    = 297  // A4 landscape
	pdfContentWidth = pdfPageWidth - 2*pdfMargin
	pdfLineHeight   = 6
)

// pdfTable renders a two-column label/value table.
type pdfTable struct {
	pdf    *gofpdf.Fpdf
	labelW float64
	valueW float64
}

func (t pdfTable) heading(title string) {
	t.pdf.Ln(2)
	t.pdf.SetFont("Arial", "B", 11)
	t.pdf.SetFillColor(200, 200, 200)
	t.pdf.CellFormat(t.labelW+t.valueW, pdfLineHeight, title, "1", 1, "L", true, 0, "")
}

func (t pdfTable) row(label, format string, args ...interface{}) {
	t.pdf.SetFont("Arial", "", 9)
	t.pdf.SetTextColor(50, 50, 50)
	t.pdf.CellFormat(t.labelW, pdfLineHeight, label, "1", 0, "L", false, 0, "")
	t.pdf.CellFormat(t.valueW, pdfLineHeight, fmt.Sprintf(format, args...), "1", 1, "R", false, 0, "")
	t.pdf.SetTextColor(0, 0, 0)
}

// WritePDF renders a one page summary of b. When dashboardPNG is non-empty
// it is placed to the right of the figures table.
func WritePDF(w io.Writer, b *Bundle, dashboardPNG []byte) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Simulation Summary - "+b.Label, false)
	pdf.SetCreator(version.String(), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pdfContentWidth, 10, "Simulation Summary Report - "+b.Label, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	meta := fmt.Sprintf("%d samples", b.Samples)
	if b.Source != "" {
		meta = b.Source + ", " + meta
	}
	if b.RunID != "" {
		meta += ", run " + b.RunID
	}
	if !b.GeneratedAt.IsZero() {
		meta += ", " + b.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")
	}
	pdf.CellFormat(pdfContentWidth, pdfLineHeight, meta, "", 1, "C", false, 0, "")

	d := b.Derived
	unit := b.SpeedUnits
	tbl := pdfTable{pdf: pdf, labelW: 60, valueW: 40}
	tableTop := pdf.GetY() + 2

	tbl.heading("Distance & Fuel")
	tbl.row("Total distance", "%.3f %s", units.ConvertDistance(d.Distance, unit), units.DistanceLabel(unit))
	tbl.row("Total fuel used", "%.3f L", d.TotalFuel)
	tbl.row("Fuel consumption", "%.3f L/100km", d.FuelPer100)
	tbl.row("Energy efficiency", "%.3f km/MJ", d.EnergyEfficiency/1000)
	tbl.row("Estimated cost", "$%.2f", d.Cost)
	tbl.row("CO2 emissions", "%.3f kg", d.CO2)

	if s := b.Speed; s != nil {
		tbl.heading("Speed (" + units.SpeedLabel(unit) + ")")
		tbl.row("Mean", "%.2f", units.ConvertSpeed(s.Mean, unit))
		tbl.row("Max", "%.2f", units.ConvertSpeed(s.Max, unit))
		tbl.row("Std dev", "%.2f", units.ConvertSpeed(s.StdDev, unit))
		if p := b.SpeedPercentiles; len(p) == 3 {
			tbl.row("P85", "%.2f", units.ConvertSpeed(p[1], unit))
		}
	}

	if r := d.Resistance; r != nil {
		tbl.heading("Resistance share")
		tbl.row("Aerodynamic drag", "%.1f%%", r.DragPct)
		tbl.row("Rolling resistance", "%.1f%%", r.RollingPct)
		tbl.row("Slope resistance", "%.1f%%", r.SlopePct)
	}

	if p := d.Peak; p != nil {
		tbl.heading("Peak consumption")
		tbl.row("Time range", "%.0fs - %.0fs", p.StartTime, p.EndTime)
		tbl.row("Consumption", "%.5f L", p.Consumption)
	}

	if len(b.Interpretation) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Arial", "I", 9)
		for _, line := range b.Interpretation {
			pdf.MultiCell(tbl.labelW+tbl.valueW, 5, line, "", "L", false)
		}
	}

	if len(dashboardPNG) > 0 {
		const name = "dashboard"
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(dashboardPNG))
		x := pdfMargin + tbl.labelW + tbl.valueW + 5
		pdf.ImageOptions(name, x, tableTop, pdfContentWidth-(x-pdfMargin), 0, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	return pdf.Output(w)
}
