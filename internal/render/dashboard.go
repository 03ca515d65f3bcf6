package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/telemetry.report/internal/report"
	"github.com/banshee-data/telemetry.report/internal/stats"
	"github.com/banshee-data/telemetry.report/internal/units"
)

// Dashboard image size. Twelve panels in a 4x3 grid.
var (
	DashboardWidth  = 18 * vg.Inch
	DashboardHeight = 20 * vg.Inch
)

const (
	dashboardRows = 4
	dashboardCols = 3
)

func newPanel(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

// addLine adds a line when there is at least one finite point. An empty
// series leaves the panel blank.
func addLine(p *plot.Plot, pts plotter.XYs, c color.Color, legend string) error {
	if len(pts) == 0 {
		return nil
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = vg.Points(1)
	p.Add(l)
	if legend != "" {
		p.Legend.Add(legend, l)
	}
	return nil
}

func addScatter(p *plot.Plot, pts plotter.XYs, c color.Color) error {
	if len(pts) == 0 {
		return nil
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.Color = c
	s.Radius = vg.Points(1)
	p.Add(s)
	return nil
}

// addHist draws a histogram already binned by the stats package.
func addHist(p *plot.Plot, h *stats.Hist, c color.Color) {
	if h == nil || len(h.Counts) == 0 {
		return
	}
	bins := make([]plotter.HistogramBin, len(h.Counts))
	for i, n := range h.Counts {
		bins[i] = plotter.HistogramBin{Min: h.Edges[i], Max: h.Edges[i+1], Weight: n}
	}
	p.Add(&plotter.Histogram{
		Bins:      bins,
		Width:     h.Edges[1] - h.Edges[0],
		FillColor: c,
		LineStyle: plotter.DefaultLineStyle,
	})
}

// WriteRunDashboard renders the twelve panel overview of one run as PNG.
func WriteRunDashboard(w io.Writer, title string, pd *report.PlotData) error {
	speedAxis := fmt.Sprintf("Speed (%s)", units.SpeedLabel(pd.SpeedUnits))

	speed := newPanel("Speed Profile", "Time (s)", speedAxis)
	fuel := newPanel("Cumulative Fuel Consumption", "Time (s)", "Fuel (L)")
	forces := newPanel("Resistance Forces", "Time (s)", "Force (N)")
	accel := newPanel("Acceleration Profile", "Time (s)", "Acceleration (m/s²)")
	cd := newPanel("Drag Coefficient vs Reynolds Number", "Reynolds Number", "Cd")
	altitude := newPanel("Elevation Profile", "Time (s)", "Altitude (m)")
	speedHist := newPanel("Speed Distribution", speedAxis, "Frequency")
	fuelSpeed := newPanel("Fuel Rate vs Speed", speedAxis, "Fuel per step (L)")
	reHist := newPanel("Reynolds Number Distribution", "Reynolds Number", "Frequency")
	total := newPanel("Total Resistance Force", "Time (s)", "Force (N)")
	share := newPanel("Resistance Force Breakdown", "", "Share (%)")
	rolling := newPanel("Rolling Fuel Consumption", "Window start", "L per 100 km-equivalent")

	steps := []struct {
		p   *plot.Plot
		pts plotter.XYs
		c   color.Color
		lg  string
	}{
		{speed, xys(pd.Time, pd.Speed), colorSpeed, ""},
		{fuel, xys(pd.Time, pd.CumulativeFuel), colorFuel, ""},
		{forces, xys(pd.Time, pd.Drag), colorDrag, "Aerodynamic drag"},
		{forces, xys(pd.Time, pd.Rolling), colorRolling, "Rolling resistance"},
		{forces, xys(pd.Time, pd.SlopeAbs), colorSlope, "Slope resistance"},
		{accel, xys(pd.Time, pd.Acceleration), colorNeutral, ""},
		{altitude, xys(pd.Time, pd.Altitude), colorSlope, ""},
		{total, xys(pd.Time, pd.Total), colorFuel, ""},
		{rolling, indexXYs(pd.RollingFuel), colorRolling, ""},
	}
	for _, s := range steps {
		if err := addLine(s.p, s.pts, s.c, s.lg); err != nil {
			return fmt.Errorf("%s: %w", s.p.Title.Text, err)
		}
	}
	forces.Legend.Top = true

	if err := addScatter(cd, xys(pd.Reynolds, pd.Cd), colorSpeed); err != nil {
		return fmt.Errorf("%s: %w", cd.Title.Text, err)
	}
	if err := addScatter(fuelSpeed, xys(pd.Speed, pd.FuelStep), colorFuel); err != nil {
		return fmt.Errorf("%s: %w", fuelSpeed.Title.Text, err)
	}

	addHist(speedHist, pd.SpeedHist, colorSpeed)
	addHist(reHist, pd.ReynoldsHist, colorDrag)

	if r := pd.Resistance; r != nil {
		bars, err := plotter.NewBarChart(plotter.Values{r.DragPct, r.RollingPct, r.SlopePct}, vg.Points(30))
		if err != nil {
			return fmt.Errorf("%s: %w", share.Title.Text, err)
		}
		bars.Color = colorRolling
		share.Add(bars)
		share.NominalX("Drag", "Rolling", "Slope")
	}

	grid := [][]*plot.Plot{
		{speed, fuel, forces},
		{accel, cd, altitude},
		{speedHist, fuelSpeed, reHist},
		{total, share, rolling},
	}
	return writeGrid(w, "Comprehensive Analysis - "+title, grid, dashboardRows, dashboardCols, DashboardWidth, DashboardHeight)
}

// writeGrid lays plots out in aligned tiles under a page title and writes
// the result as PNG.
func writeGrid(w io.Writer, title string, grid [][]*plot.Plot, rows, cols int, width, height vg.Length) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)

	titleStyle := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, 18),
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
	dc.FillText(titleStyle, vg.Point{X: dc.Center().X, Y: dc.Max.Y - vg.Points(6)}, title)

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadTop:    vg.Points(36),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(8),
		PadX:      vg.Points(18),
		PadY:      vg.Points(18),
	}

	canvases := plot.Align(grid, tiles, dc)
	for j := range grid {
		for i, p := range grid[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
