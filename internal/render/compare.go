package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/telemetry.report/internal/compare"
	"github.com/banshee-data/telemetry.report/internal/telemetry"
	"github.com/banshee-data/telemetry.report/internal/units"
)

// Comparison image size, 2x2 panels.
var (
	ComparisonWidth  = 15 * vg.Inch
	ComparisonHeight = 10 * vg.Inch
)

// AssetsHost is where the HTML pages load the echarts scripts from.
var AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// maxHTMLPoints caps the samples per line in the HTML page; longer runs are
// strided.
const maxHTMLPoints = 2000

// Trace is the per-run data drawn on comparison charts. Speed is in the
// display units named by SpeedUnits.
type Trace struct {
	Label          string
	SpeedUnits     string
	Time           []float64
	Speed          []float64
	CumulativeFuel []float64
	Drag           []float64
}

// NewTrace extracts the comparison overlay series from s.
func NewTrace(label string, s *telemetry.Series, speedUnits string) Trace {
	speed := s.Speed()
	for i, v := range speed {
		speed[i] = units.ConvertSpeed(v, speedUnits)
	}
	return Trace{
		Label:          label,
		SpeedUnits:     speedUnits,
		Time:           s.Time(),
		Speed:          speed,
		CumulativeFuel: s.CumulativeFuel(),
		Drag:           s.Drag(),
	}
}

func speedAxisLabel(traces []Trace) string {
	unit := units.MPS
	if len(traces) > 0 {
		unit = traces[0].SpeedUnits
	}
	return fmt.Sprintf("Speed (%s)", units.SpeedLabel(unit))
}

// WriteComparisonPNG overlays speed, cumulative fuel and drag for every
// trace and adds a bar chart of total fuel per scenario.
func WriteComparisonPNG(w io.Writer, traces []Trace, res *compare.Result) error {
	speed := newPanel("Speed Comparison", "Time (s)", speedAxisLabel(traces))
	fuel := newPanel("Cumulative Fuel Comparison", "Time (s)", "Fuel (L)")
	drag := newPanel("Drag Force Comparison", "Time (s)", "Drag (N)")
	totals := newPanel("Total Fuel Consumption", "", "Fuel (L)")

	colors := generateColors(len(traces))
	for i, tr := range traces {
		for _, s := range []struct {
			p  *plot.Plot
			ys []float64
		}{
			{speed, tr.Speed},
			{fuel, tr.CumulativeFuel},
			{drag, tr.Drag},
		} {
			if err := addLine(s.p, xys(tr.Time, s.ys), colors[i], tr.Label); err != nil {
				return fmt.Errorf("%s: %s: %w", s.p.Title.Text, tr.Label, err)
			}
		}
	}
	for _, p := range []*plot.Plot{speed, fuel, drag} {
		p.Legend.Top = true
	}

	if res != nil && !res.Insufficient && len(res.Scenarios) > 0 {
		values := make(plotter.Values, len(res.Scenarios))
		for i, s := range res.Scenarios {
			values[i] = s.TotalFuel
		}
		bars, err := plotter.NewBarChart(values, vg.Points(40))
		if err != nil {
			return fmt.Errorf("%s: %w", totals.Title.Text, err)
		}
		bars.Color = colorFuel
		totals.Add(bars)
		totals.NominalX(res.Labels()...)
	}

	grid := [][]*plot.Plot{
		{speed, fuel},
		{drag, totals},
	}
	return writeGrid(w, "Scenario Comparison", grid, 2, 2, ComparisonWidth, ComparisonHeight)
}

// WriteComparisonHTML writes an interactive page with the same four charts
// as WriteComparisonPNG.
func WriteComparisonHTML(w io.Writer, traces []Trace, res *compare.Result) error {
	page := components.NewPage()
	page.SetPageTitle("Scenario Comparison")
	page.SetAssetsHost(AssetsHost)

	colors := generateColors(len(traces))
	page.AddCharts(
		overlayChart("Speed Comparison", speedAxisLabel(traces), traces, colors, func(t Trace) []float64 { return t.Speed }),
		overlayChart("Cumulative Fuel Comparison", "Fuel (L)", traces, colors, func(t Trace) []float64 { return t.CumulativeFuel }),
		overlayChart("Drag Force Comparison", "Drag (N)", traces, colors, func(t Trace) []float64 { return t.Drag }),
	)

	if res != nil && !res.Insufficient {
		page.AddCharts(totalFuelChart(res))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}

func overlayChart(title, yName string, traces []Trace, colors []color.Color, pick func(Trace) []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px", AssetsHost: AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Time (s)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)

	for i, tr := range traces {
		ys := pick(tr)
		n := len(tr.Time)
		if len(ys) < n {
			n = len(ys)
		}
		stride := 1
		if n > maxHTMLPoints {
			stride = (n + maxHTMLPoints - 1) / maxHTMLPoints
		}

		data := make([]opts.LineData, 0, n/stride+1)
		for j := 0; j < n; j += stride {
			if isFinite(tr.Time[j]) && isFinite(ys[j]) {
				data = append(data, opts.LineData{Value: []interface{}{tr.Time[j], ys[j]}})
			}
		}
		line.AddSeries(tr.Label, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: hexColor(colors[i]), Width: 1.5}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}),
		)
	}
	return line
}

func totalFuelChart(res *compare.Result) *charts.Bar {
	data := make([]opts.BarData, len(res.Scenarios))
	for i, s := range res.Scenarios {
		data[i] = opts.BarData{Value: s.TotalFuel}
	}

	subtitle := ""
	if best, ok := res.Best(); ok {
		subtitle = fmt.Sprintf("lowest: %s (%.3f L), spread %.3f L", best.Label, best.TotalFuel, res.Spread())
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px", AssetsHost: AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: "Total Fuel Consumption", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Fuel (L)"}),
	)
	bar.SetXAxis(res.Labels()).
		AddSeries("total fuel", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colorFuel)}),
		)
	return bar
}
