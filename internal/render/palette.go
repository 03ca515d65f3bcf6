// Package render draws analysed runs as PNG dashboards (gonum/plot) and
// interactive HTML comparison pages (go-echarts). It consumes only the
// plain series prepared by the report and compare packages.
package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/plotter"
)

// Fixed colours for the single-run panels.
var (
	colorSpeed   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorFuel    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorDrag    = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	colorRolling = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	colorSlope   = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	colorNeutral = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// generateColors creates a palette of distinct colors, one per scenario.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.45)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hexColor formats c as #rrggbb for echarts.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	const hex = "0123456789abcdef"
	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint32{r >> 8, g >> 8, b >> 8} {
		out[1+2*i] = hex[v>>4]
		out[2+2*i] = hex[v&0x0f]
	}
	return string(out)
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// xys pairs xs with ys, dropping pairs where either value is not finite.
// plotter rejects NaN and Inf outright.
func xys(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
	}
	return pts
}

// indexXYs plots ys against their index.
func indexXYs(ys []float64) plotter.XYs {
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	return xys(xs, ys)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
