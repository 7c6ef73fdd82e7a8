package charts

import (
	"errors"
	"io"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	pngWidth  = 1024
	pngHeight = 600
)

// ErrNoFigure is returned when a placeholder view is asked for an image.
var ErrNoFigure = errors.New("view has no figure")

// RenderPNG draws the view's figure as a static PNG.
func RenderPNG(v View, w io.Writer) error {
	if !v.Available() {
		return ErrNoFigure
	}

	f := v.Figure
	switch f.Kind {
	case KindPie:
		return pngPie(f, w)
	case KindScatter:
		return pngScatter(f, w)
	case KindBox:
		return pngBox(f, w)
	default:
		return pngBars(f, w)
	}
}

func pngPie(f *Figure, w io.Writer) error {
	var values []chart.Value
	for _, tr := range f.Traces {
		for i, label := range tr.Labels {
			values = append(values, chart.Value{
				Label: label,
				Value: tr.Values[i],
				Style: chart.Style{FillColor: hexColor(paletteColor(f.Palette, i))},
			})
		}
	}
	if len(values) == 0 {
		return ErrNoFigure
	}

	pie := chart.PieChart{
		Title:  f.Title,
		Width:  pngWidth,
		Height: pngHeight,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func pngScatter(f *Figure, w io.Writer) error {
	var xs, ys []float64
	for _, tr := range f.Traces {
		xs = append(xs, tr.X...)
		ys = append(ys, tr.Y...)
	}
	if len(xs) == 0 {
		return ErrNoFigure
	}

	var series []chart.Series
	if continuous(f.Traces) {
		tr := f.Traces[0]
		lo, hi := extent(tr.Color)
		colors := tr.Color
		scale := f.ColorScale
		series = append(series, chart.ContinuousSeries{
			Name:    f.ColorTitle,
			XValues: tr.X,
			YValues: tr.Y,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
					return scaleColor(scale, colors[index], lo, hi)
				},
			},
		})
	} else {
		for i, tr := range f.Traces {
			series = append(series, chart.ContinuousSeries{
				Name:    tr.Name,
				XValues: tr.X,
				YValues: tr.Y,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColor:    hexColor(paletteColor(f.Palette, i)),
				},
			})
		}
	}

	ch := chart.Chart{
		Title:      f.Title,
		Width:      pngWidth,
		Height:     pngHeight,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: f.XTitle, Range: paddedRange(xs)},
		YAxis:      chart.YAxis{Name: f.YTitle, Range: paddedRange(ys)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// pngBox draws each box as outline, median and whisker polylines at x = 1..n.
func pngBox(f *Figure, w io.Writer) error {
	var series []chart.Series
	var ticks []chart.Tick
	var ys []float64

	pos := 0.0
	for i, tr := range f.Traces {
		if tr.Box == nil {
			continue
		}
		pos++
		b := tr.Box
		ticks = append(ticks, chart.Tick{Value: pos, Label: tr.Name})
		ys = append(ys, b.LowerWhisker, b.UpperWhisker)
		ys = append(ys, b.Outliers...)

		style := chart.Style{
			StrokeColor: hexColor(paletteColor(f.Palette, i)),
			StrokeWidth: 2,
		}
		l, r := pos-0.3, pos+0.3
		series = append(series,
			chart.ContinuousSeries{
				XValues: []float64{l, r, r, l, l},
				YValues: []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1},
				Style:   style,
			},
			chart.ContinuousSeries{
				XValues: []float64{l, r},
				YValues: []float64{b.Median, b.Median},
				Style:   style,
			},
			chart.ContinuousSeries{
				XValues: []float64{pos, pos},
				YValues: []float64{b.Q3, b.UpperWhisker},
				Style:   style,
			},
			chart.ContinuousSeries{
				XValues: []float64{pos, pos},
				YValues: []float64{b.LowerWhisker, b.Q1},
				Style:   style,
			},
		)
		if len(b.Outliers) > 0 {
			xs := make([]float64, len(b.Outliers))
			for k := range xs {
				xs[k] = pos
			}
			series = append(series, chart.ContinuousSeries{
				XValues: xs,
				YValues: b.Outliers,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
					DotColor:    style.StrokeColor,
				},
			})
		}
	}
	if len(series) == 0 {
		return ErrNoFigure
	}

	ch := chart.Chart{
		Title:      f.Title,
		Width:      pngWidth,
		Height:     pngHeight,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  f.XTitle,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: pos + 0.5},
		},
		YAxis:  chart.YAxis{Name: f.YTitle, Range: paddedRange(ys)},
		Series: series,
	}
	return ch.Render(chart.PNG, w)
}

// pngBars draws grouped bars. Each trace is a single filled path that returns to
// zero between its bars, so the legend gets one entry per trace.
func pngBars(f *Figure, w io.Writer) error {
	if len(f.Traces) == 0 {
		return ErrNoFigure
	}

	labels := f.Traces[0].Labels
	groupWidth := 0.8
	barWidth := groupWidth / float64(len(f.Traces))
	maxY := 0.0

	var series []chart.Series
	for i, tr := range f.Traces {
		var xs, ys []float64
		for g, v := range tr.Values {
			x0 := float64(g+1) - groupWidth/2 + float64(i)*barWidth
			x1 := x0 + barWidth
			xs = append(xs, x0, x0, x1, x1)
			ys = append(ys, 0, v, v, 0)
			maxY = math.Max(maxY, v)
		}
		color := hexColor(paletteColor(f.Palette, i))
		series = append(series, chart.ContinuousSeries{
			Name:    tr.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 1,
				FillColor:   color,
			},
		})
	}
	if maxY == 0 {
		maxY = 1
	}

	ticks := make([]chart.Tick, len(labels))
	for g, l := range labels {
		ticks[g] = chart.Tick{Value: float64(g + 1), Label: l}
	}

	ch := chart.Chart{
		Title:      f.Title,
		Width:      pngWidth,
		Height:     pngHeight,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  f.XTitle,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(labels)) + 0.5},
		},
		YAxis:  chart.YAxis{Name: f.YTitle, Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1}},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// paddedRange widens the data extent by 5% and never returns a zero-width range.
func paddedRange(xs []float64) *chart.ContinuousRange {
	lo, hi := extent(xs)
	if lo == hi {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// scaleColor interpolates v over the color stops of scale.
func scaleColor(scale []string, v, lo, hi float64) drawing.Color {
	if len(scale) == 0 {
		scale = ScalePlasma
	}
	if hi <= lo || len(scale) == 1 {
		return hexColor(scale[0])
	}

	t := (v - lo) / (hi - lo)
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(scale)-1)
	i := int(math.Floor(pos))
	if i >= len(scale)-1 {
		return hexColor(scale[len(scale)-1])
	}
	frac := pos - float64(i)

	a, b := hexColor(scale[i]), hexColor(scale[i+1])
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
