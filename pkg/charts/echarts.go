package charts

import (
	"html/template"
	"io"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var placeholderPage = template.Must(template.New("placeholder").Parse(
	`<!DOCTYPE html><html><head><meta charset="utf-8"><title>{{.}}</title></head>` +
		`<body style="font-family:Poppins,sans-serif;display:flex;justify-content:center;padding:2em">` +
		`<div class="placeholder">{{.}}</div></body></html>`,
))

type htmlRenderer interface {
	Render(w io.Writer) error
}

// RenderHTML writes a standalone interactive page for the view. Views without a
// figure render their placeholder text.
func RenderHTML(v View, w io.Writer) error {
	if !v.Available() {
		return RenderPlaceholderHTML(v.Placeholder, w)
	}

	var r htmlRenderer
	switch v.Figure.Kind {
	case KindPie:
		r = echartsPie(v.Figure)
	case KindScatter:
		r = echartsScatter(v.Figure)
	case KindBox:
		r = echartsBox(v.Figure)
	default:
		r = echartsBar(v.Figure)
	}
	return r.Render(w)
}

func RenderPlaceholderHTML(message string, w io.Writer) error {
	return placeholderPage.Execute(w, message)
}

func commonOpts(f *Figure, tooltipTrigger string) []echarts.GlobalOpts {
	return []echarts.GlobalOpts{
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: f.Title,
			Width:     "100%",
			Height:    "520px",
		}),
		echarts.WithTitleOpts(opts.Title{
			Title: f.Title,
		}),
		echarts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: tooltipTrigger,
		}),
		echarts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Bottom: "0",
		}),
	}
}

func axisOpts(f *Figure, xType string) []echarts.GlobalOpts {
	return []echarts.GlobalOpts{
		echarts.WithXAxisOpts(opts.XAxis{
			Name: f.XTitle,
			Type: xType,
		}),
		echarts.WithYAxisOpts(opts.YAxis{
			Name: f.YTitle,
			Type: "value",
		}),
	}
}

func echartsPie(f *Figure) *echarts.Pie {
	pie := echarts.NewPie()
	pie.SetGlobalOptions(commonOpts(f, "item")...)
	pie.SetGlobalOptions(echarts.WithColorsOpts(opts.Colors(f.Palette)))

	var data []opts.PieData
	name := ""
	for _, tr := range f.Traces {
		name = tr.Name
		for i, label := range tr.Labels {
			data = append(data, opts.PieData{Name: label, Value: tr.Values[i]})
		}
	}
	pie.AddSeries(name, data)
	return pie
}

func echartsScatter(f *Figure) *echarts.Scatter {
	sc := echarts.NewScatter()
	sc.SetGlobalOptions(commonOpts(f, "item")...)
	sc.SetGlobalOptions(axisOpts(f, "value")...)

	if continuous(f.Traces) {
		tr := f.Traces[0]
		lo, hi := extent(tr.Color)
		sc.SetGlobalOptions(echarts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange: &opts.VisualMapInRange{
				Color: f.ColorScale,
			},
		}))

		data := make([]opts.ScatterData, len(tr.X))
		for i := range tr.X {
			// visualMap maps the last dimension by default
			data[i] = opts.ScatterData{Value: []interface{}{tr.X[i], tr.Y[i], tr.Color[i]}}
		}
		sc.AddSeries(f.ColorTitle, data)
		return sc
	}

	for i, tr := range f.Traces {
		data := make([]opts.ScatterData, len(tr.X))
		for j := range tr.X {
			data[j] = opts.ScatterData{Value: []interface{}{tr.X[j], tr.Y[j]}}
		}
		sc.AddSeries(tr.Name, data,
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: paletteColor(f.Palette, i)}),
		)
	}
	return sc
}

func echartsBox(f *Figure) *echarts.BoxPlot {
	bp := echarts.NewBoxPlot()
	bp.SetGlobalOptions(commonOpts(f, "item")...)
	bp.SetGlobalOptions(axisOpts(f, "category")...)

	var labels []string
	var data []opts.BoxPlotData
	for i, tr := range f.Traces {
		if tr.Box == nil {
			continue
		}
		// one color per medium, same order as the PNG
		color := paletteColor(f.Palette, i)
		labels = append(labels, tr.Name)
		data = append(data, opts.BoxPlotData{
			Name: tr.Name,
			Value: []float64{
				tr.Box.LowerWhisker, tr.Box.Q1, tr.Box.Median, tr.Box.Q3, tr.Box.UpperWhisker,
			},
			ItemStyle: &opts.ItemStyle{Color: color, BorderColor: color},
		})
	}

	bp.SetXAxis(labels).AddSeries(f.YTitle, data)
	return bp
}

func echartsBar(f *Figure) *echarts.Bar {
	bar := echarts.NewBar()
	bar.SetGlobalOptions(commonOpts(f, "axis")...)
	bar.SetGlobalOptions(axisOpts(f, "category")...)

	labels := []string{ColSleep, ColSocialMedia}
	if len(f.Traces) > 0 {
		labels = f.Traces[0].Labels
	}
	bar.SetXAxis(labels)

	for i, tr := range f.Traces {
		data := make([]opts.BarData, len(tr.Values))
		for j, v := range tr.Values {
			data[j] = opts.BarData{Value: v}
		}
		bar.AddSeries(tr.Name, data,
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: paletteColor(f.Palette, i)}),
		)
	}
	return bar
}

func paletteColor(palette []string, i int) string {
	if len(palette) == 0 {
		palette = PaletteDefault
	}
	return palette[i%len(palette)]
}
