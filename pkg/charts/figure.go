package charts

type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
	KindBox     Kind = "box"
	KindBar     Kind = "bar"
)

// Figure is a renderer-neutral chart description. The JSON form is what the
// dashboard client draws; echarts.go and png.go render the same value server side.
type Figure struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	XTitle     string   `json:"x_title,omitempty"`
	YTitle     string   `json:"y_title,omitempty"`
	ColorTitle string   `json:"color_title,omitempty"`
	BarMode    string   `json:"bar_mode,omitempty"`
	Palette    []string `json:"palette,omitempty"`
	ColorScale []string `json:"color_scale,omitempty"`
	Traces     []Trace  `json:"traces"`
}

// Trace is one series. Which fields are set depends on the figure kind:
// pie uses Labels/Values, scatter X/Y (+Color for a continuous scale),
// box Y samples + Box, bar Labels/Values.
type Trace struct {
	Name   string    `json:"name"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
	X      []float64 `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	Color  []float64 `json:"color,omitempty"`
	Box    *BoxStats `json:"box,omitempty"`
}

// BoxStats are Tukey box plot statistics. Whiskers end at the most extreme samples
// within 1.5 IQR of the box.
type BoxStats struct {
	LowerWhisker float64   `json:"lower_whisker"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// PointCount is the number of marks the figure draws.
func (f *Figure) PointCount() int {
	n := 0
	for _, tr := range f.Traces {
		switch f.Kind {
		case KindScatter:
			n += len(tr.X)
		case KindBox:
			n += len(tr.Y)
		default:
			n += len(tr.Values)
		}
	}
	return n
}

// Palettes and scales, as hex strings.
var (
	PalettePastel = []string{
		"#66C5CC", "#F6CF71", "#F89C74", "#DCB0F2", "#87C55F", "#9EB9F3",
		"#FE88B1", "#C9DB74", "#8BE0A4", "#B497E7", "#B3B3B3",
	}
	PaletteSet2 = []string{
		"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3", "#A6D854", "#FFD92F", "#E5C494", "#B3B3B3",
	}
	PaletteDefault = []string{
		"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
		"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
	}
	ScalePlasma = []string{
		"#0D0887", "#46039F", "#7201A8", "#9C179E", "#BD3786",
		"#D8576B", "#ED7953", "#FB9F3A", "#FDCA26", "#F0F921",
	}
)
