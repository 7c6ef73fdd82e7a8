package charts

import (
	"survey-dashboard-be/pkg/table"
)

// View is the content of the chart region: a figure, or the placeholder text
// of a view whose columns are missing.
type View struct {
	Tab         TabID   `json:"tab"`
	Figure      *Figure `json:"figure,omitempty"`
	Placeholder string  `json:"placeholder,omitempty"`
}

func (v View) Available() bool {
	return v.Figure != nil
}

// Dispatch evaluates the view of tab against t. A view whose required columns are
// not all present yields its placeholder, never a partial figure.
func Dispatch(tab TabID, t *table.Table) (View, error) {
	spec, err := Lookup(tab)
	if err != nil {
		return View{}, err
	}
	if !t.Has(spec.Required...) {
		return View{Tab: tab, Placeholder: spec.Placeholder}, nil
	}
	return View{Tab: tab, Figure: spec.build(t)}, nil
}

func buildRatingPie(t *table.Table) *Figure {
	idx := t.Index(ColRating)
	var labels []string
	counts := map[string]float64{}
	for _, row := range t.Rows {
		if table.IsMissing(row[idx]) {
			continue
		}
		label := table.Format(row[idx])
		if _, seen := counts[label]; !seen {
			labels = append(labels, label)
		}
		counts[label]++
	}

	values := make([]float64, len(labels))
	for i, l := range labels {
		values[i] = counts[l]
	}

	return &Figure{
		Kind:    KindPie,
		Title:   "Rating of Online Class Experience",
		Palette: PalettePastel,
		Traces:  []Trace{{Name: ColRating, Labels: labels, Values: values}},
	}
}

func buildSelfStudyScatter(t *table.Table) *Figure {
	fig := &Figure{
		Kind:       KindScatter,
		Title:      "Self Study vs Social Media",
		XTitle:     "Time Spent on Self Study (hours)",
		YTitle:     "Time Spent on Social Media (hours)",
		ColorTitle: ColFitness,
		ColorScale: ScalePlasma,
	}
	fig.Traces = scatterTraces(t, ColSelfStudy, ColSocialMedia, ColFitness)
	if !continuous(fig.Traces) {
		fig.ColorScale = nil
		fig.Palette = PaletteDefault
	}
	return fig
}

func buildFitnessScatter(t *table.Table) *Figure {
	fig := &Figure{
		Kind:       KindScatter,
		Title:      "Time spent on fitness, Age of Subject, and Health Issues",
		XTitle:     "Age of Subject (years)",
		YTitle:     "Time spent on fitness",
		ColorTitle: ColHealthIssue,
		Palette:    PaletteSet2,
	}
	fig.Traces = scatterTraces(t, ColAge, ColFitness, ColHealthIssue)
	if continuous(fig.Traces) {
		fig.Palette = nil
		fig.ColorScale = ScalePlasma
	}
	return fig
}

func buildMediumBox(t *table.Table) *Figure {
	mi, yi := t.Index(ColMedium), t.Index(ColOnlineClass)

	var order []string
	samples := map[string][]float64{}
	for _, row := range t.Rows {
		if table.IsMissing(row[mi]) {
			continue
		}
		medium := table.Format(row[mi])
		if _, seen := samples[medium]; !seen {
			order = append(order, medium)
			samples[medium] = nil
		}
		if y, ok := table.ToFloat(row[yi]); ok {
			samples[medium] = append(samples[medium], y)
		}
	}

	fig := &Figure{
		Kind:       KindBox,
		Title:      "Time Spent on Online Class vs Medium for Online Class",
		XTitle:     "Medium for Online Class",
		YTitle:     "Time Spent on Online Class (hours)",
		ColorTitle: ColMedium,
		Palette:    PaletteDefault,
	}
	for _, m := range order {
		fig.Traces = append(fig.Traces, Trace{
			Name:   m,
			Labels: []string{m},
			Y:      samples[m],
			Box:    boxStats(samples[m]),
		})
	}
	return fig
}

func buildSleepBars(t *table.Table) *Figure {
	pi, si, mi := t.Index(ColPlatform), t.Index(ColSleep), t.Index(ColSocialMedia)

	type group struct {
		sleep, social []float64
	}
	var order []string
	groups := map[string]*group{}
	for _, row := range t.Rows {
		if table.IsMissing(row[pi]) {
			continue
		}
		platform := table.Format(row[pi])
		g, ok := groups[platform]
		if !ok {
			g = &group{}
			groups[platform] = g
			order = append(order, platform)
		}
		if v, ok := table.ToFloat(row[si]); ok {
			g.sleep = append(g.sleep, v)
		}
		if v, ok := table.ToFloat(row[mi]); ok {
			g.social = append(g.social, v)
		}
	}

	fig := &Figure{
		Kind:    KindBar,
		Title:   "Average Time Spent on Sleep vs Social Media by Platform",
		XTitle:  "Activity",
		YTitle:  "Average Time Spent (hours)",
		BarMode: "group",
		Palette: PaletteDefault,
	}
	for _, p := range order {
		g := groups[p]
		fig.Traces = append(fig.Traces, Trace{
			Name:   p,
			Labels: []string{ColSleep, ColSocialMedia},
			Values: []float64{mean(g.sleep), mean(g.social)},
		})
	}
	return fig
}

// scatterTraces builds one trace with a continuous color channel when every color
// cell is numeric, otherwise one trace per distinct color value in first-seen order.
// Rows whose x or y is not numeric are skipped.
func scatterTraces(t *table.Table, xCol, yCol, colorCol string) []Trace {
	xi, yi, ci := t.Index(xCol), t.Index(yCol), t.Index(colorCol)

	numericColor := true
	for _, row := range t.Rows {
		if _, ok := table.ToFloat(row[ci]); !ok {
			numericColor = false
			break
		}
	}

	if numericColor {
		tr := Trace{X: []float64{}, Y: []float64{}, Color: []float64{}}
		for _, row := range t.Rows {
			x, okX := table.ToFloat(row[xi])
			y, okY := table.ToFloat(row[yi])
			if !okX || !okY {
				continue
			}
			c, _ := table.ToFloat(row[ci])
			tr.X = append(tr.X, x)
			tr.Y = append(tr.Y, y)
			tr.Color = append(tr.Color, c)
		}
		return []Trace{tr}
	}

	var order []string
	byColor := map[string]*Trace{}
	for _, row := range t.Rows {
		x, okX := table.ToFloat(row[xi])
		y, okY := table.ToFloat(row[yi])
		if !okX || !okY {
			continue
		}
		key := table.Format(row[ci])
		tr, ok := byColor[key]
		if !ok {
			tr = &Trace{Name: key}
			byColor[key] = tr
			order = append(order, key)
		}
		tr.X = append(tr.X, x)
		tr.Y = append(tr.Y, y)
	}

	out := make([]Trace, 0, len(order))
	for _, k := range order {
		out = append(out, *byColor[k])
	}
	return out
}

func continuous(traces []Trace) bool {
	return len(traces) == 1 && traces[0].Color != nil
}
