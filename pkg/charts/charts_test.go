package charts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-dashboard-be/pkg/table"
)

func surveyTable() *table.Table {
	t := table.New([]string{
		ColRating, ColSelfStudy, ColSocialMedia, ColFitness, ColAge,
		ColHealthIssue, ColOnlineClass, ColMedium, ColSleep, ColPlatform,
	})
	rows := [][]any{
		{"Good", 2.0, 3.0, 1.0, 20.0, "NO", 4.0, "Laptop/Desktop", 7.0, "Instagram"},
		{"Excellent", 4.0, 1.0, 0.5, 25.0, "YES", 2.0, "Smartphone", 8.0, "WhatsApp"},
		{"Good", 1.0, 5.0, 2.0, 30.0, "NO", 3.0, "Laptop/Desktop", 6.0, "Instagram"},
	}
	for _, r := range rows {
		if err := t.Append(r); err != nil {
			panic(err)
		}
	}
	return t
}

func TestDispatchPlaceholders(t *testing.T) {
	empty := table.Empty()
	for _, spec := range Specs {
		t.Run(string(spec.Tab), func(t *testing.T) {
			v, err := Dispatch(spec.Tab, empty)
			require.NoError(t, err)
			assert.False(t, v.Available())
			assert.Equal(t, spec.Placeholder, v.Placeholder)
		})
	}
}

func TestDispatchMissingOneColumn(t *testing.T) {
	tbl := table.New([]string{ColSelfStudy, ColSocialMedia})
	require.NoError(t, tbl.Append([]any{1.0, 2.0}))

	v, err := Dispatch(TabSelfStudy, tbl)
	require.NoError(t, err)
	assert.Nil(t, v.Figure)
	assert.Equal(t, "No data available for Self Study vs Social Media.", v.Placeholder)
}

func TestDispatchUnknownTab(t *testing.T) {
	_, err := Dispatch("tab-9", surveyTable())
	assert.ErrorIs(t, err, ErrUnknownTab)

	_, err = ParseTab("overview")
	assert.ErrorIs(t, err, ErrUnknownTab)

	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabOnlineClass, tab)
}

func TestRatingPie(t *testing.T) {
	v, err := Dispatch(TabOnlineClass, surveyTable())
	require.NoError(t, err)
	require.True(t, v.Available())

	f := v.Figure
	assert.Equal(t, KindPie, f.Kind)
	assert.Equal(t, "Rating of Online Class Experience", f.Title)
	require.Len(t, f.Traces, 1)
	assert.Equal(t, []string{"Good", "Excellent"}, f.Traces[0].Labels)
	assert.Equal(t, []float64{2, 1}, f.Traces[0].Values)
}

func TestFitnessScatterByHealthIssue(t *testing.T) {
	tbl := table.New([]string{ColAge, ColFitness, ColHealthIssue})
	require.NoError(t, tbl.Append([]any{20.0, 1.0, "No"}))
	require.NoError(t, tbl.Append([]any{30.0, 2.0, "Yes"}))

	v, err := Dispatch(TabFitness, tbl)
	require.NoError(t, err)
	require.True(t, v.Available())

	f := v.Figure
	assert.Equal(t, KindScatter, f.Kind)
	assert.Equal(t, 2, f.PointCount())
	require.Len(t, f.Traces, 2)
	assert.Equal(t, "No", f.Traces[0].Name)
	assert.Equal(t, []float64{20}, f.Traces[0].X)
	assert.Equal(t, []float64{1}, f.Traces[0].Y)
	assert.Equal(t, "Yes", f.Traces[1].Name)
	assert.Equal(t, PaletteSet2, f.Palette)
}

func TestSelfStudyScatterContinuousColor(t *testing.T) {
	v, err := Dispatch(TabSelfStudy, surveyTable())
	require.NoError(t, err)

	f := v.Figure
	require.Len(t, f.Traces, 1)
	assert.Equal(t, []float64{1, 0.5, 2}, f.Traces[0].Color)
	assert.Equal(t, ScalePlasma, f.ColorScale)
	assert.Equal(t, 3, f.PointCount())
}

func TestScatterSkipsNonNumericPoints(t *testing.T) {
	tbl := table.New([]string{ColAge, ColFitness, ColHealthIssue})
	require.NoError(t, tbl.Append([]any{20.0, 1.0, "No"}))
	require.NoError(t, tbl.Append([]any{"unknown", 2.0, "No"}))

	v, err := Dispatch(TabFitness, tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Figure.PointCount())
}

func TestMediumBox(t *testing.T) {
	v, err := Dispatch(TabMedium, surveyTable())
	require.NoError(t, err)

	f := v.Figure
	assert.Equal(t, KindBox, f.Kind)
	require.Len(t, f.Traces, 2)
	assert.Equal(t, "Laptop/Desktop", f.Traces[0].Name)
	assert.Equal(t, []float64{4, 3}, f.Traces[0].Y)
	assert.Equal(t, 3.5, f.Traces[0].Box.Median)
	assert.Equal(t, "Smartphone", f.Traces[1].Name)
}

func TestMediumBoxColorsPerMedium(t *testing.T) {
	v, err := Dispatch(TabMedium, surveyTable())
	require.NoError(t, err)

	bp := echartsBox(v.Figure)
	require.Len(t, bp.MultiSeries, 1)
	data, ok := bp.MultiSeries[0].Data.([]opts.BoxPlotData)
	require.True(t, ok)
	require.Len(t, data, 2)

	for i, d := range data {
		require.NotNil(t, d.ItemStyle)
		assert.Equal(t, paletteColor(v.Figure.Palette, i), d.ItemStyle.Color)
	}
	assert.NotEqual(t, data[0].ItemStyle.Color, data[1].ItemStyle.Color)
}

func TestSleepBarsGroupMeans(t *testing.T) {
	v, err := Dispatch(TabSleep, surveyTable())
	require.NoError(t, err)

	f := v.Figure
	assert.Equal(t, KindBar, f.Kind)
	assert.Equal(t, "group", f.BarMode)
	require.Len(t, f.Traces, 2)

	assert.Equal(t, "Instagram", f.Traces[0].Name)
	assert.Equal(t, []string{ColSleep, ColSocialMedia}, f.Traces[0].Labels)
	assert.Equal(t, []float64{6.5, 4}, f.Traces[0].Values)
	assert.Equal(t, "WhatsApp", f.Traces[1].Name)
	assert.Equal(t, []float64{8, 1}, f.Traces[1].Values)
}

func TestBoxStats(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    BoxStats
	}{
		{
			name:    "odd count",
			samples: []float64{5, 1, 3, 2, 4},
			want:    BoxStats{LowerWhisker: 1, Q1: 2, Median: 3, Q3: 4, UpperWhisker: 5},
		},
		{
			name:    "single sample",
			samples: []float64{2},
			want:    BoxStats{LowerWhisker: 2, Q1: 2, Median: 2, Q3: 2, UpperWhisker: 2},
		},
		{
			name:    "outlier",
			samples: []float64{1, 2, 3, 4, 100},
			want:    BoxStats{LowerWhisker: 1, Q1: 2, Median: 3, Q3: 4, UpperWhisker: 4, Outliers: []float64{100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := boxStats(tt.samples)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}

	assert.Nil(t, boxStats(nil))
}

func TestTabs(t *testing.T) {
	tabs := Tabs("survey.csv")
	require.Len(t, tabs, 5)
	assert.Equal(t, "survey.csv - Online Class Experience", tabs[0].Label)
	assert.Equal(t, TabSleep, tabs[4].Value)
}

func TestRenderHTML(t *testing.T) {
	tbl := surveyTable()
	for _, spec := range Specs {
		t.Run(string(spec.Tab), func(t *testing.T) {
			v, err := Dispatch(spec.Tab, tbl)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, RenderHTML(v, &buf))
			assert.Contains(t, buf.String(), v.Figure.Title)
		})
	}
}

func TestRenderHTMLPlaceholder(t *testing.T) {
	v, err := Dispatch(TabMedium, table.Empty())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(v, &buf))
	assert.Contains(t, buf.String(), "No data available for Time Spent on Online Class vs Medium for Online Class.")
}

func TestRenderPNG(t *testing.T) {
	tbl := surveyTable()
	for _, spec := range Specs {
		t.Run(string(spec.Tab), func(t *testing.T) {
			v, err := Dispatch(spec.Tab, tbl)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, RenderPNG(v, &buf))
			assert.True(t, strings.HasPrefix(buf.String(), "\x89PNG"))
		})
	}

	v, err := Dispatch(TabOnlineClass, table.Empty())
	require.NoError(t, err)
	assert.ErrorIs(t, RenderPNG(v, &bytes.Buffer{}), ErrNoFigure)
}
