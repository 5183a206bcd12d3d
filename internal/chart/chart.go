// Package chart renders a render.Scene as a go-echarts Scatter3D page.
package chart

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/acoustic.space/internal/palette"
	"github.com/banshee-data/acoustic.space/internal/render"
)

// ChartID is the DOM id of the chart container. The dashboard page uses it
// to reach the echarts instance inside the chart iframe.
const ChartID = "acoustic-space"

// DefaultAssetsHost serves the echarts JS bundles.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// tooltipFormatter renders the hover card: the file as a bold title, then
// the labelled tooltip fields stored after the coordinates in each datum.
const tooltipFormatter = "function (params) {" +
	"var v = params.value || [];" +
	"return '<b>' + params.name + '</b><br><br>' +" +
	"'<b>Subject:</b> ' + v[3] + '<br>' +" +
	"'<b>Context General:</b> ' + v[4] + '<br>' +" +
	"'<b>Context:</b> ' + v[5] + '<br>' +" +
	"'<b>Valence-Arousal:</b> ' + v[6];" +
	"}"

// Options tune page-level rendering that is not part of the scene itself.
type Options struct {
	AssetsHost string
	Width      string
	Height     string
}

func (o Options) withDefaults() Options {
	if o.AssetsHost == "" {
		o.AssetsHost = DefaultAssetsHost
	}
	if o.Width == "" {
		o.Width = "100%"
	}
	if o.Height == "" {
		o.Height = "700px"
	}
	return o
}

// Build converts s into a Scatter3D chart with one series per group.
func Build(s render.Scene, o Options) *charts.Scatter3D {
	o = o.withDefaults()

	c := charts.NewScatter3D()
	c.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       s.Title,
			ChartID:         ChartID,
			Theme:           "dark",
			BackgroundColor: s.Background,
			Width:           o.Width,
			Height:          o.Height,
			AssetsHost:      o.AssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{Title: s.Title, Subtitle: fmt.Sprintf("%d vocalizations", s.PointCount())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: opts.FuncOpts(tooltipFormatter)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "40px"}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: s.Axes[0].Title, Show: opts.Bool(true), Min: s.Axes[0].Range[0], Max: s.Axes[0].Range[1]}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: s.Axes[1].Title, Show: opts.Bool(true), Min: s.Axes[1].Range[0], Max: s.Axes[1].Range[1]}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: s.Axes[2].Title, Show: opts.Bool(true), Min: s.Axes[2].Range[0], Max: s.Axes[2].Range[1]}),
	)

	for _, g := range s.Groups {
		c.AddSeries(g.Label, groupData(g, s.Marker.Opacity),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: float32(s.Marker.Size)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: g.Color}),
		)
	}
	return c
}

// groupData builds the datum list of one series. Name carries the file and
// the last two values carry the asset flags, so a click hands the whole
// (file, has_audio, has_image) tuple to the page. Opacity is folded into
// the colour so every point of every series gets the same value.
func groupData(g render.Group, opacity float64) []opts.Chart3DData {
	style := &opts.ItemStyle{Color: palette.CSS(g.Color, opacity)}
	data := make([]opts.Chart3DData, 0, len(g.Points))
	for _, p := range g.Points {
		data = append(data, opts.Chart3DData{
			Name: p.File,
			Value: []interface{}{
				p.X, p.Y, p.Z,
				p.Tooltip.Subject,
				p.Tooltip.ContextGeneral,
				p.Tooltip.ContextComplet,
				p.Tooltip.ValenceArousal,
				p.HasAudio,
				p.HasImage,
			},
			ItemStyle: style,
		})
	}
	return data
}

// Render writes the chart page for s to w.
func Render(w io.Writer, s render.Scene, o Options) error {
	var buf bytes.Buffer
	if err := Build(s, o).Render(&buf); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
