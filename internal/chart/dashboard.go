package chart

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/banshee-data/acoustic.space/internal/assets"
	"github.com/banshee-data/acoustic.space/internal/dataset"
	"github.com/banshee-data/acoustic.space/internal/render"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// Share is one entry of the valence-arousal distribution under the chart.
type Share struct {
	Label string
	Count int
}

// Dashboard is the data behind the single dashboard page: the control
// surface in its initial state, the chart iframe and the media panel.
type Dashboard struct {
	Title            string
	ChartID          string
	ChartURL         string
	ColorBy          string
	ColorByOptions   []render.Option
	HighlightVisible bool
	HighlightOptions []render.Option
	PointSize        int
	MinPointSize     int
	MaxPointSize     int
	Opacity          float64
	MinOpacity       float64
	MaxOpacity       float64
	Initial          assets.Selection
	Summary          dataset.Summary
	Distribution     []Share
}

// NewDashboard prepares the page for t with controls c as the initial state.
func NewDashboard(t *dataset.Table, c render.Controls) Dashboard {
	opts := render.HighlightOptions(t, c.ColorBy)
	summary := t.Summary()
	shares := make([]Share, 0, len(summary.Distribution))
	for _, d := range summary.Distribution {
		shares = append(shares, Share{Label: render.CategoryLabel(d.Category), Count: d.Count})
	}
	return Dashboard{
		Title:            "Bonobo Acoustic Space",
		ChartID:          ChartID,
		ChartURL:         "/chart?" + c.Values().Encode(),
		ColorBy:          string(c.ColorBy),
		ColorByOptions:   render.ColorByOptions,
		HighlightVisible: len(opts) > 0,
		HighlightOptions: opts,
		PointSize:        c.PointSize,
		MinPointSize:     render.MinPointSize,
		MaxPointSize:     render.MaxPointSize,
		Opacity:          c.Opacity,
		MinOpacity:       render.MinOpacity,
		MaxOpacity:       render.MaxOpacity,
		Initial:          assets.Initial(),
		Summary:          summary,
		Distribution:     shares,
	}
}

// Execute writes the dashboard page to w.
func (d Dashboard) Execute(w io.Writer) error {
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, d); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
