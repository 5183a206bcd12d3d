// Package projection draws a flat PNG snapshot of a scene along one of the
// three coordinate planes.
package projection

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/acoustic.space/internal/palette"
	"github.com/banshee-data/acoustic.space/internal/render"
)

// ErrInvalidPlane is returned for a plane other than xy, xz or yz.
var ErrInvalidPlane = errors.New("invalid plane")

// Plane names the pair of scene axes that are kept.
type Plane string

const (
	PlaneXY Plane = "xy"
	PlaneXZ Plane = "xz"
	PlaneYZ Plane = "yz"
)

// ParsePlane validates s; an empty string selects PlaneXY.
func ParsePlane(s string) (Plane, error) {
	switch p := Plane(s); p {
	case "":
		return PlaneXY, nil
	case PlaneXY, PlaneXZ, PlaneYZ:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPlane, s)
}

// axes returns the scene axis indices kept by p.
func (p Plane) axes() (int, int) {
	switch p {
	case PlaneXZ:
		return 0, 2
	case PlaneYZ:
		return 1, 2
	default:
		return 0, 1
	}
}

func pick(pt render.Point, axis int) float64 {
	switch axis {
	case 1:
		return pt.Y
	case 2:
		return pt.Z
	default:
		return pt.X
	}
}

// Default snapshot size.
const (
	Width  = 8 * vg.Inch
	Height = 8 * vg.Inch
)

// Plot builds the projection of s onto p. Axis limits come from the scene,
// so a highlighted snapshot is framed exactly like the full one.
func Plot(s render.Scene, p Plane) (*plot.Plot, error) {
	a, b := p.axes()

	pl := plot.New()
	pl.Title.Text = s.Title
	pl.X.Label.Text = s.Axes[a].Title
	pl.Y.Label.Text = s.Axes[b].Title
	pl.X.Min, pl.X.Max = s.Axes[a].Range[0], s.Axes[a].Range[1]
	pl.Y.Min, pl.Y.Max = s.Axes[b].Range[0], s.Axes[b].Range[1]
	pl.Add(plotter.NewGrid())
	pl.Legend.Top = true

	radius := vg.Points(float64(s.Marker.Size))
	for _, g := range s.Groups {
		if len(g.Points) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(g.Points))
		for i, pt := range g.Points {
			pts[i] = plotter.XY{X: pick(pt, a), Y: pick(pt, b)}
		}

		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter for %s: %w", g.Category, err)
		}
		c, err := palette.RGBA(g.Color, s.Marker.Opacity)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle = draw.GlyphStyle{Color: c, Radius: radius, Shape: draw.CircleGlyph{}}
		pl.Add(sc)
		pl.Legend.Add(g.Label, sc)
	}
	return pl, nil
}

// WritePNG renders the projection of s onto p as a PNG to w.
func WritePNG(w io.Writer, s render.Scene, p Plane) error {
	pl, err := Plot(s, p)
	if err != nil {
		return err
	}
	pl.BackgroundColor = color.White

	wt, err := pl.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("failed to create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}
