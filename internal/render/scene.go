// Package render maps dashboard control state onto a 3D scatter scene.
//
// Map is a pure function of the table and the controls: it never mutates
// the table and holds no state between calls.
package render

import (
	"fmt"

	"github.com/banshee-data/acoustic.space/internal/dataset"
	"github.com/banshee-data/acoustic.space/internal/palette"
)

// Styling constants shared by every scene.
const (
	AxisPadding = 0.1
	Background  = "#1a1a1a"
	GridColor   = "rgba(255,255,255,0.1)"
	CameraEye   = 1.8
)

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Tooltip is the hover payload of one point.
type Tooltip struct {
	Subject        string `json:"subject"`
	ContextGeneral string `json:"context_general"`
	ContextComplet string `json:"context_complet"`
	ValenceArousal string `json:"valence_arousal_refined"`
}

// Point is one rendered vocalization. File, HasAudio and HasImage form the
// click tuple handed to the asset resolver.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	File     string  `json:"file"`
	HasAudio bool    `json:"has_audio"`
	HasImage bool    `json:"has_image"`
	Tooltip  Tooltip `json:"tooltip"`
}

// Group is every point sharing one category of the colour field.
type Group struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Points   []Point `json:"points"`
}

// Axis describes one scene axis.
type Axis struct {
	Title string     `json:"title"`
	Range [2]float64 `json:"range"`
}

// Marker is applied uniformly to every point.
type Marker struct {
	Size    int     `json:"size"`
	Opacity float64 `json:"opacity"`
}

// Scene is the renderable description of the chart.
type Scene struct {
	Title      string  `json:"title"`
	ColorBy    string  `json:"color_by"`
	ColorLabel string  `json:"color_label"`
	Groups     []Group `json:"groups"`
	Axes       [3]Axis `json:"axes"`
	CameraEye  Vec3    `json:"camera_eye"`
	Marker     Marker  `json:"marker"`
	Background string  `json:"background"`
	GridColor  string  `json:"grid_color"`

	// HighlightVisible and HighlightOptions are derived from ColorBy: the
	// selector only exists while colouring by valence-arousal.
	HighlightVisible bool     `json:"highlight_visible"`
	HighlightOptions []Option `json:"highlight_options"`
}

// PointCount returns the number of rendered points across all groups.
func (s Scene) PointCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Points)
	}
	return n
}

// Map builds the scene for controls c over t.
func Map(t *dataset.Table, c Controls) (Scene, error) {
	if err := c.Validate(); err != nil {
		return Scene{}, err
	}
	field, err := ParseColorBy(string(c.ColorBy))
	if err != nil {
		return Scene{}, err
	}
	c.ColorBy = field

	order, err := groupOrder(t, field)
	if err != nil {
		return Scene{}, err
	}
	colors := palette.Assign(field, order)

	buckets := make(map[string][]Point, len(order))
	for i := 0; i < t.Len(); i++ {
		cat, err := t.Value(i, field)
		if err != nil {
			return Scene{}, err
		}
		r := t.Row(i)
		buckets[cat] = append(buckets[cat], Point{
			X:        r.Coord(dataset.DimX),
			Y:        r.Coord(dataset.DimY),
			Z:        r.Coord(dataset.DimZ),
			File:     r.File,
			HasAudio: r.HasAudio,
			HasImage: r.HasImage,
			Tooltip: Tooltip{
				Subject:        r.Subject,
				ContextGeneral: r.ContextGeneral,
				ContextComplet: r.ContextComplet,
				ValenceArousal: r.ValenceArousalRefined,
			},
		})
	}

	scene := Scene{
		Title:      fmt.Sprintf("3D Acoustic Feature Space - %s", fieldLabel(string(field))),
		ColorBy:    string(field),
		ColorLabel: fieldLabel(string(field)),
		Groups:     make([]Group, 0, len(order)),
		CameraEye:  Vec3{X: CameraEye, Y: CameraEye, Z: CameraEye},
		Marker:     Marker{Size: c.PointSize, Opacity: c.Opacity},
		Background: Background,
		GridColor:  GridColor,
	}

	for _, cat := range order {
		if c.highlighting() && cat != c.Highlight {
			continue
		}
		scene.Groups = append(scene.Groups, Group{
			Category: cat,
			Label:    Label(cat),
			Color:    colors[cat],
			Points:   buckets[cat],
		})
	}

	// ranges come from the whole table so toggling highlight never reframes
	for d := range scene.Axes {
		ext := t.Extent(dataset.Dim(d))
		scene.Axes[d] = Axis{
			Title: fmt.Sprintf("Dimension %d", d+1),
			Range: [2]float64{ext.Min - AxisPadding, ext.Max + AxisPadding},
		}
	}

	scene.HighlightOptions = HighlightOptions(t, field)
	scene.HighlightVisible = len(scene.HighlightOptions) > 0
	return scene, nil
}

// groupOrder lists the categories of field present in t. Fields with a fixed
// display order follow it; anything outside that order is appended in
// encounter order.
func groupOrder(t *dataset.Table, field dataset.Field) ([]string, error) {
	encountered, err := t.Categories(field)
	if err != nil {
		return nil, err
	}
	fixed := palette.Order(field)
	if fixed == nil {
		return encountered, nil
	}

	present := make(map[string]bool, len(encountered))
	for _, c := range encountered {
		present[c] = true
	}
	out := make([]string, 0, len(encountered))
	inOrder := make(map[string]bool, len(fixed))
	for _, c := range fixed {
		inOrder[c] = true
		if present[c] {
			out = append(out, c)
		}
	}
	for _, c := range encountered {
		if !inOrder[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

// HighlightOptions returns the highlight selector entries for field: the
// "All" sentinel followed by each valence-arousal class present in t, or
// nothing when field is not the valence-arousal field.
func HighlightOptions(t *dataset.Table, field dataset.Field) []Option {
	if field != dataset.FieldValenceArousalRefined {
		return []Option{}
	}
	opts := []Option{{Label: "All Categories", Value: HighlightAll}}
	for _, cat := range dataset.RefinedOrder {
		if t.Count(dataset.FieldValenceArousalRefined, cat) == 0 {
			continue
		}
		opts = append(opts, Option{Label: CategoryLabel(cat), Value: cat})
	}
	return opts
}
