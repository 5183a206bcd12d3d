package render

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/banshee-data/acoustic.space/internal/dataset"
)

// ErrInvalidControls wraps every control validation failure.
var ErrInvalidControls = errors.New("invalid controls")

// HighlightAll is the highlight sentinel meaning "no filter".
const HighlightAll = "All"

// Slider bounds.
const (
	MinPointSize   = 1
	MaxPointSize   = 11
	MinOpacity     = 0.3
	MaxOpacity     = 1.0
	OpacityStep    = 0.1
	PointSizeStep  = 1
	opacityEpsilon = 1e-9
	stepEpsilon    = 1e-6
)

// Option is one entry of a selector.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ColorByOptions are the fields the dashboard can colour by, in menu order.
var ColorByOptions = []Option{
	{Label: "Arousal", Value: string(dataset.FieldGeneralArousal)},
	{Label: "Valence", Value: string(dataset.FieldValence)},
	{Label: "Valence-Arousal", Value: string(dataset.FieldValenceArousalRefined)},
	{Label: "Context Complet", Value: string(dataset.FieldContextComplet)},
	{Label: "Is playback?", Value: string(dataset.FieldPlayback)},
	{Label: "Age class", Value: string(dataset.FieldAgeClass)},
	{Label: "Subject", Value: string(dataset.FieldSubject)},
}

// Controls is the UI control state fed to Map.
type Controls struct {
	ColorBy   dataset.Field `json:"color_by"`
	PointSize int           `json:"point_size"`
	Opacity   float64       `json:"opacity"`
	Highlight string        `json:"highlight"`
}

// DefaultControls matches the dashboard's initial state.
func DefaultControls() Controls {
	return Controls{
		ColorBy:   dataset.FieldValenceArousalRefined,
		PointSize: 3,
		Opacity:   1.0,
		Highlight: HighlightAll,
	}
}

// ParseColorBy resolves a colour-by value case-insensitively, so the
// original "Playback" spelling is accepted.
func ParseColorBy(s string) (dataset.Field, error) {
	for _, o := range ColorByOptions {
		if strings.EqualFold(o.Value, strings.TrimSpace(s)) {
			return dataset.Field(o.Value), nil
		}
	}
	return "", fmt.Errorf("%w: unsupported color_by %q", ErrInvalidControls, s)
}

// Validate checks every control against its selector or slider bounds.
func (c Controls) Validate() error {
	if _, err := ParseColorBy(string(c.ColorBy)); err != nil {
		return err
	}
	if c.PointSize < MinPointSize || c.PointSize > MaxPointSize {
		return fmt.Errorf("%w: point_size must be between %d and %d, got %d",
			ErrInvalidControls, MinPointSize, MaxPointSize, c.PointSize)
	}
	if math.IsNaN(c.Opacity) || c.Opacity < MinOpacity-opacityEpsilon || c.Opacity > MaxOpacity+opacityEpsilon {
		return fmt.Errorf("%w: opacity must be between %.1f and %.1f, got %g",
			ErrInvalidControls, MinOpacity, MaxOpacity, c.Opacity)
	}
	if steps := c.Opacity / OpacityStep; math.Abs(steps-math.Round(steps)) > stepEpsilon {
		return fmt.Errorf("%w: opacity must be a multiple of %.1f, got %g",
			ErrInvalidControls, OpacityStep, c.Opacity)
	}
	return nil
}

// highlighting reports whether the highlight filter applies.
func (c Controls) highlighting() bool {
	return c.ColorBy == dataset.FieldValenceArousalRefined &&
		c.Highlight != "" && c.Highlight != HighlightAll
}

// ParseControls reads controls from query parameters. Absent keys keep
// their defaults. The raw opacity is validated first, then snapped to the
// slider step to drop float noise such as 0.30000000000000004.
func ParseControls(q url.Values) (Controls, error) {
	c := DefaultControls()

	if v := q.Get("color_by"); v != "" {
		f, err := ParseColorBy(v)
		if err != nil {
			return Controls{}, err
		}
		c.ColorBy = f
	}
	if v := q.Get("point_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Controls{}, fmt.Errorf("%w: point_size %q", ErrInvalidControls, v)
		}
		c.PointSize = n
	}
	if v := q.Get("opacity"); v != "" {
		o, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Controls{}, fmt.Errorf("%w: opacity %q", ErrInvalidControls, v)
		}
		c.Opacity = o
	}
	if v := q.Get("highlight"); v != "" {
		c.Highlight = v
	}

	if err := c.Validate(); err != nil {
		return Controls{}, err
	}
	c.Opacity = math.Round(c.Opacity/OpacityStep) / 10
	return c, nil
}

// Values encodes c as query parameters, the inverse of ParseControls.
func (c Controls) Values() url.Values {
	q := url.Values{}
	q.Set("color_by", string(c.ColorBy))
	q.Set("point_size", strconv.Itoa(c.PointSize))
	q.Set("opacity", strconv.FormatFloat(c.Opacity, 'f', 1, 64))
	if c.Highlight != "" {
		q.Set("highlight", c.Highlight)
	}
	return q
}
