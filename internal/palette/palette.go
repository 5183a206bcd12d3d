// Package palette holds the fixed category colours and the fallback
// sequence used for categories without one.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/banshee-data/acoustic.space/internal/dataset"
)

// Default is the qualitative sequence used for auto-assigned colours.
var Default = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

var fixed = map[dataset.Field]map[string]string{
	dataset.FieldValenceArousalRefined: {
		"positive_high": "#CA5A94",
		"positive_low":  "#D59428",
		"negative_high": "#176C92",
		"negative_low":  "#138866",
	},
	dataset.FieldValence: {
		"positive": "#669bbc",
		"negative": "#a06cd5",
	},
	dataset.FieldGeneralArousal: {
		"high": "#C33149",
		"low":  "#A8C256",
	},
	dataset.FieldPlayback: {
		"Yes": "#99e2b4",
		"No":  "#036666",
	},
}

// Fixed returns the registered colour of category within field.
func Fixed(field dataset.Field, category string) (string, bool) {
	m, ok := fixed[field]
	if !ok {
		return "", false
	}
	c, ok := m[category]
	return c, ok
}

// HasFixed reports whether field has a registered palette.
func HasFixed(field dataset.Field) bool {
	_, ok := fixed[field]
	return ok
}

// Order returns the fixed display order for field, or nil when categories
// are shown in encounter order.
func Order(field dataset.Field) []string {
	if field == dataset.FieldValenceArousalRefined {
		return dataset.RefinedOrder
	}
	return nil
}

// Assign maps each category (given in display order) to a colour. Fixed
// colours win; every other category takes the next entry of Default, so a
// field may mix fixed and auto colours. The sequence position counts every
// registered colour of the field, so the first unregistered category of a
// field with n fixed colours gets Default[n].
func Assign(field dataset.Field, categories []string) map[string]string {
	out := make(map[string]string, len(categories))
	next := len(fixed[field])
	for _, cat := range categories {
		if c, ok := Fixed(field, cat); ok {
			out[cat] = c
			continue
		}
		out[cat] = Default[next%len(Default)]
		next++
	}
	return out
}

// RGBA parses a "#rrggbb" colour and applies alpha in [0, 1].
func RGBA(hex string, alpha float64) (color.NRGBA, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(alpha*255 + 0.5),
	}, nil
}

// CSS renders hex with alpha as an rgba() string for chart item styles.
func CSS(hex string, alpha float64) string {
	c, err := RGBA(hex, alpha)
	if err != nil {
		return hex
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(alpha, 'f', -1, 64))
}
