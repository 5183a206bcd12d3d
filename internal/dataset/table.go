// Package dataset holds the precomputed vocalization table. A Table is built
// once at startup and never written again, so it is safe to share between
// any number of concurrent readers.
package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrUnknownField is returned when a caller names a column the table does
// not carry as a categorical field.
var ErrUnknownField = errors.New("unknown field")

// Extent is the closed [Min, Max] interval of one coordinate.
type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Table is an immutable columnar view of the dataset.
type Table struct {
	coords   [3][]float64
	cats     map[Field][]string
	hasAudio []bool
	hasImage []bool

	extents [3]Extent
	byFile  map[string]int
}

func newTable(records []Record) *Table {
	n := len(records)
	t := &Table{
		cats:     make(map[Field][]string, len(categoricalFields)),
		hasAudio: make([]bool, n),
		hasImage: make([]bool, n),
		byFile:   make(map[string]int, n),
	}
	for d := range t.coords {
		t.coords[d] = make([]float64, n)
	}
	for _, f := range categoricalFields {
		t.cats[f] = make([]string, n)
	}

	for i, r := range records {
		t.coords[DimX][i] = r.UMAP1
		t.coords[DimY][i] = r.UMAP2
		t.coords[DimZ][i] = r.UMAP3
		t.cats[FieldSubject][i] = r.Subject
		t.cats[FieldContext][i] = r.Context
		t.cats[FieldContextComplet][i] = r.ContextComplet
		t.cats[FieldContextGeneral][i] = r.ContextGeneral
		t.cats[FieldValence][i] = r.Valence
		t.cats[FieldGeneralArousal][i] = r.GeneralArousal
		t.cats[FieldValenceArousalRefined][i] = r.ValenceArousalRefined
		t.cats[FieldAgeClass][i] = r.AgeClass
		t.cats[FieldPlayback][i] = r.Playback
		t.cats[FieldFile][i] = r.File
		t.hasAudio[i] = r.HasAudio
		t.hasImage[i] = r.HasImage

		// first row wins on duplicate filenames
		if _, dup := t.byFile[r.File]; !dup {
			t.byFile[r.File] = i
		}
	}

	if n > 0 {
		for d, col := range t.coords {
			t.extents[d] = Extent{Min: floats.Min(col), Max: floats.Max(col)}
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.hasAudio)
}

// Row materialises row i. It panics if i is out of range, like a slice index.
func (t *Table) Row(i int) Record {
	return Record{
		UMAP1:                 t.coords[DimX][i],
		UMAP2:                 t.coords[DimY][i],
		UMAP3:                 t.coords[DimZ][i],
		Subject:               t.cats[FieldSubject][i],
		Context:               t.cats[FieldContext][i],
		ContextComplet:        t.cats[FieldContextComplet][i],
		ContextGeneral:        t.cats[FieldContextGeneral][i],
		Valence:               t.cats[FieldValence][i],
		GeneralArousal:        t.cats[FieldGeneralArousal][i],
		ValenceArousalRefined: t.cats[FieldValenceArousalRefined][i],
		AgeClass:              t.cats[FieldAgeClass][i],
		Playback:              t.cats[FieldPlayback][i],
		File:                  t.cats[FieldFile][i],
		HasAudio:              t.hasAudio[i],
		HasImage:              t.hasImage[i],
	}
}

// Each calls fn for every row in file order until fn returns false.
func (t *Table) Each(fn func(i int, r Record) bool) {
	for i := 0; i < t.Len(); i++ {
		if !fn(i, t.Row(i)) {
			return
		}
	}
}

// HasField reports whether f is a categorical column of the table.
func (t *Table) HasField(f Field) bool {
	_, ok := t.cats[f]
	return ok
}

// Value returns the categorical value of field f in row i.
func (t *Table) Value(i int, f Field) (string, error) {
	col, ok := t.cats[f]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return col[i], nil
}

// Coord returns coordinate d of row i.
func (t *Table) Coord(i int, d Dim) float64 {
	return t.coords[d][i]
}

// Extent returns the global min and max of coordinate d across every row.
// An empty table has a zero extent.
func (t *Table) Extent(d Dim) Extent {
	return t.extents[d]
}

// Lookup finds the row whose file column equals file.
func (t *Table) Lookup(file string) (Record, bool) {
	i, ok := t.byFile[file]
	if !ok {
		return Record{}, false
	}
	return t.Row(i), true
}

// Categories returns the distinct values of f in first-encountered order.
func (t *Table) Categories(f Field) ([]string, error) {
	col, ok := t.cats[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	seen := make(map[string]struct{})
	var out []string
	for _, v := range col {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Count returns how many rows have f equal to value.
func (t *Table) Count(f Field, value string) int {
	n := 0
	for _, v := range t.cats[f] {
		if v == value {
			n++
		}
	}
	return n
}

// AudioCount returns the number of rows flagged with an audio clip.
func (t *Table) AudioCount() int {
	n := 0
	for _, ok := range t.hasAudio {
		if ok {
			n++
		}
	}
	return n
}
