package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/acoustic.space/internal/monitoring"
)

// DefaultFilename is the dataset file shipped next to the binary.
const DefaultFilename = "data_precomputed.csv"

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmpty is returned for a file with no header row.
	ErrEmpty = errors.New("dataset is empty")
)

// Load reads the dataset at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	monitoring.Logf("loaded %d vocalizations from %s", t.Len(), path)
	return t, nil
}

// Parse reads a dataset in CSV form. The header must name every column in
// RequiredColumns; extra columns (such as a pandas index) are ignored.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return newTable(records), nil
}

// indexHeader maps each required column to its position in header.
func indexHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (Record, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		rec Record
		err error
	)
	coords := []struct {
		col string
		dst *float64
	}{
		{ColumnUMAP1, &rec.UMAP1},
		{ColumnUMAP2, &rec.UMAP2},
		{ColumnUMAP3, &rec.UMAP3},
	}
	for _, c := range coords {
		if *c.dst, err = strconv.ParseFloat(cell(c.col), 64); err != nil {
			return Record{}, fmt.Errorf("invalid %s %q: %w", c.col, cell(c.col), err)
		}
	}

	if rec.HasAudio, err = parseFlag(cell(ColumnHasAudio)); err != nil {
		return Record{}, fmt.Errorf("invalid %s: %w", ColumnHasAudio, err)
	}
	if rec.HasImage, err = parseFlag(cell(ColumnHasImage)); err != nil {
		return Record{}, fmt.Errorf("invalid %s: %w", ColumnHasImage, err)
	}

	rec.Subject = cell(string(FieldSubject))
	rec.Context = cell(string(FieldContext))
	rec.ContextComplet = cell(string(FieldContextComplet))
	rec.ContextGeneral = cell(string(FieldContextGeneral))
	rec.Valence = cell(string(FieldValence))
	rec.GeneralArousal = cell(string(FieldGeneralArousal))
	rec.ValenceArousalRefined = cell(string(FieldValenceArousalRefined))
	rec.AgeClass = cell(string(FieldAgeClass))
	rec.Playback = cell(string(FieldPlayback))
	rec.File = cell(string(FieldFile))
	return rec, nil
}

// parseFlag accepts the spellings pandas and hand-edited files produce.
func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, nil
	case "no", "n", "":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("not a boolean: %q", s)
	}
	return v, nil
}
