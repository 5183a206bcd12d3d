package dataset

// Field names a categorical column of the dataset. The string value is the
// canonical (lower-case) CSV header.
type Field string

const (
	FieldSubject               Field = "subject"
	FieldContext               Field = "context"
	FieldContextComplet        Field = "context_complet"
	FieldContextGeneral        Field = "context_general"
	FieldValence               Field = "valence"
	FieldGeneralArousal        Field = "general_arousal"
	FieldValenceArousalRefined Field = "valence_arousal_refined"
	FieldAgeClass              Field = "age_class"
	FieldPlayback              Field = "playback"
	FieldFile                  Field = "file"
)

// Column headers that carry non-categorical values.
const (
	ColumnUMAP1    = "umap_1"
	ColumnUMAP2    = "umap_2"
	ColumnUMAP3    = "umap_3"
	ColumnHasAudio = "has_audio"
	ColumnHasImage = "has_image"
)

// RequiredColumns is the canonical column list. Header matching is
// case-insensitive, so "UMAP_1" and "Playback" satisfy it.
var RequiredColumns = []string{
	ColumnUMAP1, ColumnUMAP2, ColumnUMAP3,
	string(FieldSubject),
	string(FieldContext),
	string(FieldContextComplet),
	string(FieldContextGeneral),
	string(FieldValence),
	string(FieldGeneralArousal),
	string(FieldValenceArousalRefined),
	string(FieldAgeClass),
	string(FieldPlayback),
	string(FieldFile),
	ColumnHasAudio,
	ColumnHasImage,
}

// categoricalFields lists every Field stored as a string column.
var categoricalFields = []Field{
	FieldSubject,
	FieldContext,
	FieldContextComplet,
	FieldContextGeneral,
	FieldValence,
	FieldGeneralArousal,
	FieldValenceArousalRefined,
	FieldAgeClass,
	FieldPlayback,
	FieldFile,
}

// Dim selects one of the three embedding coordinates.
type Dim int

const (
	DimX Dim = iota
	DimY
	DimZ
)

// Record is one vocalization row.
type Record struct {
	UMAP1 float64 `json:"umap_1"`
	UMAP2 float64 `json:"umap_2"`
	UMAP3 float64 `json:"umap_3"`

	Subject               string `json:"subject"`
	Context               string `json:"context"`
	ContextComplet        string `json:"context_complet"`
	ContextGeneral        string `json:"context_general"`
	Valence               string `json:"valence"`
	GeneralArousal        string `json:"general_arousal"`
	ValenceArousalRefined string `json:"valence_arousal_refined"`
	AgeClass              string `json:"age_class"`
	Playback              string `json:"playback"`

	// File is the audio filename; it doubles as hover title and asset key.
	File     string `json:"file"`
	HasAudio bool   `json:"has_audio"`
	HasImage bool   `json:"has_image"`
}

// Coord returns the coordinate for d.
func (r Record) Coord(d Dim) float64 {
	switch d {
	case DimY:
		return r.UMAP2
	case DimZ:
		return r.UMAP3
	default:
		return r.UMAP1
	}
}
