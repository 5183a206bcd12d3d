// Package testutil provides shared test fixtures for the dashboard packages.
//
// The fixture is a five-row dataset whose encounter order of valence-arousal
// classes differs from the display order, and which carries one playback
// value ("Unknown") that has no fixed colour.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/acoustic.space/internal/dataset"
)

// FixtureCSV mirrors the header of the shipped data_precomputed.csv,
// including the unnamed pandas index column and upper-case UMAP columns.
const FixtureCSV = `,UMAP_1,UMAP_2,UMAP_3,subject,context,context_complet,context_general,valence,general_arousal,valence_arousal_refined,age_class,Playback,file,has_audio,has_image
0,1.0,2.0,3.0,Kiku,Feeding,Feeding_food,Food,positive,high,positive_high,Adult,No,kiku_01.wav,True,True
1,-1.5,0.5,2.0,Lisala,Agonistic_victim,Agonistic_victim,Conflict,negative,high,negative_high,Adult,Yes,lisala_02.wav,True,False
2,0.2,-2.0,1.0,Kiku,Grooming,Grooming,Social,positive,low,positive_low,Adult,No,kiku_03.wav,False,True
3,2.5,1.0,-0.5,Nayoki,Romm_shift,Romm_shift,Travel,negative,low,negative_low,Juvenile,No,nayoki_04.wav,False,False
4,0.0,3.0,0.5,Lisala,Feeding,Feeding_food,Food,positive,high,positive_high,Adult,Unknown,lisala_05.wav,True,True
`

// FixtureTable parses FixtureCSV.
func FixtureTable(t testing.TB) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Parse(strings.NewReader(FixtureCSV))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return tbl
}

// Asset contents written by WriteBaseDir.
const (
	FixtureAudio = "RIFF-fake-wav"
	FixtureImage = "\x89PNG-fake"
)

// WriteBaseDir lays out a base directory the way the binary expects to find
// it: the dataset CSV, audio/ and spider_plots/. Only kiku_01 has both
// assets on disk.
func WriteBaseDir(t testing.TB) string {
	t.Helper()
	base := t.TempDir()
	files := map[string]string{
		dataset.DefaultFilename:                     FixtureCSV,
		filepath.Join("audio", "kiku_01.wav"):       FixtureAudio,
		filepath.Join("audio", "lisala_02.wav"):     FixtureAudio,
		filepath.Join("spider_plots", "kiku_01.png"): FixtureImage,
	}
	for name, body := range files {
		p := filepath.Join(base, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}
	return base
}

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// Do serves a GET for path against h and returns the recorder.
func Do(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}
