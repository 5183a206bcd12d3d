package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/acoustic.space/internal/assets"
	"github.com/banshee-data/acoustic.space/internal/dataset"
	"github.com/banshee-data/acoustic.space/internal/render"
	"github.com/banshee-data/acoustic.space/internal/testutil"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	base := testutil.WriteBaseDir(t)
	tbl, err := dataset.Load(filepath.Join(base, dataset.DefaultFilename))
	require.NoError(t, err)

	srv := NewServer(tbl, Config{
		AssetsHost: "/assets/",
		AudioDir:   filepath.Join(base, "audio"),
		ImageDir:   filepath.Join(base, "spider_plots"),
	})
	return srv.ServeMux()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestStatusCodes(t *testing.T) {
	h := setupTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/nope", http.StatusNotFound},
		{"/chart", http.StatusOK},
		{"/chart?color_by=subject&point_size=11&opacity=0.3", http.StatusOK},
		{"/chart?point_size=12", http.StatusBadRequest},
		{"/api/scene?opacity=0.2", http.StatusBadRequest},
		{"/api/scene?color_by=file", http.StatusBadRequest},
		{"/api/scene?color_by=Playback", http.StatusOK},
		{"/api/select", http.StatusOK},
		{"/api/select?file=kiku_01.wav", http.StatusOK},
		{"/api/select?file=missing.wav", http.StatusNotFound},
		{"/api/summary", http.StatusOK},
		{"/api/options", http.StatusOK},
		{"/api/options?color_by=bogus", http.StatusBadRequest},
		{"/api/projection.png", http.StatusOK},
		{"/api/projection.png?plane=ab", http.StatusBadRequest},
		{"/api/version", http.StatusOK},
		{"/segments/kiku_01.wav", http.StatusOK},
		{"/segments/nayoki_04.wav", http.StatusNotFound},
		{"/images/kiku_01.png", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := testutil.Do(h, tt.path)
			testutil.AssertStatusCode(t, rec.Code, tt.want)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := setupTestServer(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/scene", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestSceneHighlight(t *testing.T) {
	h := setupTestServer(t)

	all := decode[render.Scene](t, testutil.Do(h, "/api/scene"))
	one := decode[render.Scene](t, testutil.Do(h, "/api/scene?highlight=positive_high"))

	assert.Equal(t, 5, all.PointCount())
	require.Len(t, one.Groups, 1)
	assert.Equal(t, "positive_high", one.Groups[0].Category)
	assert.Equal(t, 2, one.PointCount())
	if diff := cmp.Diff(all.Axes, one.Axes); diff != "" {
		t.Errorf("axes changed with highlight (-all +one):\n%s", diff)
	}
}

func TestSelect(t *testing.T) {
	h := setupTestServer(t)

	got := decode[assets.Selection](t, testutil.Do(h, "/api/select?file=lisala_02.wav"))
	want := assets.Selection{
		File:      "lisala_02.wav",
		AudioURL:  "/segments/lisala_02.wav",
		AudioText: "Playing: lisala_02.wav",
		ImageText: "Image not found: lisala_02.wav",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	initial := decode[assets.Selection](t, testutil.Do(h, "/api/select"))
	assert.Equal(t, assets.Initial(), initial)
}

func TestSelectUsesClickFlags(t *testing.T) {
	h := setupTestServer(t)

	// kiku_01 has both assets in the table; the click tuple wins.
	got := decode[assets.Selection](t, testutil.Do(h, "/api/select?file=kiku_01.wav&has_audio=false&has_image=true"))
	want := assets.Resolve("kiku_01.wav", false, true)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, got.AudioURL)

	// Flags make the tuple self-contained, so the file need not be in the table.
	other := decode[assets.Selection](t, testutil.Do(h, "/api/select?file=dup.wav&has_audio=true&has_image=false"))
	assert.Equal(t, "/segments/dup.wav", other.AudioURL)

	for _, path := range []string{
		"/api/select?file=kiku_01.wav&has_audio=maybe&has_image=true",
		"/api/select?file=kiku_01.wav&has_audio=true",
	} {
		rec := testutil.Do(h, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestOptionsHighlightDerivedFromColorBy(t *testing.T) {
	h := setupTestServer(t)

	refined := decode[Options](t, testutil.Do(h, "/api/options"))
	assert.True(t, refined.HighlightVisible)
	require.NotEmpty(t, refined.HighlightOptions)
	assert.Equal(t, render.HighlightAll, refined.HighlightOptions[0].Value)
	assert.Len(t, refined.ColorByOptions, 7)
	assert.Equal(t, float64(11), refined.PointSize.Max)

	other := decode[Options](t, testutil.Do(h, "/api/options?color_by=valence"))
	assert.False(t, other.HighlightVisible)
	assert.Empty(t, other.HighlightOptions)
}

func TestChartPage(t *testing.T) {
	h := setupTestServer(t)

	rec := testutil.Do(h, "/chart?color_by=general_arousal")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "High Arousal")
	assert.Contains(t, rec.Body.String(), "/assets/")
}

func TestProjectionPNG(t *testing.T) {
	h := setupTestServer(t)

	rec := testutil.Do(h, "/api/projection.png?plane=xz&highlight=negative_low")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	assert.NoError(t, err)
}

func TestSummary(t *testing.T) {
	h := setupTestServer(t)

	got := decode[dataset.Summary](t, testutil.Do(h, "/api/summary"))
	assert.Equal(t, 5, got.TotalCalls)
	assert.Equal(t, 3, got.AudioAvailable)
	assert.Equal(t, 3, got.Subjects)
}

func TestConfiguredDefaults(t *testing.T) {
	tbl := testutil.FixtureTable(t)
	defaults := render.DefaultControls()
	defaults.ColorBy = dataset.FieldSubject
	defaults.PointSize = 7
	h := NewServer(tbl, Config{Defaults: defaults}).ServeMux()

	scene := decode[render.Scene](t, testutil.Do(h, "/api/scene?opacity=0.5"))
	assert.Equal(t, "subject", scene.ColorBy)
	assert.Equal(t, 7, scene.Marker.Size)
	assert.InDelta(t, 0.5, scene.Marker.Opacity, 1e-9)
	assert.False(t, scene.HighlightVisible)

	// asset routes are only mounted with both directories
	testutil.AssertStatusCode(t, testutil.Do(h, "/segments/kiku_01.wav").Code, http.StatusNotFound)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := testutil.Do(h, "/api/scene?color_by=valence")
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), "/api/scene?color_by=valence")
	assert.Contains(t, buf.String(), "418")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))
}
