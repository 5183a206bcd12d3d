package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMissingAudio(t *testing.T) {
	s := Resolve("x.wav", false, false)

	assert.False(t, s.HasAudio())
	assert.Empty(t, s.AudioURL)
	assert.Contains(t, s.AudioText, "x.wav")
	assert.Equal(t, "Audio not found: x.wav", s.AudioText)
	assert.Equal(t, "Image not found: x.wav", s.ImageText)
}

func TestResolveImageExtension(t *testing.T) {
	s := Resolve("x.wav", true, true)

	assert.Equal(t, "/segments/x.wav", s.AudioURL)
	assert.Equal(t, "Playing: x.wav", s.AudioText)
	assert.True(t, strings.HasSuffix(s.ImageURL, "x.png"), s.ImageURL)
	assert.Equal(t, "/images/x.png", s.ImageURL)
	assert.Equal(t, "Displaying: x.png", s.ImageText)
}

func TestResolveIsDeterministic(t *testing.T) {
	for _, flags := range [][2]bool{{true, true}, {true, false}, {false, true}, {false, false}} {
		assert.Equal(t, Resolve("a.wav", flags[0], flags[1]), Resolve("a.wav", flags[0], flags[1]))
	}
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.False(t, s.HasAudio())
	assert.False(t, s.HasImage())
	assert.Equal(t, PromptAudio, s.AudioText)
	assert.Equal(t, PromptImage, s.ImageText)
}

func TestImageName(t *testing.T) {
	tests := map[string]string{
		"x.wav":         "x.png",
		"clip.v2.wav":   "clip.v2.png",
		"noext":         "noext.png",
		"dir/inner.WAV": "dir/inner.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, ImageName(in), in)
	}
}

func TestHandler(t *testing.T) {
	root := t.TempDir()
	audio := filepath.Join(root, "audio")
	images := filepath.Join(root, "spider_plots")
	for _, d := range []string{audio, images, filepath.Join(audio, "sub")} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(audio, "a.wav"), []byte("wav-bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(audio, "call..1.wav"), []byte("dotted"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0644); err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	Mount(mux, audio, images)

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "serves clip", path: "/segments/a.wav", wantCode: http.StatusOK, wantBody: "wav-bytes"},
		{name: "double dot in name", path: "/segments/call..1.wav", wantCode: http.StatusOK, wantBody: "dotted"},
		{name: "head clip", method: http.MethodHead, path: "/segments/a.wav", wantCode: http.StatusOK},
		{name: "missing clip", path: "/segments/b.wav", wantCode: http.StatusNotFound},
		{name: "missing image", path: "/images/a.png", wantCode: http.StatusNotFound},
		{name: "directory", path: "/segments/sub", wantCode: http.StatusNotFound},
		{name: "post rejected", method: http.MethodPost, path: "/segments/a.wav", wantCode: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(method, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			assert.NotContains(t, rec.Body.String(), "secret")
		})
	}
}

func TestHandlerEncodedTraversal(t *testing.T) {
	root := t.TempDir()
	audio := filepath.Join(root, "audio")
	if err := os.MkdirAll(audio, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0644); err != nil {
		t.Fatal(err)
	}
	mux := http.NewServeMux()
	Mount(mux, audio, audio)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/segments/..%2fsecret.txt", nil))
	// the mux may redirect to the cleaned path; either way nothing is served
	assert.NotEqual(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, "secret", rec.Body.String())
}

func TestHasParentSegment(t *testing.T) {
	tests := map[string]bool{
		"call..1.wav":   false,
		"a.wav":         false,
		"..":            true,
		"../x.wav":      true,
		"sub/../x.wav":  true,
		"sub/..x/a.wav": false,
	}
	for in, want := range tests {
		assert.Equal(t, want, hasParentSegment(in), in)
	}
}

func TestHandlerDirect(t *testing.T) {
	dir := t.TempDir()
	h := Handler(dir)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.URL.Path = "../etc/passwd"
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
