package assets

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/banshee-data/acoustic.space/internal/monitoring"
	"github.com/banshee-data/acoustic.space/internal/security"
)

// Handler serves files from dir. It expects to be mounted behind
// http.StripPrefix so r.URL.Path is the requested filename. Anything that
// escapes dir, names a directory, or does not exist is a 404.
func Handler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := r.URL.Path
		// reject traversal before ServeMux path cleaning can hide it
		if hasParentSegment(name) || strings.Contains(name, "\\") {
			http.NotFound(w, r)
			return
		}

		p, err := security.ResolveWithin(dir, name)
		if err != nil {
			if errors.Is(err, security.ErrPathEscape) {
				monitoring.Logf("rejected asset request %q: %v", name, err)
			}
			http.NotFound(w, r)
			return
		}

		f, err := os.Open(p)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	})
}

// hasParentSegment reports whether any slash-separated element of name is
// "..". Names that merely contain dots, like "call..1.wav", are allowed.
func hasParentSegment(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// Mount registers the audio and image routes on mux.
func Mount(mux *http.ServeMux, audioDir, imageDir string) {
	mux.Handle(AudioRoute, http.StripPrefix(AudioRoute, Handler(audioDir)))
	mux.Handle(ImageRoute, http.StripPrefix(ImageRoute, Handler(imageDir)))
}
