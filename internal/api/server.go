// Package api exposes the dashboard over HTTP: the page itself, the chart
// iframe, JSON endpoints for the scene and click selection, and the two
// static asset routes.
package api

import (
	"net/http"
	"net/url"

	"github.com/banshee-data/acoustic.space/internal/assets"
	"github.com/banshee-data/acoustic.space/internal/chart"
	"github.com/banshee-data/acoustic.space/internal/dataset"
	"github.com/banshee-data/acoustic.space/internal/render"
)

// Config wires a Server to its asset directories and initial controls.
type Config struct {
	// Defaults is the control state used for query parameters that are
	// absent from a request.
	Defaults   render.Controls
	AssetsHost string
	AudioDir   string
	ImageDir   string
}

type Server struct {
	table *dataset.Table
	cfg   Config
}

// NewServer returns a server over the immutable table t. A zero Defaults
// falls back to render.DefaultControls.
func NewServer(t *dataset.Table, cfg Config) *Server {
	if cfg.Defaults == (render.Controls{}) {
		cfg.Defaults = render.DefaultControls()
	}
	return &Server{table: t, cfg: cfg}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/chart", s.handleChart)
	mux.HandleFunc("/api/scene", s.handleScene)
	mux.HandleFunc("/api/select", s.handleSelect)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/options", s.handleOptions)
	mux.HandleFunc("/api/projection.png", s.handleProjection)
	mux.HandleFunc("/api/version", s.handleVersion)
	if s.cfg.AudioDir != "" && s.cfg.ImageDir != "" {
		assets.Mount(mux, s.cfg.AudioDir, s.cfg.ImageDir)
	}
	return mux
}

// controls reads the control state from q. Keys missing from q take the
// server's configured defaults.
func (s *Server) controls(q url.Values) (render.Controls, error) {
	merged := s.cfg.Defaults.Values()
	for k, v := range q {
		if len(v) > 0 && v[0] != "" {
			merged.Set(k, v[0])
		}
	}
	return render.ParseControls(merged)
}

func (s *Server) chartOptions() chart.Options {
	return chart.Options{AssetsHost: s.cfg.AssetsHost}
}
