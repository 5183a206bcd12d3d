package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/banshee-data/acoustic.space/internal/assets"
	"github.com/banshee-data/acoustic.space/internal/chart"
	"github.com/banshee-data/acoustic.space/internal/httputil"
	"github.com/banshee-data/acoustic.space/internal/projection"
	"github.com/banshee-data/acoustic.space/internal/render"
	"github.com/banshee-data/acoustic.space/internal/version"
)

// writeRenderError maps a control or render failure onto a status code.
func writeRenderError(w http.ResponseWriter, err error) {
	if errors.Is(err, render.ErrInvalidControls) || errors.Is(err, projection.ErrInvalidPlane) {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.InternalServerError(w, err.Error())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.NotFound(w, "not found")
		return
	}
	if !httputil.RequireMethod(w, r, http.MethodGet) {
		return
	}

	var buf bytes.Buffer
	if err := chart.NewDashboard(s.table, s.cfg.Defaults).Execute(&buf); err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleChart renders the Scatter3D page loaded into the dashboard iframe.
// Query params: color_by, point_size, opacity, highlight.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	c, err := s.controls(r.URL.Query())
	if err != nil {
		writeRenderError(w, err)
		return
	}
	scene, err := render.Map(s.table, c)
	if err != nil {
		writeRenderError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, scene, s.chartOptions()); err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	c, err := s.controls(r.URL.Query())
	if err != nil {
		writeRenderError(w, err)
		return
	}
	scene, err := render.Map(s.table, c)
	if err != nil {
		writeRenderError(w, err)
		return
	}
	httputil.WriteJSONOK(w, scene)
}

// handleSelect resolves a clicked point. Without a file parameter it
// returns the no-selection placeholders. A click sends the point's asset
// flags along with the file; those are used as given. A bare file falls
// back to the first row carrying it.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	file := q.Get("file")
	if file == "" {
		httputil.WriteJSONOK(w, assets.Initial())
		return
	}
	if q.Has("has_audio") || q.Has("has_image") {
		hasAudio, err := strconv.ParseBool(q.Get("has_audio"))
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("invalid has_audio %q", q.Get("has_audio")))
			return
		}
		hasImage, err := strconv.ParseBool(q.Get("has_image"))
		if err != nil {
			httputil.BadRequest(w, fmt.Sprintf("invalid has_image %q", q.Get("has_image")))
			return
		}
		httputil.WriteJSONOK(w, assets.Resolve(file, hasAudio, hasImage))
		return
	}
	rec, ok := s.table.Lookup(file)
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("no vocalization with file %q", file))
		return
	}
	httputil.WriteJSONOK(w, assets.Resolve(rec.File, rec.HasAudio, rec.HasImage))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	httputil.WriteJSONOK(w, s.table.Summary())
}

// Slider describes one numeric control.
type Slider struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Options is the control surface served by /api/options. The highlight
// entries are derived from ColorBy.
type Options struct {
	ColorBy          string          `json:"color_by"`
	ColorByOptions   []render.Option `json:"color_by_options"`
	HighlightVisible bool            `json:"highlight_visible"`
	HighlightOptions []render.Option `json:"highlight_options"`
	PointSize        Slider          `json:"point_size"`
	Opacity          Slider          `json:"opacity"`
	Defaults         render.Controls `json:"defaults"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	field := s.cfg.Defaults.ColorBy
	if v := r.URL.Query().Get("color_by"); v != "" {
		f, err := render.ParseColorBy(v)
		if err != nil {
			writeRenderError(w, err)
			return
		}
		field = f
	}

	highlight := render.HighlightOptions(s.table, field)
	httputil.WriteJSONOK(w, Options{
		ColorBy:          string(field),
		ColorByOptions:   render.ColorByOptions,
		HighlightVisible: len(highlight) > 0,
		HighlightOptions: highlight,
		PointSize: Slider{
			Min:     render.MinPointSize,
			Max:     render.MaxPointSize,
			Step:    render.PointSizeStep,
			Default: float64(s.cfg.Defaults.PointSize),
		},
		Opacity: Slider{
			Min:     render.MinOpacity,
			Max:     render.MaxOpacity,
			Step:    render.OpacityStep,
			Default: s.cfg.Defaults.Opacity,
		},
		Defaults: s.cfg.Defaults,
	})
}

// handleProjection renders a PNG of the scene flattened onto one plane.
// Query params: the chart controls plus plane (xy, xz or yz).
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	plane, err := projection.ParsePlane(r.URL.Query().Get("plane"))
	if err != nil {
		writeRenderError(w, err)
		return
	}
	c, err := s.controls(r.URL.Query())
	if err != nil {
		writeRenderError(w, err)
		return
	}
	scene, err := render.Map(s.table, c)
	if err != nil {
		writeRenderError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := projection.WritePNG(&buf, scene, plane); err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !httputil.RequireMethod(w, r, http.MethodGet) {
		return
	}
	httputil.WriteJSONOK(w, version.Current())
}
