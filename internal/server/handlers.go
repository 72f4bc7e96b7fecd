// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"hash/fnv"
	"net/http"
	"strconv"

	"github.com/woozymasta/quakemap/internal/composer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Router builds the HTTP routes.
func (s *ServerContext) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.Metrics))

	r.Get("/", s.HandleIndex)
	r.Get("/favicon.ico", s.HandleFavicon)
	r.Get("/healthz", s.HandleHealthz)
	r.Get("/api/earthquakes", s.HandleEarthquakes)
	r.Get("/api/legend", s.HandleLegend)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())

	return r
}

// HandleIndex runs the pipeline and serves the rendered map page.
// A feed failure yields a 502 error page instead of an empty map.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	m, err := composer.Build(r.Context(), s.Source, s.Config.Map, s.Scale)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Failed to build map")

		var buf bytes.Buffer
		if rerr := s.Renderer.RenderError(&buf, s.Config.Map.Title, err); rerr != nil {
			http.Error(w, "earthquake data is unavailable", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write(buf.Bytes())
		return
	}

	s.Metrics.AddFeatures(m.Summary.Count, m.Summary.Skipped)

	var buf bytes.Buffer
	if err := s.Renderer.Render(&buf, m); err != nil {
		log.Error().Err(err).Msg("Failed to render map page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	s.writeWithETag(w, r, "text/html; charset=utf-8", buf.Bytes())
}

// HandleEarthquakes serves the styled marker layer as GeoJSON.
func (s *ServerContext) HandleEarthquakes(w http.ResponseWriter, r *http.Request) {
	c, err := s.Source.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load feed")
		writeError(w, http.StatusBadGateway, "feed_unavailable", err.Error())
		return
	}

	layer, err := s.Scale.Markers(s.Config.Map.Overlay, c)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build markers")
		writeError(w, http.StatusInternalServerError, "markers_failed", err.Error())
		return
	}
	s.Metrics.AddFeatures(len(layer.Markers), c.Skipped)

	data, err := json.Marshal(layer.GeoJSON())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}

	s.writeWithETag(w, r, "application/geo+json", data)
}

// HandleLegend serves the depth legend as JSON.
func (s *ServerContext) HandleLegend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, composer.BuildLegend(s.Scale, s.Config.Map.Legend))
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleHealthz reports liveness. It does not touch the feed.
func (s *ServerContext) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeWithETag serves body with a content hash ETag, answering 304 on match.
func (s *ServerContext) writeWithETag(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	h := fnv.New64a()
	_, _ = h.Write(body)

	buf := make([]byte, 0, 24)
	buf = append(buf, '"')
	buf = strconv.AppendUint(buf, h.Sum64(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, int64(len(body)), 16)
	buf = append(buf, '"')
	etag := string(buf)

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	})
}
