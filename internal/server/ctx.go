package server

import (
	"github.com/woozymasta/quakemap/internal/composer"
	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/metrics"
	"github.com/woozymasta/quakemap/internal/quake"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
// Nothing in it is mutated after construction.
type ServerContext struct {
	Config   *config.Config
	Source   composer.Source
	Renderer *composer.Renderer
	Metrics  *metrics.Metrics
	Scale    quake.DepthScale
	Favicon  []byte
}

// NewServerContext wires the feed source, renderer and metrics together.
// m may be nil to run without metrics.
func NewServerContext(cfg *config.Config, src composer.Source, r *composer.Renderer, m *metrics.Metrics) *ServerContext {
	log.Info().
		Str("feed", cfg.Feed.URL).
		Dur("feed_timeout", cfg.Feed.Timeout).
		Int("base_layers", len(cfg.Map.BaseLayers)).
		Msg("Initializing server context")

	return &ServerContext{
		Config:   cfg,
		Source:   src,
		Renderer: r,
		Metrics:  m,
		Scale:    quake.DefaultDepthScale,
		Favicon:  r.Favicon(),
	}
}
