// Package composer assembles the map description and renders it as a page.
package composer

import (
	"context"
	"fmt"
	"time"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/quake"

	"github.com/paulmach/orb/geojson"
)

// Map is everything the page needs to instantiate the Leaflet map.
type Map struct {
	Container  string       `json:"container"`
	Title      string       `json:"title"`
	Center     [2]float64   `json:"center"` // [Lat, Lon]
	Zoom       int          `json:"zoom"`
	BaseLayers []TileLayer  `json:"base_layers"`
	Overlays   []Overlay    `json:"overlays"`
	Control    LayerControl `json:"layer_control"`
	Legend     Legend       `json:"legend"`
	Summary    Summary      `json:"summary"`
}

// TileLayer is a base layer. Exactly one is active.
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution,omitempty"`
	MaxZoom     int    `json:"max_zoom,omitempty"`
	Active      bool   `json:"active"`
}

// Overlay is a toggleable layer of styled features.
type Overlay struct {
	Name     string                     `json:"name"`
	Active   bool                       `json:"active"`
	Features *geojson.FeatureCollection `json:"features"`
}

// LayerControl configures the base/overlay selector.
type LayerControl struct {
	Collapsed bool   `json:"collapsed"`
	Position  string `json:"position"`
}

// Summary describes the data behind the overlay.
type Summary struct {
	Count     int    `json:"count"`
	Skipped   int    `json:"skipped"`
	Generated string `json:"generated,omitempty"`
}

// Source yields one earthquake collection per call.
type Source interface {
	Load(ctx context.Context) (quake.Collection, error)
}

// Compose lays out the view with the marker layer as its only overlay and
// a legend drawn from the same scale that styled the markers.
func Compose(view config.Map, markers quake.MarkerLayer, scale quake.DepthScale) Map {
	m := Map{
		Container: view.Container,
		Title:     view.Title,
		Center:    view.Center,
		Zoom:      view.Zoom,
		Control:   LayerControl{Collapsed: false, Position: "topright"},
		Legend:    BuildLegend(scale, view.Legend),
		Summary:   Summary{Count: len(markers.Markers)},
	}

	m.BaseLayers = make([]TileLayer, 0, len(view.BaseLayers))
	for i, b := range view.BaseLayers {
		m.BaseLayers = append(m.BaseLayers, TileLayer{
			Name:        b.Name,
			URL:         b.URL,
			Attribution: b.Attribution,
			MaxZoom:     b.MaxZoom,
			Active:      i == 0,
		})
	}

	name := markers.Name
	if name == "" {
		name = view.Overlay
	}
	m.Overlays = []Overlay{{
		Name:     name,
		Active:   true,
		Features: markers.GeoJSON(),
	}}

	return m
}

// Build runs the whole pipeline once: load, style, compose.
func Build(ctx context.Context, src Source, view config.Map, scale quake.DepthScale) (Map, error) {
	c, err := src.Load(ctx)
	if err != nil {
		return Map{}, fmt.Errorf("load feed: %w", err)
	}

	layer, err := scale.Markers(view.Overlay, c)
	if err != nil {
		return Map{}, fmt.Errorf("build markers: %w", err)
	}

	m := Compose(view, layer, scale)
	m.Summary.Skipped = c.Skipped
	if !c.Generated.IsZero() {
		m.Summary.Generated = c.Generated.Format(time.RFC1123)
	}
	if m.Title == "" && c.Title != "" {
		m.Title = c.Title
	}

	return m, nil
}
