// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFeedURL is the USGS summary feed of all earthquakes in the past week.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"

// Config represents the root configuration file structure.
type Config struct {
	Feed Feed `yaml:"feed" json:"feed"`
	Map  Map  `yaml:"map" json:"map"`
}

// Feed describes where earthquake data comes from.
type Feed struct {
	// URL is an http(s) endpoint or a local file path
	URL     string        `yaml:"url" json:"url"`
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Map describes the initial viewport and the layers offered to the user.
type Map struct {
	Container  string      `yaml:"container,omitempty" json:"container"`
	Title      string      `yaml:"title,omitempty" json:"title"`
	Center     [2]float64  `yaml:"center,flow" json:"center"` // [Lat, Lon]
	Zoom       int         `yaml:"zoom" json:"zoom"`
	BaseLayers []BaseLayer `yaml:"base_layers,omitempty" json:"base_layers"`
	Overlay    string      `yaml:"overlay,omitempty" json:"overlay"`
	Legend     string      `yaml:"legend_position,omitempty" json:"legend_position"`
}

// BaseLayer is a tiled imagery source shown as a background map.
type BaseLayer struct {
	Name        string `yaml:"name" json:"name"`
	URL         string `yaml:"url" json:"url"`
	Attribution string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	MaxZoom     int    `yaml:"max_zoom,omitempty" json:"max_zoom,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Feed: Feed{
			URL:     DefaultFeedURL,
			Timeout: 30 * time.Second,
		},
		Map: Map{
			Container: "map",
			Title:     "Earthquakes of the past week",
			Center:    [2]float64{37.09, -95.71},
			Zoom:      5,
			Overlay:   "Earthquakes",
			Legend:    "bottomright",
			BaseLayers: []BaseLayer{
				{
					Name:        "Street Map",
					URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
					Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
					MaxZoom:     19,
				},
				{
					Name: "Topographic Map",
					URL:  "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
					Attribution: `Map data: &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors, ` +
						`<a href="http://viewfinderpanoramas.org">SRTM</a> | Map style: &copy; <a href="https://opentopomap.org">OpenTopoMap</a> ` +
						`(<a href="https://creativecommons.org/licenses/by-sa/3.0/">CC-BY-SA</a>)`,
					MaxZoom: 17,
				},
				{
					Name: "Satellite",
					URL:  "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
					Attribution: "Tiles &copy; Esri &mdash; Source: Esri, i-cubed, USDA, USGS, AEX, GeoEye, Getmapping, " +
						"Aerogrid, IGN, IGP, UPR-EGP, and the GIS User Community",
					MaxZoom: 19,
				},
			},
		},
	}
}

// Load reads the YAML configuration file from the specified path on top of Default.
// An empty path returns Default unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the fields the pipeline cannot work without.
func (c *Config) Validate() error {
	if c.Feed.URL == "" {
		return errors.New("feed.url is empty")
	}
	if c.Feed.Timeout < 0 {
		return errors.New("feed.timeout is negative")
	}
	if len(c.Map.BaseLayers) == 0 {
		return errors.New("map.base_layers is empty")
	}
	for i, l := range c.Map.BaseLayers {
		if l.Name == "" || l.URL == "" {
			return fmt.Errorf("map.base_layers[%d]: name and url are required", i)
		}
	}
	if c.Map.Center[0] < -90 || c.Map.Center[0] > 90 || c.Map.Center[1] < -180 || c.Map.Center[1] > 180 {
		return fmt.Errorf("map.center %v out of range", c.Map.Center)
	}
	if c.Map.Zoom < 0 {
		return errors.New("map.zoom is negative")
	}
	if c.Map.Container == "" {
		c.Map.Container = "map"
	}
	if c.Map.Overlay == "" {
		c.Map.Overlay = "Earthquakes"
	}
	if c.Map.Legend == "" {
		c.Map.Legend = "bottomright"
	}

	return nil
}
