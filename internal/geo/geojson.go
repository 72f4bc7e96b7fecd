// Package geo holds the wire structures of the earthquake GeoJSON feed.
package geo

// FeatureCollection represents a feed document.
// It follows the standard GeoJSON structure plus the USGS metadata block.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Metadata *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Features []Feature `json:"features" yaml:"features"`
}

// Metadata describes the feed itself.
type Metadata struct {
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
	Generated int64  `json:"generated,omitempty" yaml:"generated,omitempty"` // unix millis
	Count     int    `json:"count,omitempty" yaml:"count,omitempty"`
}

// Feature represents a single earthquake event with geometry and properties.
type Feature struct {
	Type       string     `json:"type" yaml:"type"`
	ID         string     `json:"id,omitempty" yaml:"id,omitempty"`
	Properties Properties `json:"properties" yaml:"properties"`
	Geometry   Geometry   `json:"geometry" yaml:"geometry"`
}

// Properties carries the event attributes used by the map.
// Mag is a pointer because the feed publishes null for unreviewed events.
type Properties struct {
	Mag   *float64 `json:"mag" yaml:"mag"`
	Place string   `json:"place" yaml:"place"`
	Time  int64    `json:"time,omitempty" yaml:"time,omitempty"` // unix millis
	URL   string   `json:"url,omitempty" yaml:"url,omitempty"`
	Title string   `json:"title,omitempty" yaml:"title,omitempty"`
}

// Geometry represents the point geometry of a feature.
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat, Depth]
}
