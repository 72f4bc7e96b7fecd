package quake

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Marker is one circle marker placed at an event.
type Marker struct {
	Event Event
	Lat   float64
	Lon   float64
	Style Style
	Popup string
}

// MarkerLayer is the overlay built from one collection, in feed order.
type MarkerLayer struct {
	Name    string
	Markers []Marker
	Bound   orb.Bound
}

// Markers builds one marker per event of c, styled by the scale.
func (s DepthScale) Markers(name string, c Collection) (MarkerLayer, error) {
	layer := MarkerLayer{
		Name:    name,
		Markers: make([]Marker, 0, len(c.Events)),
		Bound:   c.Bound(),
	}

	for _, e := range c.Events {
		popup, err := Popup(e)
		if err != nil {
			return MarkerLayer{}, fmt.Errorf("popup for %q: %w", e.ID, err)
		}

		layer.Markers = append(layer.Markers, Marker{
			Event: e,
			Lat:   e.Latitude,
			Lon:   e.Longitude,
			Style: s.StyleFor(e),
			Popup: popup,
		})
	}

	return layer, nil
}

// GeoJSON encodes the layer as points carrying style and popup properties.
func (l MarkerLayer) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(l.Markers) > 0 {
		fc.BBox = geojson.NewBBox(l.Bound)
	}

	for _, m := range l.Markers {
		f := geojson.NewFeature(orb.Point{m.Lon, m.Lat})
		if m.Event.ID != "" {
			f.ID = m.Event.ID
		}
		f.Properties["place"] = m.Event.Place
		f.Properties["mag"] = m.Event.Magnitude
		f.Properties["depth"] = m.Event.Depth
		if !m.Event.Time.IsZero() {
			f.Properties["time"] = m.Event.Time.UnixMilli()
		}
		if m.Event.URL != "" {
			f.Properties["url"] = m.Event.URL
		}
		f.Properties["style"] = m.Style
		f.Properties["popup"] = m.Popup

		fc.Append(f)
	}

	return fc
}
