// Package quake maps earthquake events to styled map markers.
package quake

import (
	"time"

	"github.com/paulmach/orb"
)

// Event is one earthquake as published by the feed.
type Event struct {
	ID        string
	Place     string
	URL       string
	Time      time.Time
	Magnitude float64
	Longitude float64
	Latitude  float64
	Depth     float64 // km
}

// Collection is the ordered set of events returned by one feed fetch.
type Collection struct {
	Title     string
	Generated time.Time
	Events    []Event
	Skipped   int // features dropped as malformed
}

// Bound returns the smallest box containing every event, or an empty bound at 0,0.
func (c Collection) Bound() orb.Bound {
	if len(c.Events) == 0 {
		return orb.Bound{}
	}

	mp := make(orb.MultiPoint, 0, len(c.Events))
	for _, e := range c.Events {
		mp = append(mp, orb.Point{e.Longitude, e.Latitude})
	}

	return mp.Bound()
}
