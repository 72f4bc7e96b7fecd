package composer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/quake"
)

type fakeSource struct {
	c   quake.Collection
	err error
}

func (f fakeSource) Load(context.Context) (quake.Collection, error) {
	return f.c, f.err
}

func sampleCollection() quake.Collection {
	return quake.Collection{
		Title:     "USGS All Earthquakes, Past Week",
		Generated: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
		Skipped:   1,
		Events: []quake.Event{
			{ID: "a", Place: "10km NE of Testville", Magnitude: 2.0, Depth: 5, Longitude: -116.8, Latitude: 33.9},
			{ID: "b", Place: "Deep", Magnitude: 6.1, Depth: 95, Longitude: 142.6, Latitude: 39.8},
		},
	}
}

func TestCompose_Defaults(t *testing.T) {
	view := config.Default().Map
	layer, err := quake.DefaultDepthScale.Markers(view.Overlay, sampleCollection())
	if err != nil {
		t.Fatalf("markers: %v", err)
	}

	m := Compose(view, layer, quake.DefaultDepthScale)

	if m.Center != [2]float64{37.09, -95.71} || m.Zoom != 5 || m.Container != "map" {
		t.Fatalf("unexpected viewport: center=%v zoom=%d container=%q", m.Center, m.Zoom, m.Container)
	}
	if len(m.BaseLayers) != 3 {
		t.Fatalf("expected 3 base layers, got %d", len(m.BaseLayers))
	}
	active := 0
	for _, b := range m.BaseLayers {
		if b.Active {
			active++
		}
		if b.Attribution == "" {
			t.Fatalf("base layer %q has no attribution", b.Name)
		}
	}
	if active != 1 || !m.BaseLayers[0].Active || m.BaseLayers[0].Name != "Street Map" {
		t.Fatalf("expected only the street map active, got %+v", m.BaseLayers)
	}
	if len(m.Overlays) != 1 || m.Overlays[0].Name != "Earthquakes" || !m.Overlays[0].Active {
		t.Fatalf("unexpected overlays: %+v", m.Overlays)
	}
	if got := len(m.Overlays[0].Features.Features); got != 2 {
		t.Fatalf("expected 2 overlay features, got %d", got)
	}
	if m.Control.Collapsed {
		t.Fatalf("expected expanded layer control")
	}
	if m.Legend.Position != "bottomright" {
		t.Fatalf("expected legend bottom right, got %q", m.Legend.Position)
	}
	if m.Summary.Count != 2 {
		t.Fatalf("expected count 2, got %d", m.Summary.Count)
	}
}

func TestBuild(t *testing.T) {
	view := config.Default().Map
	view.Title = ""

	m, err := Build(context.Background(), fakeSource{c: sampleCollection()}, view, quake.DefaultDepthScale)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Summary.Count != 2 || m.Summary.Skipped != 1 {
		t.Fatalf("unexpected summary: %+v", m.Summary)
	}
	if m.Summary.Generated == "" {
		t.Fatalf("expected generated time in summary")
	}
	if m.Title != "USGS All Earthquakes, Past Week" {
		t.Fatalf("expected feed title fallback, got %q", m.Title)
	}
}

func TestBuild_LoadFailure(t *testing.T) {
	boom := errors.New("network unreachable")
	_, err := Build(context.Background(), fakeSource{err: boom}, config.Default().Map, quake.DefaultDepthScale)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped load error, got %v", err)
	}
}
