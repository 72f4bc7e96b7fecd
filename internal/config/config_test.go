package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Feed.URL != DefaultFeedURL {
		t.Fatalf("expected default feed url, got %q", cfg.Feed.URL)
	}
	if cfg.Map.Center != [2]float64{37.09, -95.71} || cfg.Map.Zoom != 5 {
		t.Fatalf("unexpected default view: %v zoom %d", cfg.Map.Center, cfg.Map.Zoom)
	}
	if len(cfg.Map.BaseLayers) != 3 {
		t.Fatalf("expected 3 base layers, got %d", len(cfg.Map.BaseLayers))
	}
	if cfg.Map.BaseLayers[0].Name != "Street Map" {
		t.Fatalf("expected street map first, got %q", cfg.Map.BaseLayers[0].Name)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
feed:
  url: ./testdata/week.geojson
  timeout: 5s
map:
  center: [10, 20]
  zoom: 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Feed.URL != "./testdata/week.geojson" {
		t.Fatalf("expected feed url override, got %q", cfg.Feed.URL)
	}
	if cfg.Feed.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", cfg.Feed.Timeout)
	}
	if cfg.Map.Center != [2]float64{10, 20} || cfg.Map.Zoom != 3 {
		t.Fatalf("expected view override, got %v zoom %d", cfg.Map.Center, cfg.Map.Zoom)
	}
	if len(cfg.Map.BaseLayers) != 3 || cfg.Map.Overlay != "Earthquakes" {
		t.Fatalf("expected untouched defaults, got %d layers overlay %q", len(cfg.Map.BaseLayers), cfg.Map.Overlay)
	}
}

func TestLoad_ReplacesBaseLayers(t *testing.T) {
	path := writeConfig(t, `
map:
  center: [0, 0]
  zoom: 2
  base_layers:
    - name: Local
      url: http://tiles.local/{z}/{x}/{y}.png
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Map.BaseLayers) != 1 || cfg.Map.BaseLayers[0].Name != "Local" {
		t.Fatalf("expected single local layer, got %+v", cfg.Map.BaseLayers)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty url":     "feed:\n  url: \"\"\n",
		"bad center":    "map:\n  center: [120, 0]\n  zoom: 5\n",
		"layer no name": "map:\n  center: [0, 0]\n  zoom: 1\n  base_layers:\n    - url: http://x/{z}/{x}/{y}.png\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if !strings.Contains(err.Error(), "invalid config") {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
