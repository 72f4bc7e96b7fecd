package quake

import (
	"strings"
	"testing"
)

func TestRadius(t *testing.T) {
	prev := -1.0
	for m := 0.0; m <= 9.5; m += 0.25 {
		r := Radius(m)
		if r != 4*m {
			t.Fatalf("Radius(%v): expected %v, got %v", m, 4*m, r)
		}
		if r < prev {
			t.Fatalf("Radius not monotonic at %v: %v < %v", m, r, prev)
		}
		prev = r
	}
}

func TestRadius_NegativeClampsToZero(t *testing.T) {
	if got := Radius(-0.8); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestStyleFor_Scenarios(t *testing.T) {
	cases := []struct {
		name   string
		mag    float64
		depth  float64
		radius float64
		fill   string
	}{
		{"shallow small", 2.0, 5, 8, "#00FF00"},
		{"deep large", 6.1, 95, 24.4, "#FF0000"},
		{"boundary 30", 3.0, 30, 12, "greenyellow"},
	}
	for _, tc := range cases {
		s := StyleFor(Event{Magnitude: tc.mag, Depth: tc.depth})
		if s.Radius != tc.radius {
			t.Fatalf("%s: expected radius %v, got %v", tc.name, tc.radius, s.Radius)
		}
		if s.FillColor != tc.fill {
			t.Fatalf("%s: expected fill %q, got %q", tc.name, tc.fill, s.FillColor)
		}
		if s.Color != "#000" || s.Weight != 1 || s.Opacity != 1 || s.FillOpacity != 0.8 {
			t.Fatalf("%s: unexpected stroke %+v", tc.name, s)
		}
	}
}

func TestPopup_ContainsValues(t *testing.T) {
	p, err := Popup(Event{Place: "10km NE of Testville", Magnitude: 4.5, Depth: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"10km NE of Testville", "4.5", "12"} {
		if !strings.Contains(p, want) {
			t.Fatalf("expected popup to contain %q, got %q", want, p)
		}
	}
	if p != "<h3>10km NE of Testville</h3><hr><p>Magnitude: 4.5</p><p>Depth: 12</p>" {
		t.Fatalf("unexpected popup markup: %q", p)
	}
}

func TestPopup_EscapesPlace(t *testing.T) {
	p, err := Popup(Event{Place: `<script>alert("x")</script>`, Magnitude: 1, Depth: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(p, "<script>") {
		t.Fatalf("expected place to be escaped, got %q", p)
	}
	if !strings.Contains(p, "&lt;script&gt;") {
		t.Fatalf("expected escaped tag in popup, got %q", p)
	}
}
