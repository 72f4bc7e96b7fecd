package quake

import (
	"html/template"
	"math"
	"strings"
)

// RadiusScale converts magnitude to marker radius in pixels.
const RadiusScale = 4

// Style is the circle marker style understood by Leaflet path options.
type Style struct {
	Radius      float64 `json:"radius" yaml:"radius"`
	FillColor   string  `json:"fillColor" yaml:"fillColor"`
	Color       string  `json:"color" yaml:"color"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	FillOpacity float64 `json:"fillOpacity" yaml:"fillOpacity"`
}

var popupTmpl = template.Must(template.New("popup").Parse(
	`<h3>{{.Place}}</h3><hr><p>Magnitude: {{.Magnitude}}</p><p>Depth: {{.Depth}}</p>`,
))

// Radius scales magnitude linearly. Negative or NaN magnitudes give 0;
// the 1px stroke keeps such markers visible.
func Radius(mag float64) float64 {
	r := mag * RadiusScale
	if math.IsNaN(r) || r < 0 {
		return 0
	}

	return r
}

// StyleFor derives the marker style of e from the scale.
func (s DepthScale) StyleFor(e Event) Style {
	return Style{
		Radius:      Radius(e.Magnitude),
		FillColor:   s.Color(e.Depth),
		Color:       "#000",
		Weight:      1,
		Opacity:     1,
		FillOpacity: 0.8,
	}
}

// StyleFor derives the marker style of e from DefaultDepthScale.
func StyleFor(e Event) Style {
	return DefaultDepthScale.StyleFor(e)
}

// Popup renders the popup markup for e with feed text escaped.
func Popup(e Event) (string, error) {
	var sb strings.Builder
	err := popupTmpl.Execute(&sb, struct {
		Place     string
		Magnitude string
		Depth     string
	}{
		Place:     e.Place,
		Magnitude: formatNumber(e.Magnitude),
		Depth:     formatNumber(e.Depth),
	})
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}
