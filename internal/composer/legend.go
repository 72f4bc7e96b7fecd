package composer

import "github.com/woozymasta/quakemap/internal/quake"

// Legend is the depth color key shown over the map.
type Legend struct {
	Position string        `json:"position"`
	Title    string        `json:"title,omitempty"`
	Entries  []LegendEntry `json:"entries"`
	Box      LegendBox     `json:"box"`
}

// LegendEntry is a swatch followed by its depth range label.
type LegendEntry struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// LegendBox is the inline style of the legend container.
type LegendBox struct {
	Background   string `json:"background"`
	Padding      string `json:"padding"`
	BorderRadius string `json:"border_radius"`
	MaxHeight    string `json:"max_height"`
	OverflowY    string `json:"overflow_y"`
}

// BuildLegend lists one entry per bucket of scale, in order.
func BuildLegend(scale quake.DepthScale, position string) Legend {
	if position == "" {
		position = "bottomright"
	}

	ranges := scale.Ranges()
	l := Legend{
		Position: position,
		Title:    "Depth (km)",
		Entries:  make([]LegendEntry, 0, len(ranges)),
		Box: LegendBox{
			Background:   "rgba(255, 255, 255, .7)",
			Padding:      "10px",
			BorderRadius: "5px",
			MaxHeight:    "200px",
			OverflowY:    "auto",
		},
	}
	for _, r := range ranges {
		l.Entries = append(l.Entries, LegendEntry{Color: r.Color, Label: r.Label})
	}

	return l
}
