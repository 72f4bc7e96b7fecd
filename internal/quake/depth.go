package quake

import (
	"math"
	"strconv"
)

// DepthBucket colors every depth up to and including Max.
type DepthBucket struct {
	Max   float64 `json:"max"`
	Color string  `json:"color"`
}

// DepthScale is an ordered list of buckets, tested top to bottom.
// Floor is only the lower bound printed in the legend for the first bucket.
type DepthScale struct {
	Floor   float64
	Buckets []DepthBucket
}

// DepthRange is one legend row derived from a DepthScale.
type DepthRange struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi,omitempty"`
	Open  bool    `json:"open,omitempty"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// DefaultDepthScale is shared by marker styling and the legend.
var DefaultDepthScale = DepthScale{
	Floor: -10,
	Buckets: []DepthBucket{
		{Max: 10, Color: "#00FF00"},
		{Max: 30, Color: "greenyellow"},
		{Max: 50, Color: "yellow"},
		{Max: 70, Color: "orange"},
		{Max: 90, Color: "orangered"},
		{Max: math.Inf(1), Color: "#FF0000"},
	},
}

// Color returns the color of the first bucket whose Max is >= depth.
// NaN never matches and falls through to the last bucket.
func (s DepthScale) Color(depth float64) string {
	if len(s.Buckets) == 0 {
		return ""
	}

	for _, b := range s.Buckets {
		if depth <= b.Max {
			return b.Color
		}
	}

	return s.Buckets[len(s.Buckets)-1].Color
}

// Ranges converts the buckets into legend rows. The last row is open ended,
// labeled "90+" for the default scale.
func (s DepthScale) Ranges() []DepthRange {
	ranges := make([]DepthRange, 0, len(s.Buckets))

	lo := s.Floor
	for i, b := range s.Buckets {
		r := DepthRange{Lo: lo, Color: b.Color}
		if i == len(s.Buckets)-1 || math.IsInf(b.Max, 1) {
			r.Open = true
			r.Label = formatNumber(lo) + "+"
		} else {
			r.Hi = b.Max
			r.Label = formatNumber(lo) + "–" + formatNumber(b.Max)
		}
		ranges = append(ranges, r)
		lo = b.Max
	}

	return ranges
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
