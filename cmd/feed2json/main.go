package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/quake"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input   string        `short:"i" long:"in" description:"Feed URL or file path" default:"https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_week.geojson"`
	Output  string        `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	Format  string        `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Timeout time.Duration `short:"t" long:"timeout" description:"Fetch timeout" default:"30s"`
}

// marker is the flat record written in yaml mode.
type marker struct {
	ID        string      `yaml:"id,omitempty"`
	Place     string      `yaml:"place"`
	Magnitude float64     `yaml:"mag"`
	Depth     float64     `yaml:"depth"`
	Lat       float64     `yaml:"lat"`
	Lon       float64     `yaml:"lon"`
	Style     quake.Style `yaml:"style"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	loader := feed.New(config.Feed{URL: opts.Input, Timeout: opts.Timeout})
	c, err := loader.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading feed: %v\n", err)
		os.Exit(1)
	}

	layer, err := quake.DefaultDepthScale.Markers("Earthquakes", c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building markers: %v\n", err)
		os.Exit(1)
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		out := make([]marker, 0, len(layer.Markers))
		for _, m := range layer.Markers {
			out = append(out, marker{
				ID:        m.Event.ID,
				Place:     m.Event.Place,
				Magnitude: m.Event.Magnitude,
				Depth:     m.Event.Depth,
				Lat:       m.Lat,
				Lon:       m.Lon,
				Style:     m.Style,
			})
		}
		outputData, err = yaml.Marshal(out)
	} else {
		outputData, err = json.MarshalIndent(layer.GeoJSON(), "", "  ")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %d earthquakes to %s (format: %s, skipped: %d)\n",
			len(layer.Markers), opts.Output, opts.Format, c.Skipped)
	} else {
		fmt.Println(string(outputData))
	}
}
