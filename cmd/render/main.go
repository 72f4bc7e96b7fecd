package main

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/woozymasta/quakemap/internal/composer"
	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/logger"
	"github.com/woozymasta/quakemap/internal/quake"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string        `short:"c" long:"config"       env:"CONFIG_FILE"  description:"Path to configuration file (built-in defaults when empty)"`
	Output      string        `short:"o" long:"out"          env:"OUTPUT_FILE"  description:"Output HTML file path" default:"earthquakes.html"`
	Snapshot    string        `short:"s" long:"snapshot"                        description:"Also save the raw feed document to this path"`
	FeedURL     string        `short:"f" long:"feed"         env:"FEED_URL"     description:"Override feed URL or file path"`
	FeedTimeout time.Duration `short:"t" long:"feed-timeout" env:"FEED_TIMEOUT" description:"Override feed fetch timeout"`
	NoMinify    bool          `long:"no-minify"                                 description:"Write the page without minification"`
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

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.FeedURL != "" {
		cfg.Feed.URL = opts.FeedURL
	}
	if opts.FeedTimeout > 0 {
		cfg.Feed.Timeout = opts.FeedTimeout
	}

	renderer, err := composer.NewRenderer(!opts.NoMinify)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare page templates")
	}

	loader := feed.New(cfg.Feed)
	ctx := context.Background()

	fc, err := loader.Fetch(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("feed", loader.Source()).Msg("Failed to fetch feed")
	}

	if opts.Snapshot != "" {
		if err := feed.Save(opts.Snapshot, fc); err != nil {
			log.Error().Err(err).Str("path", opts.Snapshot).Msg("Failed to save feed snapshot")
		}
	}

	m, err := composer.Build(ctx, staticSource{c: feed.Decode(fc)}, cfg.Map, quake.DefaultDepthScale)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build map")
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, m); err != nil {
		log.Fatal().Err(err).Msg("Failed to render map page")
	}

	tmp := opts.Output + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write page")
	}
	if err := os.Rename(tmp, opts.Output); err != nil {
		log.Fatal().Err(err).Msg("Failed to write page")
	}

	log.Info().
		Str("out", opts.Output).
		Int("events", m.Summary.Count).
		Int("skipped", m.Summary.Skipped).
		Msg("Map page rendered")
}

// staticSource serves an already fetched collection.
type staticSource struct {
	c quake.Collection
}

func (s staticSource) Load(context.Context) (quake.Collection, error) {
	return s.c, nil
}
