package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/woozymasta/quakemap/internal/composer"
	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/feed"
	"github.com/woozymasta/quakemap/internal/logger"
	"github.com/woozymasta/quakemap/internal/metrics"
	"github.com/woozymasta/quakemap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string        `short:"c" long:"config"       env:"CONFIG_FILE"    description:"Path to configuration file (built-in defaults when empty)"`
	Addr        string        `short:"a" long:"addr"         env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port        int           `short:"p" long:"port"         env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	FeedURL     string        `short:"f" long:"feed"         env:"FEED_URL"       description:"Override feed URL or file path"`
	FeedTimeout time.Duration `short:"t" long:"feed-timeout" env:"FEED_TIMEOUT"   description:"Override feed fetch timeout"`
	NoMinify    bool          `long:"no-minify"              env:"NO_MINIFY"      description:"Serve pages without minification"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
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

	m := metrics.New()
	loader := feed.New(cfg.Feed, feed.WithObserver(m.ObserveFeedFetch))
	srvCtx := server.NewServerContext(cfg, loader, renderer, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", listenAddr).
			Str("feed", loader.Source()).
			Msg("Web server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Shutdown complete")
}
