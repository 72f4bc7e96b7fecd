// Package feed downloads the earthquake GeoJSON feed and decodes it into events.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/woozymasta/quakemap/internal/config"
	"github.com/woozymasta/quakemap/internal/geo"
	"github.com/woozymasta/quakemap/internal/quake"

	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 30 * time.Second
	maxFeedBytes   = 64 << 20
)

var (
	// ErrStatus is returned when the feed answers with a non-200 status.
	ErrStatus = errors.New("unexpected feed status")
	// ErrNotCollection is returned when the document is not a FeatureCollection.
	ErrNotCollection = errors.New("document is not a FeatureCollection")
)

// Observer is notified after every fetch attempt.
type Observer func(source string, took time.Duration, err error)

// Option customizes a Loader.
type Option func(*Loader)

// WithClient replaces the HTTP client. Its Timeout is left as is.
func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithObserver registers a fetch observer.
func WithObserver(o Observer) Option {
	return func(l *Loader) { l.observer = o }
}

// Loader fetches one feed source. It holds no per-fetch state and is safe for concurrent use.
type Loader struct {
	client   *http.Client
	observer Observer
	source   string
}

// New creates a loader for cfg.URL, bounded by cfg.Timeout.
func New(cfg config.Feed, opts ...Option) *Loader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	l := &Loader{
		source: cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Source returns the configured URL or file path.
func (l *Loader) Source() string {
	return l.source
}

// Load fetches the feed and decodes its valid features.
func (l *Loader) Load(ctx context.Context) (quake.Collection, error) {
	fc, err := l.Fetch(ctx)
	if err != nil {
		return quake.Collection{}, err
	}

	c := Decode(fc)
	log.Debug().
		Str("source", l.source).
		Int("events", len(c.Events)).
		Int("skipped", c.Skipped).
		Msg("Feed decoded")

	return c, nil
}

// Fetch returns the raw feed document. No retries are attempted.
func (l *Loader) Fetch(ctx context.Context) (fc geo.FeatureCollection, err error) {
	start := time.Now()
	defer func() {
		if l.observer != nil {
			l.observer(l.source, time.Since(start), err)
		}
	}()

	var body io.ReadCloser
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		body, err = l.get(ctx)
	} else {
		body, err = os.Open(l.source)
	}
	if err != nil {
		return geo.FeatureCollection{}, err
	}
	defer func() { _ = body.Close() }()

	if err = json.NewDecoder(io.LimitReader(body, maxFeedBytes)).Decode(&fc); err != nil {
		return geo.FeatureCollection{}, fmt.Errorf("decode feed: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		err = fmt.Errorf("%w: type %q", ErrNotCollection, fc.Type)
		return geo.FeatureCollection{}, err
	}

	return fc, nil
}

func (l *Loader) get(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	return resp.Body, nil
}

// Decode converts feed features into events, keeping feed order.
// Features without a magnitude or a valid lon/lat/depth triple are skipped.
func Decode(fc geo.FeatureCollection) quake.Collection {
	c := quake.Collection{
		Events: make([]quake.Event, 0, len(fc.Features)),
	}
	if fc.Metadata != nil {
		c.Title = fc.Metadata.Title
		if fc.Metadata.Generated > 0 {
			c.Generated = time.UnixMilli(fc.Metadata.Generated).UTC()
		}
	}

	for i, f := range fc.Features {
		lon, lat, depth, ok := f.Geometry.Point()
		if !ok || f.Properties.Mag == nil || !geo.Finite(*f.Properties.Mag) {
			c.Skipped++
			log.Warn().
				Int("index", i).
				Str("id", f.ID).
				Interface("coordinates", f.Geometry.Coordinates).
				Msg("Skipping malformed feature")
			continue
		}

		e := quake.Event{
			ID:        f.ID,
			Place:     f.Properties.Place,
			URL:       f.Properties.URL,
			Magnitude: *f.Properties.Mag,
			Longitude: lon,
			Latitude:  lat,
			Depth:     depth,
		}
		if f.Properties.Time > 0 {
			e.Time = time.UnixMilli(f.Properties.Time).UTC()
		}

		c.Events = append(c.Events, e)
	}

	return c
}
