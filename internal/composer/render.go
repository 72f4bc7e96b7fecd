package composer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"

	"github.com/woozymasta/quakemap/assets"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"
)

// Leaflet release loaded by the page.
const (
	LeafletCSS = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	LeafletJS  = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
)

type pageData struct {
	Map        Map
	CSS        template.CSS
	JS         template.JS
	LeafletCSS string
	LeafletJS  string
}

type errorData struct {
	Title   string
	Message string
	CSS     template.CSS
}

// Renderer turns a composed Map into a self-contained HTML page.
// Templates and static assets are prepared once; Render is safe for concurrent use.
type Renderer struct {
	m      *minify.M
	index  *template.Template
	errTpl *template.Template
	css    template.CSS
	js     template.JS
	minify bool
}

// NewRenderer parses the embedded templates. When minified is true the CSS,
// JS and every rendered page are passed through the minifier.
func NewRenderer(minified bool) (*Renderer, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)

	r := &Renderer{m: m, minify: minified}

	cssSrc, jsSrc := assets.Style, assets.Script
	if minified {
		var err error
		if cssSrc, err = m.String("text/css", cssSrc); err != nil {
			return nil, fmt.Errorf("minify css: %w", err)
		}
		if jsSrc, err = m.String("text/javascript", jsSrc); err != nil {
			return nil, fmt.Errorf("minify js: %w", err)
		}
	}
	r.css = template.CSS(cssSrc)
	r.js = template.JS(jsSrc)

	var err error
	if r.index, err = template.New("index").Parse(assets.Index); err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	if r.errTpl, err = template.New("error").Parse(assets.Error); err != nil {
		return nil, fmt.Errorf("parse error template: %w", err)
	}

	return r, nil
}

// Render writes the map page.
func (r *Renderer) Render(w io.Writer, m Map) error {
	return r.execute(w, r.index, pageData{
		Map:        m,
		CSS:        r.css,
		JS:         r.js,
		LeafletCSS: LeafletCSS,
		LeafletJS:  LeafletJS,
	})
}

// RenderError writes the page shown instead of the map when the feed fails.
func (r *Renderer) RenderError(w io.Writer, title string, cause error) error {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}

	return r.execute(w, r.errTpl, errorData{Title: title, Message: msg, CSS: r.css})
}

// Favicon returns the site icon, minified when the renderer minifies.
func (r *Renderer) Favicon() []byte {
	if !r.minify {
		return assets.Favicon
	}

	out, err := r.m.Bytes("image/svg+xml", assets.Favicon)
	if err != nil {
		return assets.Favicon
	}

	return out
}

func (r *Renderer) execute(w io.Writer, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute %s template: %w", t.Name(), err)
	}

	if !r.minify {
		_, err := w.Write(buf.Bytes())
		return err
	}

	return r.m.Minify("text/html", w, &buf)
}
