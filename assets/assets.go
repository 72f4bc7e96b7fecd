// Package assets embeds the page template and its static resources.
package assets

import _ "embed"

// Index is the html/template source of the map page.
//
//go:embed index.html.tpl
var Index string

// Error is the html/template source of the feed failure page.
//
//go:embed error.html.tpl
var Error string

// Style is the page stylesheet.
//
//go:embed style.css
var Style string

// Script builds the Leaflet map from the composed map description.
//
//go:embed script.js
var Script string

// Favicon is served at /favicon.ico.
//
//go:embed favicon.svg
var Favicon []byte
