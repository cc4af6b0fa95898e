package web

import "embed"

// Templates holds all HTML templates served by the frontend.
//
//go:embed templates
var Templates embed.FS

// Static holds the stylesheet and other fixed assets.
//
//go:embed static
var Static embed.FS
