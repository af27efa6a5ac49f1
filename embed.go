package collective

import "embed"

// EmbeddedAssets contains the stock scripts shipped with the engine:
// panels.js drives the layout dispatch, dirty.js guards unsaved admin
// forms. htmx itself is served from the site's static dir.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
