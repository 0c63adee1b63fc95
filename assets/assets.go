// Package assets embeds the web page served at the root path.
// index.html is generated from index.html.tpl, style.css and script.js by cmd/minify.
package assets

import _ "embed"

// Index is the minified map page.
//
//go:embed index.html
var Index []byte
