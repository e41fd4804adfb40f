// Package templates embeds the console's HTML templates.
package templates

import "embed"

// FS holds base.html, partials.html and one file per page.
//
//go:embed *.html
var FS embed.FS
