// Package web holds the embedded HTML templates served by focusd.
package web

import "embed"

//go:embed templates/*.html
var TemplateFiles embed.FS
