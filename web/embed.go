// Package web embeds the server-rendered templates so the binary is
// self-contained regardless of working directory.
package web

import "embed"

//go:embed templates/*.tmpl
var Templates embed.FS
