// Package views embeds the server-rendered HTML templates so the binary
// ships them without a working directory dependency.
package views

import "embed"

//go:embed *.html
var FS embed.FS
