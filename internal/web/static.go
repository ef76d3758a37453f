package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// StaticFS exposes the embedded stylesheet and client scripts rooted at the
// static directory.
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}
