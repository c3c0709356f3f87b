// Package web ships the browser client.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var files embed.FS

// Static is the client bundle rooted at its index.html.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
