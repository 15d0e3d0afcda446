// Package migrations embeds the goose SQL migrations for every service.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed item/*.sql
var files embed.FS

// Item returns the item service migrations rooted at their directory.
func Item() fs.FS {
	sub, err := fs.Sub(files, "item")
	if err != nil {
		panic(err)
	}
	return sub
}
