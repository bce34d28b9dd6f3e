// Package assets holds the template files that multi-agent-kit installs into a
// target repository.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed all:data
var bundled embed.FS

// FS returns the bundled template tree rooted at the asset root, so entry
// sources resolve as ".agents", "AGENTS.md", and so on.
func FS() fs.FS {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
