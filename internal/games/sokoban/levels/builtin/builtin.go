// Package builtin embeds the level packs shipped with the binary.
// Importing it registers them.
package builtin

import (
	"embed"
	"io/fs"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

// ClassicID is the ID of the default pack.
const ClassicID = "classic"

//go:embed classic
var classicFS embed.FS

func init() {
	registry.Register(ClassicID, func() registry.Pack {
		return registry.NewLoaderPack(ClassicID, "Classic", Classic())
	})
}

// Classic returns a loader over the embedded classic pack.
func Classic() *levels.Loader {
	sub, err := fs.Sub(classicFS, "classic")
	if err != nil {
		panic(err)
	}
	return levels.NewFSLoader(sub, "builtin/classic")
}
