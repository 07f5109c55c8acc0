package sokoban

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/core"
)

// Tile is how one asset reference is drawn: two cells wide.
type Tile struct {
	Glyph string
	Color core.Color
}

// Theme maps renderable asset references onto tiles.
type Theme struct {
	Tiles   map[string]Tile
	Missing Tile
}

// DefaultTheme returns the built-in tile set.
func DefaultTheme() Theme {
	return Theme{
		Tiles: map[string]Tile{
			"/images/floor.png":         {Glyph: "· ", Color: core.ColorDarkGray},
			"/images/wall.png":          {Glyph: "██", Color: core.ColorGray},
			"/images/player_1.png":      {Glyph: "@ ", Color: core.ColorBrightYellow},
			"/images/player_2.png":      {Glyph: "@'", Color: core.ColorBrightYellow},
			"/images/player_3.png":      {Glyph: "@ ", Color: core.ColorYellow},
			"/images/box_blue_1.png":    {Glyph: "[]", Color: core.ColorBrightBlue},
			"/images/box_blue_2.png":    {Glyph: "[]", Color: core.ColorBlue},
			"/images/box_red_1.png":     {Glyph: "[]", Color: core.ColorBrightRed},
			"/images/box_red_2.png":     {Glyph: "[]", Color: core.ColorRed},
			"/images/box_spot_blue.png": {Glyph: "()", Color: core.ColorBlue},
			"/images/box_spot_red.png":  {Glyph: "()", Color: core.ColorRed},
		},
		Missing: Tile{Glyph: "? ", Color: core.ColorMagenta},
	}
}

// Override replaces or adds tiles. Each value is "glyph" or "glyph:color".
func (t Theme) Override(tiles map[string]string) (Theme, error) {
	out := Theme{Tiles: make(map[string]Tile, len(t.Tiles)+len(tiles)), Missing: t.Missing}
	for k, v := range t.Tiles {
		out.Tiles[k] = v
	}

	for path, def := range tiles {
		tile, err := parseTile(def)
		if err != nil {
			return Theme{}, fmt.Errorf("theme: tile %s: %w", path, err)
		}
		out.Tiles[path] = tile
	}
	return out, nil
}

func parseTile(def string) (Tile, error) {
	glyph, color := def, ""
	for i := len(def) - 1; i > 0; i-- {
		if def[i] == ':' {
			glyph, color = def[:i], def[i+1:]
			break
		}
	}
	if glyph == "" {
		return Tile{}, fmt.Errorf("empty glyph in %q", def)
	}

	tile := Tile{Glyph: glyph}
	if color != "" {
		c, ok := core.ParseColor(color)
		if !ok {
			return Tile{}, fmt.Errorf("unknown color %q", color)
		}
		tile.Color = c
	}
	return tile, nil
}

// lookup returns the tile for path and whether the theme knows it.
func (t Theme) lookup(path string) (Tile, bool) {
	tile, ok := t.Tiles[path]
	if !ok {
		return t.Missing, false
	}
	return tile, true
}
