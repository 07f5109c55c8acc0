// Package formats provides pluggable level file format parsers.
// Every format carries the same map text; only the envelope differs.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Cells    []core.Cell
	Metadata map[string]string
}

// mapTokens maps map text tokens to builder cells.
// B and S predate coloured boxes and mean blue.
var mapTokens = map[string]core.Cell{
	".":  {Code: core.CellFloor},
	"W":  {Code: core.CellWall},
	"P":  {Code: core.CellPlayer},
	"N":  {Code: core.CellVoid},
	"BB": {Code: core.CellBox, Colour: core.ColourBlue},
	"RB": {Code: core.CellBox, Colour: core.ColourRed},
	"BS": {Code: core.CellBoxSpot, Colour: core.ColourBlue},
	"RS": {Code: core.CellBoxSpot, Colour: core.ColourRed},
	"B":  {Code: core.CellBox, Colour: core.ColourBlue},
	"S":  {Code: core.CellBoxSpot, Colour: core.ColourBlue},
}

// ParseMap converts map text into grid dimensions and builder cells.
// Rows are separated by newlines and tokens by whitespace; blank lines
// around the map are ignored. Short rows are padded with void.
func ParseMap(text string) (int, int, []core.Cell, error) {
	rows := strings.Split(strings.TrimSpace(text), "\n")
	if len(rows) == 1 && strings.TrimSpace(rows[0]) == "" {
		return 0, 0, nil, &core.LevelError{Code: "EMPTY", X: -1, Message: "map is empty"}
	}

	var cells []core.Cell
	width := 0
	for y, row := range rows {
		tokens := strings.Fields(row)
		width = max(width, len(tokens))
		for x, tok := range tokens {
			c, ok := mapTokens[tok]
			if !ok {
				return 0, 0, nil, &core.LevelError{Code: "UNKNOWN_CELL", X: x, Y: y, Message: fmt.Sprintf("unrecognised map item %q", tok)}
			}
			c.X, c.Y = x, y
			cells = append(cells, c)
		}
	}

	return width, len(rows), cells, nil
}

// FormatMap renders cells back into map text.
// Missing cells are written as void.
func FormatMap(width, height int, cells []core.Cell) string {
	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = "N"
		}
	}
	for _, c := range cells {
		if c.Y < 0 || c.Y >= height || c.X < 0 || c.X >= width {
			continue
		}
		grid[c.Y][c.X] = token(c)
	}

	var sb strings.Builder
	for y, row := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, " "))
	}
	return sb.String()
}

func token(c core.Cell) string {
	switch c.Code {
	case core.CellFloor:
		return "."
	case core.CellWall:
		return "W"
	case core.CellPlayer:
		return "P"
	case core.CellBox:
		if c.Colour == core.ColourRed {
			return "RB"
		}
		return "BB"
	case core.CellBoxSpot:
		if c.Colour == core.ColourRed {
			return "RS"
		}
		return "BS"
	default:
		return "N"
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".map", ".yaml", ".yml", ".toml"}
}

// fromMap fills the grid fields of lvl from map text.
func fromMap(lvl Level, text string) (Level, error) {
	w, h, cells, err := ParseMap(text)
	if err != nil {
		return Level{}, err
	}
	lvl.Width, lvl.Height, lvl.Cells = w, h, cells
	return lvl, nil
}
