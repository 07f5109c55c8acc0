package core

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/ecs"
)

// cellTokens mirrors the map text codes used by level files.
var cellTokens = map[string]Cell{
	".":  {Code: CellFloor},
	"W":  {Code: CellWall},
	"P":  {Code: CellPlayer},
	"BB": {Code: CellBox, Colour: ColourBlue},
	"RB": {Code: CellBox, Colour: ColourRed},
	"BS": {Code: CellBoxSpot, Colour: ColourBlue},
	"RS": {Code: CellBoxSpot, Colour: ColourRed},
	"N":  {Code: CellVoid},
}

// parseRows turns whitespace separated map rows into builder input.
func parseRows(t *testing.T, rows ...string) (int, int, []Cell) {
	t.Helper()

	var cells []Cell
	width := 0
	for y, row := range rows {
		tokens := strings.Fields(row)
		if len(tokens) > width {
			width = len(tokens)
		}
		for x, tok := range tokens {
			c, ok := cellTokens[tok]
			if !ok {
				t.Fatalf("unknown token %q at (%d,%d)", tok, x, y)
			}
			c.X, c.Y = x, y
			cells = append(cells, c)
		}
	}
	return width, len(rows), cells
}

// soundRecorder collects cues in order.
type soundRecorder struct {
	cues []string
}

func (r *soundRecorder) Play(cue string) {
	r.cues = append(r.cues, cue)
}

func newTestEngine(t *testing.T, rows ...string) (*Engine, *soundRecorder) {
	t.Helper()

	w, h, cells := parseRows(t, rows...)
	world, err := Build(w, h, cells)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	rec := &soundRecorder{}
	eng, err := NewEngine(world, WithSoundPlayer(rec))
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return eng, rec
}

// boxes returns box entities in creation order.
func boxes(e *Engine) []ecs.Entity {
	return e.world.Boxes.Entities()
}

func mustPosition(t *testing.T, e *Engine, id ecs.Entity) Position {
	t.Helper()
	p, ok := e.Position(id)
	if !ok {
		t.Fatalf("entity %v has no position", id)
	}
	return p
}

func playerPosition(t *testing.T, e *Engine) Position {
	t.Helper()
	id, ok := e.Player()
	if !ok {
		t.Fatal("no player")
	}
	return mustPosition(t, e, id)
}
