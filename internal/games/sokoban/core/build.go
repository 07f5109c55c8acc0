package core

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/ecs"
)

// CellCode identifies what a level cell contains.
type CellCode uint8

const (
	CellVoid CellCode = iota
	CellFloor
	CellWall
	CellPlayer
	CellBox
	CellBoxSpot
	cellCodeCount
)

// String returns the code name.
func (c CellCode) String() string {
	switch c {
	case CellVoid:
		return "void"
	case CellFloor:
		return "floor"
	case CellWall:
		return "wall"
	case CellPlayer:
		return "player"
	case CellBox:
		return "box"
	case CellBoxSpot:
		return "box-spot"
	default:
		return fmt.Sprintf("CellCode(%d)", uint8(c))
	}
}

// Cell is one (x, y, code) triple from a level description.
// Colour is only meaningful for boxes and box spots.
type Cell struct {
	X, Y   int
	Code   CellCode
	Colour Colour
}

// MaxGridSize is the largest width or height a level may have.
const MaxGridSize = 255

// Draw layers.
const (
	zFloor   = 5
	zBoxSpot = 9
	zObject  = 10
)

// LevelError reports malformed level input. It is fatal at load time.
type LevelError struct {
	Code    string
	X, Y    int
	Message string
}

func (e *LevelError) Error() string {
	if e.X < 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] (%d,%d) %s", e.Code, e.X, e.Y, e.Message)
}

// Build creates a world from a level description.
// Every non-void cell gets a floor; objects stack on top of it.
func Build(width, height int, cells []Cell) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, &LevelError{Code: "EMPTY", X: -1, Message: fmt.Sprintf("grid %dx%d has no cells", width, height)}
	}
	if width > MaxGridSize || height > MaxGridSize {
		return nil, &LevelError{Code: "TOO_LARGE", X: -1, Message: fmt.Sprintf("grid %dx%d exceeds %d", width, height, MaxGridSize)}
	}

	w := NewWorld(Bounds{Width: uint8(width), Height: uint8(height)})
	players := 0

	for _, c := range cells {
		if !w.Bounds.Contains(c.X, c.Y) {
			return nil, &LevelError{Code: "OUT_OF_BOUNDS", X: c.X, Y: c.Y, Message: fmt.Sprintf("outside %dx%d grid", width, height)}
		}
		if c.Code >= cellCodeCount {
			return nil, &LevelError{Code: "UNKNOWN_CELL", X: c.X, Y: c.Y, Message: c.Code.String()}
		}
		if c.Code == CellVoid {
			continue
		}

		pos := Position{X: uint8(c.X), Y: uint8(c.Y)}
		if err := w.spawnFloor(pos); err != nil {
			return nil, err
		}

		var err error
		switch c.Code {
		case CellWall:
			err = w.spawnWall(pos)
		case CellPlayer:
			players++
			if players > 1 {
				return nil, &LevelError{Code: "DUPLICATE_PLAYER", X: c.X, Y: c.Y, Message: "level has more than one player"}
			}
			err = w.spawnPlayer(pos)
		case CellBox:
			if !c.Colour.Valid() {
				return nil, &LevelError{Code: "BAD_COLOUR", X: c.X, Y: c.Y, Message: fmt.Sprintf("box colour %s", c.Colour)}
			}
			err = w.spawnBox(pos, c.Colour)
		case CellBoxSpot:
			if !c.Colour.Valid() {
				return nil, &LevelError{Code: "BAD_COLOUR", X: c.X, Y: c.Y, Message: fmt.Sprintf("box spot colour %s", c.Colour)}
			}
			err = w.spawnBoxSpot(pos, c.Colour)
		}
		if err != nil {
			return nil, err
		}
	}

	if players == 0 {
		return nil, &LevelError{Code: "NO_PLAYER", X: -1, Message: "level has no player"}
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) spawnRenderable(pos Position, paths ...string) (ecs.Entity, error) {
	r, err := NewRenderable(paths...)
	if err != nil {
		return 0, err
	}
	e := w.Spawn()
	w.Positions.Set(e, pos)
	w.Renderables.Set(e, r)
	return e, nil
}

func (w *World) spawnFloor(pos Position) error {
	pos.Z = zFloor
	_, err := w.spawnRenderable(pos, "/images/floor.png")
	return err
}

func (w *World) spawnWall(pos Position) error {
	pos.Z = zObject
	e, err := w.spawnRenderable(pos, "/images/wall.png")
	if err != nil {
		return err
	}
	ecs.Add(w.Walls, e)
	ecs.Add(w.Immovables, e)
	return nil
}

func (w *World) spawnPlayer(pos Position) error {
	pos.Z = zObject
	e, err := w.spawnRenderable(pos,
		"/images/player_1.png",
		"/images/player_2.png",
		"/images/player_3.png",
	)
	if err != nil {
		return err
	}
	ecs.Add(w.Players, e)
	ecs.Add(w.Movables, e)
	return nil
}

func (w *World) spawnBox(pos Position, c Colour) error {
	pos.Z = zObject
	e, err := w.spawnRenderable(pos,
		fmt.Sprintf("/images/box_%s_1.png", c),
		fmt.Sprintf("/images/box_%s_2.png", c),
	)
	if err != nil {
		return err
	}
	w.Boxes.Set(e, Box{Colour: c})
	ecs.Add(w.Movables, e)
	return nil
}

func (w *World) spawnBoxSpot(pos Position, c Colour) error {
	pos.Z = zBoxSpot
	e, err := w.spawnRenderable(pos, fmt.Sprintf("/images/box_spot_%s.png", c))
	if err != nil {
		return err
	}
	w.Spots.Set(e, BoxSpot{Colour: c})
	return nil
}
