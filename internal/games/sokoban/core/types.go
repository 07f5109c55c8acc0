// Package core provides the puzzle state engine for Sokoban.
// It owns the entity data model, push resolution, the event pipeline and the
// win evaluator. This package is UI-agnostic and deterministic.
package core

import (
	"errors"
	"fmt"
)

// Direction is a directional key press.
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// ParseDirection parses a direction from a single letter (U, D, L, R) or its full name.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "U", "u", "Up", "up":
		return DirUp, true
	case "D", "d", "Down", "down":
		return DirDown, true
	case "L", "l", "Left", "left":
		return DirLeft, true
	case "R", "r", "Right", "right":
		return DirRight, true
	default:
		return 0, false
	}
}

// Colour is the colour shared by boxes and box spots.
// The zero value is unset and never valid on a built entity.
type Colour uint8

const (
	ColourUnset Colour = iota
	ColourBlue
	ColourRed
)

// String returns the lowercase colour name.
func (c Colour) String() string {
	switch c {
	case ColourBlue:
		return "blue"
	case ColourRed:
		return "red"
	default:
		return "unset"
	}
}

// Valid reports whether c belongs to the defined colour set.
func (c Colour) Valid() bool {
	return c == ColourBlue || c == ColourRed
}

// Coord is a grid cell.
type Coord struct {
	X, Y uint8
}

// Position places an entity on the grid.
// Z is a draw layer and is ignored by the simulation.
type Position struct {
	X, Y, Z uint8
}

// Coord returns the grid cell of the position.
func (p Position) Coord() Coord {
	return Coord{X: p.X, Y: p.Y}
}

var (
	ErrCoordinateUnderflow = errors.New("core: coordinate underflow")
	ErrCoordinateOverflow  = errors.New("core: coordinate overflow")
)

// Step returns the position one cell away in direction d.
// Steps that would leave [0, limit) are rejected instead of wrapping.
func (p Position) Step(d Direction, b Bounds) (Position, error) {
	next := p
	switch d {
	case DirUp:
		if p.Y == 0 {
			return p, fmt.Errorf("%w: y=0 moving %s", ErrCoordinateUnderflow, d)
		}
		next.Y--
	case DirDown:
		if int(p.Y)+1 >= int(b.Height) {
			return p, fmt.Errorf("%w: y=%d moving %s", ErrCoordinateOverflow, p.Y, d)
		}
		next.Y++
	case DirLeft:
		if p.X == 0 {
			return p, fmt.Errorf("%w: x=0 moving %s", ErrCoordinateUnderflow, d)
		}
		next.X--
	case DirRight:
		if int(p.X)+1 >= int(b.Width) {
			return p, fmt.Errorf("%w: x=%d moving %s", ErrCoordinateOverflow, p.X, d)
		}
		next.X++
	}
	return next, nil
}

// Bounds is the grid size.
type Bounds struct {
	Width, Height uint8
}

// Contains reports whether (x, y) lies inside the grid.
func (b Bounds) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < int(b.Width) && y < int(b.Height)
}

// Box is a pushable crate.
type Box struct {
	Colour Colour
}

// BoxSpot is a target cell for boxes.
type BoxSpot struct {
	Colour Colour
}

// RenderableKind tells presentation whether to animate.
type RenderableKind uint8

const (
	RenderStatic RenderableKind = iota
	RenderAnimated
)

// ErrNoRenderPaths is returned when a renderable is built without any asset.
var ErrNoRenderPaths = errors.New("core: renderable needs at least one path")

// Renderable references the assets used to draw an entity.
// Presentation only; the simulation never reads it.
type Renderable struct {
	paths []string
}

// NewRenderable creates a renderable from one or more asset references.
func NewRenderable(paths ...string) (Renderable, error) {
	if len(paths) == 0 {
		return Renderable{}, ErrNoRenderPaths
	}
	cp := make([]string, len(paths))
	copy(cp, paths)
	return Renderable{paths: cp}, nil
}

// Kind is Static for one path and Animated for more.
func (r Renderable) Kind() RenderableKind {
	if len(r.paths) > 1 {
		return RenderAnimated
	}
	return RenderStatic
}

// Frames returns the number of asset references.
func (r Renderable) Frames() int {
	return len(r.paths)
}

// Path returns the asset for frame i, wrapping around the frame count.
func (r Renderable) Path(i int) string {
	if len(r.paths) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return r.paths[i%len(r.paths)]
}
