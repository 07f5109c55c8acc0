package core

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/ecs"
)

// World is the component store for one level.
// Entities are created at load time and never removed.
type World struct {
	Bounds Bounds

	entities ecs.Registry

	Positions   *ecs.Table[Position]
	Renderables *ecs.Table[Renderable]
	Boxes       *ecs.Table[Box]
	Spots       *ecs.Table[BoxSpot]

	Movables   *ecs.Tags
	Immovables *ecs.Tags
	Players    *ecs.Tags
	Walls      *ecs.Tags
}

// NewWorld creates an empty world with the given grid size.
func NewWorld(b Bounds) *World {
	return &World{
		Bounds:      b,
		Positions:   ecs.NewTable[Position](),
		Renderables: ecs.NewTable[Renderable](),
		Boxes:       ecs.NewTable[Box](),
		Spots:       ecs.NewTable[BoxSpot](),
		Movables:    ecs.NewTags(),
		Immovables:  ecs.NewTags(),
		Players:     ecs.NewTags(),
		Walls:       ecs.NewTags(),
	}
}

// Spawn creates a bare entity.
func (w *World) Spawn() ecs.Entity {
	return w.entities.Create()
}

// EntityCount returns how many entities exist.
func (w *World) EntityCount() int {
	return w.entities.Len()
}

// Player returns the player entity, if any.
func (w *World) Player() (ecs.Entity, bool) {
	for e := range w.Players.All() {
		return e, true
	}
	return 0, false
}

// InvariantError reports a data model construction bug.
type InvariantError struct {
	Entity  ecs.Entity
	Code    string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("core: invariant %s violated by %v: %s", e.Code, e.Entity, e.Message)
}

// Validate checks the data model invariants.
// Any violation means the world was built incorrectly and must not be simulated.
func (w *World) Validate() error {
	for e := range w.Movables.All() {
		if w.Immovables.Has(e) {
			return &InvariantError{Entity: e, Code: "MOVABLE_AND_IMMOVABLE", Message: "entity carries both Movable and Immovable"}
		}
	}
	for e := range w.Walls.All() {
		if !w.Immovables.Has(e) {
			return &InvariantError{Entity: e, Code: "WALL_NOT_IMMOVABLE", Message: "wall must be Immovable"}
		}
	}
	for e, b := range w.Boxes.All() {
		if !w.Movables.Has(e) {
			return &InvariantError{Entity: e, Code: "BOX_NOT_MOVABLE", Message: "box must be Movable"}
		}
		if !b.Colour.Valid() {
			return &InvariantError{Entity: e, Code: "BOX_COLOUR", Message: fmt.Sprintf("box colour %s", b.Colour)}
		}
	}
	for e, s := range w.Spots.All() {
		if !s.Colour.Valid() {
			return &InvariantError{Entity: e, Code: "SPOT_COLOUR", Message: fmt.Sprintf("box spot colour %s", s.Colour)}
		}
	}
	players := 0
	for e := range w.Players.All() {
		players++
		if !w.Movables.Has(e) {
			return &InvariantError{Entity: e, Code: "PLAYER_NOT_MOVABLE", Message: "player must be Movable"}
		}
		if players > 1 {
			return &InvariantError{Entity: e, Code: "MULTIPLE_PLAYERS", Message: "only one player is supported"}
		}
	}
	for e, p := range w.Positions.All() {
		if !w.Bounds.Contains(int(p.X), int(p.Y)) {
			return &InvariantError{Entity: e, Code: "OUT_OF_BOUNDS", Message: fmt.Sprintf("position (%d,%d) outside %dx%d", p.X, p.Y, w.Bounds.Width, w.Bounds.Height)}
		}
	}
	for e, r := range w.Renderables.All() {
		if r.Frames() == 0 {
			return &InvariantError{Entity: e, Code: "RENDERABLE_EMPTY", Message: "renderable without paths"}
		}
	}
	return nil
}
