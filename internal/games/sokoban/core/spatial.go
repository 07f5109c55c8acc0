package core

import "github.com/vovakirdan/tui-sokoban/internal/ecs"

// SpatialIndex maps grid cells to entities for the push phase.
// It is rebuilt from the store every tick and never cached.
type SpatialIndex struct {
	Movable   map[Coord]ecs.Entity
	Immovable map[Coord]ecs.Entity
}

// BuildSpatialIndex indexes every positioned Movable and Immovable entity.
// When two entities with the same tag share a cell, the later one in store order wins.
func BuildSpatialIndex(w *World) SpatialIndex {
	return SpatialIndex{
		Movable:   indexTagged(w, w.Movables),
		Immovable: indexTagged(w, w.Immovables),
	}
}

func indexTagged(w *World, tags *ecs.Tags) map[Coord]ecs.Entity {
	out := make(map[Coord]ecs.Entity, tags.Len())
	for e := range tags.All() {
		if pos := w.Positions.Get(e); pos != nil {
			out[pos.Coord()] = e
		}
	}
	return out
}
