package core

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/ecs"
)

// scanOutcome is how a chain scan ended.
type scanOutcome uint8

const (
	scanFree    scanOutcome = iota // found an empty cell, chain may move
	scanBlocked                    // hit an immovable
	scanOffGrid                    // chain front would leave the grid
)

// scanChain walks from the player's cell in direction d and collects the
// entities that would move together. The chain is nil unless the outcome is free.
func scanChain(idx SpatialIndex, from Position, d Direction, b Bounds) ([]ecs.Entity, scanOutcome) {
	dx, dy := d.Delta()
	x, y := int(from.X), int(from.Y)

	var chain []ecs.Entity
	for {
		if !b.Contains(x, y) {
			return nil, scanOffGrid
		}
		cell := Coord{X: uint8(x), Y: uint8(y)}

		if e, ok := idx.Movable[cell]; ok {
			chain = append(chain, e)
			x += dx
			y += dy
			continue
		}
		if _, ok := idx.Immovable[cell]; ok {
			return nil, scanBlocked
		}
		return chain, scanFree
	}
}

// pushResult summarizes one push phase.
type pushResult struct {
	direction Direction
	consumed  bool
	moved     []ecs.Entity
	blocked   bool
}

// resolvePush consumes one queued key and moves the player chain.
// It mutates positions and the move counter and enqueues domain events.
func resolvePush(w *World, input *InputQueue, events *EventQueue, gameplay *Gameplay, logger *log.Logger) pushResult {
	var res pushResult

	player, ok := w.Player()
	if !ok {
		return res
	}
	pos := w.Positions.Get(player)
	if pos == nil {
		return res
	}

	dir, ok := input.Pop()
	if !ok {
		return res
	}
	res.direction = dir
	res.consumed = true

	idx := BuildSpatialIndex(w)
	chain, outcome := scanChain(idx, *pos, dir, w.Bounds)

	switch outcome {
	case scanBlocked:
		res.blocked = true
		events.Push(PlayerHitObstacle{})
		return res
	case scanOffGrid:
		logger.Debug("push ignored at grid edge", "direction", dir, "x", pos.X, "y", pos.Y)
		return res
	}

	if len(chain) == 0 {
		return res
	}
	gameplay.MovesCount++

	for _, e := range chain {
		p := w.Positions.Get(e)
		if p == nil {
			continue
		}
		next, err := p.Step(dir, w.Bounds)
		if err != nil {
			logger.Warn("move skipped", "entity", e, "error", err)
			continue
		}
		*p = next
		res.moved = append(res.moved, e)
		events.Push(EntityMoved{ID: e})
	}

	return res
}
