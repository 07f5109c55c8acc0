package core

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/ecs"
)

// Engine runs the simulation for one level.
// A tick runs push resolution, one event pipeline pass and the win evaluator,
// strictly in that order. Engine is not safe for concurrent use; the platform
// drives it from a single loop.
type Engine struct {
	world    *World
	input    InputQueue
	events   EventQueue
	gameplay Gameplay
	sounds   SoundPlayer
	logger   *log.Logger
	ticks    uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithSoundPlayer routes sound cues to p.
func WithSoundPlayer(p SoundPlayer) Option {
	return func(e *Engine) {
		if p != nil {
			e.sounds = p
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine validates w and wraps it in an engine.
// Invariant violations are fatal: the engine refuses to run a malformed world.
func NewEngine(w *World, opts ...Option) (*Engine, error) {
	if w == nil {
		return nil, fmt.Errorf("core: nil world")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		world:  w,
		sounds: silentPlayer{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// TickReport describes what happened during one tick.
type TickReport struct {
	Tick       uint64
	Direction  Direction
	Consumed   bool         // a queued key was consumed
	Moved      []ecs.Entity // entities moved, in chain order
	Blocked    bool         // the push hit an immovable
	Sounds     []string     // cues fired by the event pass
	State      GameplayState
	MovesCount uint32
}

// PushKey queues a directional key press.
func (e *Engine) PushKey(d Direction) {
	e.input.Push(d)
}

// PendingKeys returns the number of queued key presses.
func (e *Engine) PendingKeys() int {
	return e.input.Len()
}

// PendingEvents returns the number of events waiting for the next pass.
func (e *Engine) PendingEvents() int {
	return e.events.Len()
}

// Tick advances the simulation by one step.
func (e *Engine) Tick() TickReport {
	e.ticks++

	push := resolvePush(e.world, &e.input, &e.events, &e.gameplay, e.logger)
	cues := processEvents(e.world, &e.events, e.sounds, e.logger)
	e.gameplay.State = EvaluateWin(e.world)

	return TickReport{
		Tick:       e.ticks,
		Direction:  push.direction,
		Consumed:   push.consumed,
		Moved:      push.moved,
		Blocked:    push.blocked,
		Sounds:     cues,
		State:      e.gameplay.State,
		MovesCount: e.gameplay.MovesCount,
	}
}

// Gameplay returns the current progress resource.
func (e *Engine) Gameplay() Gameplay {
	return e.gameplay
}

// Coverage returns how many spots hold a box, and how many spots exist.
func (e *Engine) Coverage() (covered, total int) {
	return Coverage(e.world)
}

// Bounds returns the grid size.
func (e *Engine) Bounds() Bounds {
	return e.world.Bounds
}

// Position returns a copy of an entity's position.
func (e *Engine) Position(id ecs.Entity) (Position, bool) {
	p := e.world.Positions.Get(id)
	if p == nil {
		return Position{}, false
	}
	return *p, true
}

// Player returns the player entity.
func (e *Engine) Player() (ecs.Entity, bool) {
	return e.world.Player()
}

// Sprite is a read-only view of a drawable entity.
type Sprite struct {
	Entity     ecs.Entity
	Position   Position
	Renderable Renderable
}

// Sprites returns every drawable entity sorted by z, then by creation order.
func (e *Engine) Sprites() []Sprite {
	out := make([]Sprite, 0, e.world.Renderables.Len())
	for id, r := range e.world.Renderables.All() {
		pos := e.world.Positions.Get(id)
		if pos == nil {
			continue
		}
		out = append(out, Sprite{Entity: id, Position: *pos, Renderable: *r})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.Z < out[j].Position.Z
	})
	return out
}
