package core

import (
	"fmt"

	"github.com/vovakirdan/tui-sokoban/internal/ecs"
)

// Event is a domain event flowing through the event pipeline.
type Event interface {
	fmt.Stringer
	isEvent()
}

// PlayerHitObstacle is raised when a push chain runs into an immovable entity.
type PlayerHitObstacle struct{}

// EntityMoved is raised once per entity moved by a push.
type EntityMoved struct {
	ID ecs.Entity
}

// BoxPlacedOnSpot is derived from EntityMoved when a box lands on a spot.
type BoxPlacedOnSpot struct {
	IsCorrectSpot bool
}

func (PlayerHitObstacle) isEvent() {}
func (EntityMoved) isEvent()       {}
func (BoxPlacedOnSpot) isEvent()   {}

func (PlayerHitObstacle) String() string { return "PlayerHitObstacle" }

func (e EntityMoved) String() string { return fmt.Sprintf("EntityMoved{%v}", e.ID) }

func (e BoxPlacedOnSpot) String() string {
	return fmt.Sprintf("BoxPlacedOnSpot{correct=%t}", e.IsCorrectSpot)
}

// Sound cue names fired by the event pipeline.
const (
	SoundWall      = "wall"
	SoundCorrect   = "correct"
	SoundIncorrect = "incorrect"
)

// SoundPlayer receives fire-and-forget sound cues.
// Implementations must not block and must swallow their own playback failures.
type SoundPlayer interface {
	Play(cue string)
}

type silentPlayer struct{}

func (silentPlayer) Play(string) {}
