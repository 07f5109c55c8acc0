// Package audio plays the game's sound cues.
// Playback is fire-and-forget: a missing asset or a dead sound device never
// reaches the caller.
package audio

import (
	"slices"
	"sync"
)

// Cue names fired by the game.
const (
	CueWall      = "wall"
	CueCorrect   = "correct"
	CueIncorrect = "incorrect"
)

// Cues lists every cue the game fires.
var Cues = []string{CueWall, CueCorrect, CueIncorrect}

// Player fires named sound cues.
type Player interface {
	Play(cue string)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(string) {}

// Recorder keeps fired cues in order. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	cues []string
}

// Play records cue.
func (r *Recorder) Play(cue string) {
	r.mu.Lock()
	r.cues = append(r.cues, cue)
	r.mu.Unlock()
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.cues)
}

// Count returns how many times cue fired.
func (r *Recorder) Count(cue string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.cues {
		if c == cue {
			n++
		}
	}
	return n
}

// Reset forgets all recorded cues.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cues = nil
	r.mu.Unlock()
}

// Toggle wraps a player with a mute switch.
type Toggle struct {
	mu    sync.RWMutex
	next  Player
	muted bool
}

// NewToggle wraps p. A nil p behaves like Nop.
func NewToggle(p Player, muted bool) *Toggle {
	if p == nil {
		p = Nop{}
	}
	return &Toggle{next: p, muted: muted}
}

// Play forwards cue unless muted.
func (t *Toggle) Play(cue string) {
	t.mu.RLock()
	muted := t.muted
	t.mu.RUnlock()
	if !muted {
		t.next.Play(cue)
	}
}

// SetMuted switches muting on or off.
func (t *Toggle) SetMuted(m bool) {
	t.mu.Lock()
	t.muted = m
	t.mu.Unlock()
}

// Muted reports whether cues are dropped.
func (t *Toggle) Muted() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.muted
}
