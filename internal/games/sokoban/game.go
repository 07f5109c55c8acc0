// Package sokoban adapts the puzzle engine to the terminal platform.
// It owns level progression, maps platform actions onto engine input and
// draws the board into a core.Screen.
package sokoban

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	engine "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

// GameID identifies the game in storage and on the CLI.
const GameID = "sokoban"

// ErrNoLevels is returned when a game is created without levels.
var ErrNoLevels = errors.New("sokoban: no levels")

// Game implements Sokoban over an ordered list of levels.
type Game struct {
	packID string
	levels []levels.Level
	index  int

	engine *engine.Engine
	sounds engine.SoundPlayer
	logger *log.Logger
	theme  Theme
	clock  func() time.Time

	started time.Time
	missing map[string]bool

	// Screen dimensions
	screenW int
	screenH int

	tooSmall bool
}

// Option configures a Game.
type Option func(*Game)

// WithSounds routes sound cues to p.
func WithSounds(p engine.SoundPlayer) Option {
	return func(g *Game) { g.sounds = p }
}

// WithLogger sets the logger shared with the engine.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithTheme replaces the default tile theme.
func WithTheme(t Theme) Option {
	return func(g *Game) { g.theme = t }
}

// WithClock sets the time source used for animation frames.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.clock = now }
}

// WithPackID records which pack the levels came from.
func WithPackID(id string) Option {
	return func(g *Game) { g.packID = id }
}

// New creates a game positioned on the first level.
func New(lvls []levels.Level, opts ...Option) (*Game, error) {
	if len(lvls) == 0 {
		return nil, ErrNoLevels
	}

	g := &Game{
		levels:  lvls,
		logger:  log.New(io.Discard),
		theme:   DefaultTheme(),
		clock:   time.Now,
		missing: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.load(0); err != nil {
		return nil, err
	}
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sokoban"
}

// PackID returns the pack the levels came from.
func (g *Game) PackID() string {
	return g.packID
}

// Reset adopts new screen dimensions and restarts the current level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	if err := g.load(g.index); err != nil {
		// Levels are validated when loaded, so a rebuild cannot fail.
		g.logger.Error("rebuilding level", "level", g.Level().ID, "error", err)
	}
	g.checkScreenSize()
}

// Resize adopts new screen dimensions without touching the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// SelectLevel jumps to the level with the given ID.
func (g *Game) SelectLevel(id string) error {
	i, err := levels.Find(g.levels, id)
	if err != nil {
		return err
	}
	return g.load(i)
}

// SelectIndex jumps to the level at position i.
func (g *Game) SelectIndex(i int) error {
	if i < 0 || i >= len(g.levels) {
		return fmt.Errorf("sokoban: level index %d out of range [0,%d)", i, len(g.levels))
	}
	return g.load(i)
}

// load builds a fresh engine for level i.
func (g *Game) load(i int) error {
	lvl := g.levels[i]
	eng, err := lvl.NewEngine(
		engine.WithSoundPlayer(g.sounds),
		engine.WithLogger(g.logger),
	)
	if err != nil {
		return fmt.Errorf("sokoban: loading %s: %w", lvl.ID, err)
	}

	g.index = i
	g.engine = eng
	g.started = g.clock()
	g.logger.Info("level loaded", "level", lvl.ID, "size", fmt.Sprintf("%dx%d", lvl.Width, lvl.Height))
	return nil
}

// Step applies one frame of input and advances the engine by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.Actions {
		switch a {
		case core.ActionRestart:
			g.switchTo(g.index)
		case core.ActionNextLevel:
			g.switchTo(g.index + 1)
		case core.ActionPrevLevel:
			g.switchTo(g.index - 1)
		default:
			if d, ok := direction(a); ok {
				g.engine.PushKey(d)
			}
		}
	}

	before := g.engine.Gameplay().State
	report := g.engine.Tick()

	return core.StepResult{
		State:  g.State(),
		Sounds: report.Sounds,
		Solved: before != engine.StateWon && report.State == engine.StateWon,
	}
}

// switchTo loads level i if it exists.
func (g *Game) switchTo(i int) {
	if i < 0 || i >= len(g.levels) {
		return
	}
	if err := g.load(i); err != nil {
		g.logger.Error("switching level", "index", i, "error", err)
	}
}

// direction maps a movement action onto an engine direction.
func direction(a core.Action) (engine.Direction, bool) {
	switch a {
	case core.ActionUp:
		return engine.DirUp, true
	case core.ActionDown:
		return engine.DirDown, true
	case core.ActionLeft:
		return engine.DirLeft, true
	case core.ActionRight:
		return engine.DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	gp := g.engine.Gameplay()
	won := gp.State == engine.StateWon
	return core.GameState{
		LevelID:    g.Level().ID,
		LevelIndex: g.index,
		Moves:      int(gp.MovesCount),
		Won:        won,
		Finished:   won && g.index == len(g.levels)-1,
	}
}

// Elapsed returns the time spent on the current level since it was loaded.
func (g *Game) Elapsed() time.Duration {
	return g.clock().Sub(g.started)
}

// Level returns the current level.
func (g *Game) Level() levels.Level {
	return g.levels[g.index]
}

// Levels returns every level in play order.
func (g *Game) Levels() []levels.Level {
	return g.levels
}

// Engine exposes the current engine for read-only inspection.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// MissingAssets lists asset references the theme could not draw.
func (g *Game) MissingAssets() []string {
	out := make([]string, 0, len(g.missing))
	for p := range g.missing {
		out = append(out, p)
	}
	return out
}

// checkScreenSize flags screens too small for the current board.
func (g *Game) checkScreenSize() {
	b := g.engine.Bounds()
	needW := int(b.Width)*cellWidth + 2
	needH := int(b.Height) + hudHeight + footerHeight
	g.tooSmall = g.screenW < needW || g.screenH < needH
}
