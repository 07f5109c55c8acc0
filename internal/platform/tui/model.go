package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/audio"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// Model is the Bubble Tea model for playing a level pack.
type Model struct {
	game       *sokoban.Game
	screen     *core.Screen
	store      *storage.Store
	sounds     *audio.Toggle
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string // Shown under the board once a level is solved
	quitting   bool
	backToMenu bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithSoundToggle lets the mute key silence p.
// The same toggle should be handed to the game as its sound player.
func WithSoundToggle(p *audio.Toggle) ModelOption {
	return func(m *Model) { m.sounds = p }
}

// WithModelLogger sets the logger for record keeping.
func WithModelLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPlayer names the player in saved records.
func WithPlayer(name string) ModelOption {
	return func(m *Model) { m.player = name }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *sokoban.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.gameState = game.State()
	return m
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Resize(m.config.ScreenW, m.config.ScreenH)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		return m, nil
	case action == core.ActionMute:
		if m.sounds != nil {
			m.sounds.SetMuted(!m.sounds.Muted())
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize processes window resize events.
// The level keeps its progress; only the layout changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one engine tick with the keys pressed since the last one.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) ||
		m.inputFrame.Has(core.ActionNextLevel) ||
		m.inputFrame.Has(core.ActionPrevLevel) {
		m.status = ""
	}

	elapsed := m.game.Elapsed()
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Solved {
		m.status = m.recordCompletion(result.State, elapsed)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// recordCompletion saves a solved level and returns the status line to show.
func (m *Model) recordCompletion(state core.GameState, elapsed time.Duration) string {
	logger := m.logger.With("pack", m.game.PackID(), "level", state.LevelID)
	logger.Info("level solved", "moves", state.Moves, "elapsed", elapsed.Round(time.Millisecond))

	if m.store == nil {
		return fmt.Sprintf("Solved in %d moves", state.Moves)
	}

	best, hadBest, err := m.store.BestMoves(m.game.PackID(), state.LevelID)
	if err != nil {
		logger.Warn("reading best moves", "error", err)
	}

	_, err = m.store.SaveCompletion(storage.Completion{
		PackID:   m.game.PackID(),
		LevelID:  state.LevelID,
		Player:   m.player,
		Moves:    state.Moves,
		Duration: elapsed,
	})
	if err != nil {
		logger.Warn("saving completion", "error", err)
		return fmt.Sprintf("Solved in %d moves", state.Moves)
	}

	if !hadBest || state.Moves < best {
		return fmt.Sprintf("New best: %d moves", state.Moves)
	}
	return fmt.Sprintf("Solved in %d moves (best %d)", state.Moves, best)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".sokoban", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.PackID(), m.gameState.LevelID, timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.drawStatus()

	return RenderScreen(m.screen)
}

// drawStatus overlays the record line and mute marker.
func (m Model) drawStatus() {
	h := m.screen.Height()
	if m.status != "" && m.gameState.Won && h > 0 {
		m.screen.DrawTextCentered(h-1, m.status, core.ColorBrightYellow)
	}
	if m.sounds != nil && m.sounds.Muted() {
		m.screen.DrawTextColor(m.screen.Width()-7, 0, "[muted]", core.ColorGray)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Status returns the record line shown after a solve.
func (m Model) Status() string {
	return m.status
}

// Run starts the Bubble Tea program with the given model.
func Run(game *sokoban.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
