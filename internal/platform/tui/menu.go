package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// MenuItem represents a selectable level in the menu.
type MenuItem struct {
	Index  int
	ID     string
	Title  string
	Size   string
	Best   int // Fewest moves recorded, 0 when unsolved
	Solved bool
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	packTitle    string
	items        []MenuItem
	cursor       int
	scrollOffset int
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	help         help.Model
	quitting     bool
	selected     *MenuItem // Set when user selects a level
	openRecords  bool      // True if user pressed Tab for records
}

// NewMenuModel creates a new level picker for a pack.
// store may be nil, in which case no progress is shown.
func NewMenuModel(packID, packTitle string, lvls []levels.Level, store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	progress := map[string]int{}
	if store != nil {
		if p, err := store.PackProgress(packID); err == nil {
			progress = p
		}
	}

	items := make([]MenuItem, len(lvls))
	for i, lvl := range lvls {
		best, solved := progress[lvl.ID]
		items[i] = MenuItem{
			Index:  i,
			ID:     lvl.ID,
			Title:  lvl.Title(),
			Size:   fmt.Sprintf("%dx%d", lvl.Width, lvl.Height),
			Best:   best,
			Solved: solved,
		}
	}

	h := help.New()
	h.ShowAll = true

	return MenuModel{
		packTitle: packTitle,
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the level
		}

	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleRows is how many level lines fit between the header and the help.
func (m MenuModel) visibleRows() int {
	rows := m.height - 12
	if rows < 3 {
		rows = 3
	}
	return rows
}

// updateScroll keeps the cursor inside the visible window.
func (m *MenuModel) updateScroll() {
	rows := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor - rows + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	solvedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S O K O B A N"), m.width))
	b.WriteString("\n\n")

	solved := 0
	for _, item := range m.items {
		if item.Solved {
			solved++
		}
	}
	subtitle := fmt.Sprintf("%s - %d/%d solved", m.packTitle, solved, len(m.items))
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	end := m.scrollOffset + m.visibleRows()
	if end > len(m.items) {
		end = len(m.items)
	}
	if m.scrollOffset > 0 {
		b.WriteString(centerText(dimStyle.Render("..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		item := m.items[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		mark := "  "
		best := ""
		if item.Solved {
			mark = solvedStyle.Render("* ")
			best = fmt.Sprintf("  best %d", item.Best)
		}

		line := fmt.Sprintf("%s%s%2d. %-24s %6s%s", cursor, mark, item.Index+1, item.Title, item.Size, best)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(dimStyle.Render("..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Records  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keyMapper.Keys())))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records board.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
