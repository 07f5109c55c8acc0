package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from an interactive menu",
	Long: `Start in menu mode. Solved levels are marked with their best move count.
After leaving a level with Esc you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  Tab          - Records board
  Q            - Quit

Examples:
  sokoban menu
  sokoban menu --pack classic
  sokoban menu --db ./records.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := newApp(logToFile)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	if err := a.loadLevels(); err != nil {
		fail("%v", err)
	}
	theme, err := a.theme()
	if err != nil {
		fail("%v", err)
	}

	sounds, closeSounds := a.openSounds()
	defer closeSounds()

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	err = tui.RunSession(tui.SessionOptions{
		Store:     store,
		Config:    a.runtimeConfig(),
		Player:    playerName(),
		PackID:    a.packID,
		PackTitle: a.packTitle,
		Levels:    a.levels,
		Theme:     theme,
		Sounds:    sounds,
		Logger:    a.logger,
	})
	if err != nil {
		fail("%v", err)
	}
}
