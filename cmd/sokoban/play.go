package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level pack",
	Long: `Start playing the configured pack, optionally at a given level ID.

Controls:
  Arrows/WASD/HJKL - Move
  R                - Restart level
  N / P            - Next / previous level
  M                - Mute
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  sokoban play
  sokoban play 03
  sokoban play --pack classic --mute
  sokoban play --levels-dir ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
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

	game, err := sokoban.New(a.levels,
		sokoban.WithPackID(a.packID),
		sokoban.WithLogger(a.logger),
		sokoban.WithTheme(theme),
		sokoban.WithSounds(sounds),
	)
	if err != nil {
		fail("%v", err)
	}

	start := a.cfg.Game.StartLevel
	if len(args) == 1 {
		start = args[0]
	}
	if start != "" {
		if err := game.SelectLevel(start); err != nil {
			fail("%v (run 'sokoban list' to see level IDs)", err)
		}
	}

	// Open records storage
	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := a.runtimeConfig()
	game.Resize(cfg.ScreenW, cfg.ScreenH)

	if err := tui.Run(game, store, cfg,
		tui.WithSoundToggle(sounds),
		tui.WithModelLogger(a.logger),
		tui.WithPlayer(playerName()),
	); err != nil {
		fail("running game: %v", err)
	}
}
