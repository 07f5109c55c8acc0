package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/audio"
	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// app bundles what every command needs: config, logger and the chosen pack.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	logFile *os.File

	packID    string
	packTitle string
	levels    []levels.Level
}

// logTarget decides where log output goes.
type logTarget int

const (
	logToStderr logTarget = iota
	logToFile             // The TUI owns the terminal
)

// newApp loads configuration, applies flag overrides and opens the logger.
func newApp(target logTarget) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	applyFlags(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &app{cfg: cfg}
	if err := a.openLogger(target); err != nil {
		return nil, err
	}
	return a, nil
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(cfg *config.Config) {
	pf := rootCmd.PersistentFlags()
	if pf.Changed("fps") {
		cfg.Game.FPS = flagFPS
	}
	if pf.Changed("pack") {
		cfg.Game.Pack = flagPack
		cfg.Game.LevelsDir = ""
	}
	if pf.Changed("levels-dir") {
		cfg.Game.LevelsDir = flagLevelsDir
	}
	if pf.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if pf.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
}

func (a *app) openLogger(target logTarget) error {
	level, err := config.ParseLogLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if target == logToFile {
		w = io.Discard
		if a.cfg.Log.File != "" {
			path := config.ExpandPath(a.cfg.Log.File)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("cannot create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("cannot open log file: %w", err)
			}
			a.logFile = f
			w = f
		}
	}

	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
		Level:           level,
	})
	return nil
}

// Close releases the log file.
func (a *app) Close() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// loadLevels fills the pack fields from --levels-dir or the registry.
// Broken files in a directory are logged and skipped as long as one level loads.
func (a *app) loadLevels() error {
	if dir := a.cfg.Game.LevelsDir; dir != "" {
		root := config.ExpandPath(dir)
		lvls, err := levels.NewLoader(root).LoadAll()
		if err != nil {
			if len(lvls) == 0 {
				return err
			}
			a.logger.Warn("some levels failed to load", "dir", root, "error", err)
		}
		if len(lvls) == 0 {
			return fmt.Errorf("no levels found in %s", root)
		}
		a.packID = "dir:" + filepath.Base(root)
		a.packTitle = filepath.Base(root)
		a.levels = lvls
		return nil
	}

	pack, err := registry.Create(a.cfg.Game.Pack)
	if err != nil {
		return err
	}
	lvls, err := pack.Levels()
	if err != nil {
		return fmt.Errorf("loading pack %s: %w", pack.ID(), err)
	}
	if len(lvls) == 0 {
		return fmt.Errorf("pack %s has no levels", pack.ID())
	}
	a.packID = pack.ID()
	a.packTitle = pack.Title()
	a.levels = lvls
	return nil
}

// openStore opens the records database; failures leave the game playable.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(config.ExpandPath(a.cfg.Storage.DBPath))
	if err != nil {
		a.logger.Warn("could not open records database", "error", err)
		return nil
	}
	return store
}

// openSounds returns the mute toggle and a function to release the device.
func (a *app) openSounds() (*audio.Toggle, func()) {
	muted := flagMute || !a.cfg.Audio.Enabled
	if !a.cfg.Audio.Enabled {
		return audio.NewToggle(audio.Nop{}, muted), func() {}
	}

	player, err := audio.NewSpeakerPlayer(audio.SpeakerOptions{
		SoundsDir:  config.ExpandPath(a.cfg.Audio.SoundsDir),
		Volume:     a.cfg.Audio.Volume,
		SampleRate: a.cfg.Audio.SampleRate,
		Logger:     a.logger,
	})
	if err != nil {
		a.logger.Warn("sound disabled", "error", err)
		return audio.NewToggle(audio.Nop{}, true), func() {}
	}
	return audio.NewToggle(player, muted), player.Close
}

// theme applies configured tile overrides to the default theme.
func (a *app) theme() (sokoban.Theme, error) {
	return sokoban.DefaultTheme().Override(a.cfg.Theme.Tiles)
}

// runtimeConfig sizes the screen from the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = a.cfg.Game.FPS
	return cfg
}

// playerName identifies the local player in records.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
