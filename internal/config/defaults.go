package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultConfig returns the default configuration.
// It mirrors defaults/sokoban.yaml and backs it up if the embed fails to parse.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			FPS:  30,
			Pack: "classic",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SoundsDir:  "~/.sokoban/sounds",
			Volume:     1.0,
			SampleRate: 44100,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.sokoban/sokoban.log",
		},
		Storage: StorageConfig{
			DBPath: "~/.sokoban/records.db",
		},
		Server: ServerConfig{
			Address:     ":23234",
			HostKeyPath: "~/.sokoban/host_key",
			IdleTimeout: 30 * time.Minute,
		},
		Theme: ThemeConfig{
			Tiles: map[string]string{},
		},
	}
}
