// Package config provides YAML-based configuration loading for the
// Sokoban game, its audio, storage and SSH server.
package config

import "time"

// Config contains all configuration for the game and its platform.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Audio   AudioConfig   `yaml:"audio"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// GameConfig defines level selection and pacing.
type GameConfig struct {
	FPS        int    `yaml:"fps"`         // Simulation ticks per second
	Pack       string `yaml:"pack"`        // Registered level pack ID
	LevelsDir  string `yaml:"levels_dir"`  // Directory of level files; overrides Pack
	StartLevel string `yaml:"start_level"` // Level ID to open first
}

// AudioConfig defines sound cue playback.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SoundsDir  string  `yaml:"sounds_dir"` // Holds wall.wav, correct.wav, incorrect.wav
	Volume     float64 `yaml:"volume"`     // Linear gain, 1.0 = unchanged
	SampleRate int     `yaml:"sample_rate"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file used while the TUI owns the terminal
}

// StorageConfig defines where completion records live.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// ThemeConfig overrides tile glyphs. Keys are asset references, values are
// "glyph" or "glyph:color".
type ThemeConfig struct {
	Tiles map[string]string `yaml:"tiles"`
}
