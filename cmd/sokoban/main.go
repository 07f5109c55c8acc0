// sokoban is a terminal Sokoban with coloured boxes, level packs and an
// SSH server for remote play.
//
// Usage:
//
//	sokoban list                 - List level packs and levels
//	sokoban play [level]         - Play a pack starting at a level
//	sokoban menu                 - Pick levels interactively
//	sokoban serve                - Start SSH server for remote play
//	sokoban records [level]      - Show best completions
//	sokoban check <path>...      - Validate level files
//	sokoban replay <level> <moves> - Replay a move string headlessly
//	sokoban bench                - Profile the engine
//
// Global flags:
//
//	--config <path>   - Config file (default: search ~/.sokoban/configs, ./configs)
//	--fps <rate>      - Set tick rate
//	--pack <id>       - Level pack to play
//	--levels-dir <d>  - Load levels from a directory instead of a pack
//	--db <path>       - Set records database path
//	--mute            - Start with sound off
//	--log-level <l>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import packs to register them
	_ "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels/builtin"
)

var (
	// Global flags
	flagConfig    string
	flagFPS       int
	flagPack      string
	flagLevelsDir string
	flagDBPath    string
	flagMute      bool
	flagLogLevel  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push coloured boxes onto their spots",
	Long: `Sokoban is a terminal puzzle game. Push every box onto a spot to
clear the level. Boxes and spots come in blue and red.

Available commands:
  list     - Show level packs and their levels
  play     - Play a pack directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  records  - View best completions
  check    - Validate level files
  replay   - Replay a move string without a terminal UI
  bench    - Profile the engine

Examples:
  sokoban list
  sokoban play
  sokoban play 03 --pack classic
  sokoban menu --levels-dir ./my-levels
  sokoban serve
  sokoban records 01`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (ticks per second)")
	pf.StringVar(&flagPack, "pack", "", "Level pack ID (see 'sokoban list')")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level files; overrides --pack")
	pf.StringVar(&flagDBPath, "db", "", "Path to records database")
	pf.BoolVar(&flagMute, "mute", false, "Start with sound off")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(benchCmd)
}
