package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	engine "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

var flagReplayQuiet bool

var replayCmd = &cobra.Command{
	Use:   "replay <level> <moves>",
	Short: "Replay a move string without a terminal UI",
	Long: `Run a level headlessly, one move per tick, and print the final board.
Moves are letters U, D, L, R, or words separated by spaces or commas.
Exits non-zero when the level is not solved at the end.

Examples:
  sokoban replay 01 RRRUULULDDDD
  sokoban replay 03 "right right right"`,
	Args: cobra.ExactArgs(2),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayQuiet, "quiet", false, "Only print the result line")
}

func runReplay(_ *cobra.Command, args []string) {
	a, err := newApp(logToStderr)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	if err := a.loadLevels(); err != nil {
		fail("%v", err)
	}

	moves, err := parseMoves(args[1])
	if err != nil {
		fail("%v", err)
	}

	i, err := levels.Find(a.levels, args[0])
	if err != nil {
		fail("%v", err)
	}
	lvl := a.levels[i]

	game, err := sokoban.New([]levels.Level{lvl}, sokoban.WithPackID(a.packID), sokoban.WithLogger(a.logger))
	if err != nil {
		fail("%v", err)
	}

	// Wide enough for the board, HUD and footer.
	w := max(lvl.Width*2+2, 48)
	h := lvl.Height + 6
	game.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: a.cfg.Game.FPS})

	frame := core.NewInputFrame()
	for _, d := range moves {
		frame.Clear()
		frame.Set(action(d))
		game.Step(frame)
	}
	// One idle tick flushes the cues of the last push.
	frame.Clear()
	state := game.Step(frame).State

	if !flagReplayQuiet {
		screen := core.NewScreen(w, h)
		game.Render(screen)
		fmt.Println(screen.String())
		fmt.Println()
	}

	covered, total := game.Engine().Coverage()
	fmt.Printf("%s: %d moves, %d/%d boxes placed, %s\n", lvl.ID, state.Moves, covered, total, game.Engine().Gameplay().State)
	if !state.Won {
		fail("level not solved")
	}
}

// parseMoves accepts "RRUL" or "right, right up".
func parseMoves(s string) ([]engine.Direction, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 1 {
		if _, ok := engine.ParseDirection(fields[0]); !ok {
			fields = strings.Split(fields[0], "")
		}
	}

	out := make([]engine.Direction, 0, len(fields))
	for _, f := range fields {
		d, ok := engine.ParseDirection(f)
		if !ok {
			return nil, fmt.Errorf("unknown move %q", f)
		}
		out = append(out, d)
	}
	return out, nil
}

// action maps an engine direction back onto a platform action.
func action(d engine.Direction) core.Action {
	switch d {
	case engine.DirUp:
		return core.ActionUp
	case engine.DirDown:
		return core.ActionDown
	case engine.DirLeft:
		return core.ActionLeft
	case engine.DirRight:
		return core.ActionRight
	}
	return core.ActionNone
}
