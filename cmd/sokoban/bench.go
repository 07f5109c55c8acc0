package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	engine "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

var (
	flagBenchTicks   int
	flagBenchSeed    uint64
	flagBenchProfile string
	flagBenchOut     string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Profile the engine with random walks",
	Long: `Drive every level of the pack with seeded random input and report
ticks per second. With --profile a pprof file is written to --out.

Inspect the result with:
  go tool pprof -http=":8000" ./sokoban cpu.pprof

Examples:
  sokoban bench
  sokoban bench --ticks 500000 --profile cpu
  sokoban bench --profile mem --out ./profiles`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchTicks, "ticks", 100000, "Ticks per level")
	benchCmd.Flags().Uint64Var(&flagBenchSeed, "seed", 1, "Random walk seed")
	benchCmd.Flags().StringVar(&flagBenchProfile, "profile", "", "Profile mode: cpu, mem or empty for none")
	benchCmd.Flags().StringVar(&flagBenchOut, "out", ".", "Directory for profile output")
}

func runBench(_ *cobra.Command, _ []string) {
	a, err := newApp(logToStderr)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	if err := a.loadLevels(); err != nil {
		fail("%v", err)
	}

	var stop interface{ Stop() }
	switch flagBenchProfile {
	case "":
	case "cpu":
		stop = profile.Start(profile.CPUProfile, profile.ProfilePath(flagBenchOut), profile.NoShutdownHook, profile.Quiet)
	case "mem":
		stop = profile.Start(profile.MemProfileAllocs, profile.ProfilePath(flagBenchOut), profile.NoShutdownHook, profile.Quiet)
	default:
		fail("unknown profile mode %q", flagBenchProfile)
	}

	rng := rand.New(rand.NewPCG(flagBenchSeed, flagBenchSeed))
	dirs := []engine.Direction{engine.DirUp, engine.DirDown, engine.DirLeft, engine.DirRight}

	var total int
	start := time.Now()
	for _, lvl := range a.levels {
		eng, err := lvl.NewEngine()
		if err != nil {
			fail("%v", err)
		}

		levelStart := time.Now()
		wins := 0
		for range flagBenchTicks {
			eng.PushKey(dirs[rng.IntN(len(dirs))])
			if eng.Tick().State == engine.StateWon {
				wins++
			}
		}
		total += flagBenchTicks
		a.logger.Debug("level done", "level", lvl.ID, "elapsed", time.Since(levelStart), "won_ticks", wins)
	}
	elapsed := time.Since(start)

	if stop != nil {
		stop.Stop()
	}

	fmt.Printf("%d levels, %d ticks in %s (%.0f ticks/s)\n",
		len(a.levels), total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())
}
