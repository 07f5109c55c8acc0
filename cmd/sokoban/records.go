package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var (
	flagRecordsLimit int
	flagRecordsTUI   bool
	flagRecordsClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [level]",
	Short: "Show best completions",
	Long: `Display the best completions for a level, or for every level of the
pack when no level is given. Ranking is by fewest moves, then fastest time.

Examples:
  sokoban records
  sokoban records 01
  sokoban records --tui
  sokoban records 01 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of records per level")
	recordsCmd.Flags().BoolVar(&flagRecordsTUI, "tui", false, "Browse records interactively")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete the records of the given level")
}

func runRecords(_ *cobra.Command, args []string) {
	a, err := newApp(logToStderr)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	if err := a.loadLevels(); err != nil {
		fail("%v", err)
	}

	store := a.openStore()
	if store == nil {
		fail("records database is unavailable")
	}
	defer store.Close()

	selected := a.levels
	if len(args) == 1 {
		i, err := levels.Find(a.levels, args[0])
		if err != nil {
			fail("%v (run 'sokoban list' to see level IDs)", err)
		}
		selected = a.levels[i : i+1]
	}

	if flagRecordsClear {
		if len(args) == 0 {
			fail("--clear needs a level ID")
		}
		if err := store.ClearCompletions(a.packID, selected[0].ID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared records for %s.\n", selected[0].Title())
		return
	}

	if flagRecordsTUI {
		cfg := a.runtimeConfig()
		if _, err := tui.RunScoreboard(store, a.packID, selected, cfg.ScreenW, cfg.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	for _, lvl := range selected {
		records, err := store.TopCompletions(a.packID, lvl.ID, flagRecordsLimit)
		if err != nil {
			fail("retrieving records: %v", err)
		}

		fmt.Printf("Records - %s (%s)\n", lvl.Title(), lvl.ID)
		fmt.Println()

		if len(records) == 0 {
			fmt.Println("  No records yet.")
			fmt.Println()
			continue
		}

		fmt.Printf("  %-4s  %-6s  %-8s  %-12s  %s\n", "Rank", "Moves", "Time", "Player", "Date")
		fmt.Printf("  %-4s  %-6s  %-8s  %-12s  %s\n", "----", "-----", "----", "------", "----")
		for i, r := range records {
			fmt.Printf("  %-4d  %-6d  %-8s  %-12s  %s\n",
				i+1, r.Moves, r.Duration.Round(time.Second/10).String(), r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
		}

		stats, err := store.GetLevelStats(a.packID, lvl.ID)
		if err == nil {
			fmt.Println()
			fmt.Printf("  Solves: %d  Players: %d  Avg moves: %.1f\n", stats.Solves, stats.Players, stats.AvgMoves)
		}
		fmt.Println()
	}
}
