package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List level packs and levels",
	Long: `Shows the registered level packs and the levels of the selected pack
(--pack or --levels-dir) together with the best recorded move counts.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func runList(_ *cobra.Command, _ []string) {
	packs := registry.List()

	fmt.Println("Level packs:")
	fmt.Println()
	for _, p := range packs {
		fmt.Printf("  %-12s  %s\n", p.ID, p.Title)
	}
	fmt.Println()

	a, err := newApp(logToStderr)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	if err := a.loadLevels(); err != nil {
		fail("%v", err)
	}

	progress := map[string]int{}
	if store := a.openStore(); store != nil {
		if p, err := store.PackProgress(a.packID); err == nil {
			progress = p
		}
		store.Close()
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, lvl := range a.levels {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
	}

	fmt.Printf("Levels in %s:\n", a.packTitle)
	fmt.Println()
	fmt.Printf("  %-*s  %-24s  %-6s  %s\n", maxIDLen, "ID", "Title", "Size", "Best")
	fmt.Printf("  %-*s  %-24s  %-6s  %s\n", maxIDLen, "--", "-----", "----", "----")

	for _, lvl := range a.levels {
		best := "-"
		if moves, ok := progress[lvl.ID]; ok {
			best = fmt.Sprintf("%d", moves)
		}
		size := fmt.Sprintf("%dx%d", lvl.Width, lvl.Height)
		fmt.Printf("  %-*s  %-24s  %-6s  %s\n", maxIDLen, lvl.ID, lvl.Title(), size, best)
	}

	fmt.Println()
	fmt.Println("Run 'sokoban play <id>' to play a level.")
}
