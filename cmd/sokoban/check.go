package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Validate level files",
	Long: `Parse and build every level file under the given files or directories
and report problems. Exits non-zero when any level is invalid.

Examples:
  sokoban check ./my-levels
  sokoban check level.txt other.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	failed := false

	for _, arg := range args {
		lvls, err := checkPath(arg)
		for _, lvl := range lvls {
			fmt.Printf("ok    %-12s %-24s %dx%d  %s\n", lvl.ID, lvl.Title(), lvl.Width, lvl.Height, lvl.FilePath)
		}
		if err != nil {
			failed = true
			for _, e := range flatten(err) {
				fmt.Printf("FAIL  %v\n", e)
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}

// checkPath loads a single level file or every level in a directory.
func checkPath(path string) ([]levels.Level, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return levels.NewLoader(path).LoadAll()
	}

	lvl, err := levels.NewLoader(filepath.Dir(path)).LoadFile(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return []levels.Level{lvl}, nil
}

// flatten expands errors.Join results into their parts.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
