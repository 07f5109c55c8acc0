package builtin

import (
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

func TestClassicRegistered(t *testing.T) {
	if !registry.Exists(ClassicID) {
		t.Fatal("classic pack not registered")
	}

	p, err := registry.Create(ClassicID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	lvls, err := p.Levels()
	if err != nil {
		t.Fatalf("every embedded level should load: %v", err)
	}
	if len(lvls) != 5 {
		t.Errorf("expected 5 levels, got %d", len(lvls))
	}
}

func TestClassicFirstLevel(t *testing.T) {
	lvl, err := Classic().LoadByID("01-first-steps")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Width != 8 || lvl.Height != 9 {
		t.Errorf("expected 8x9, got %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.Title() != "First Steps" {
		t.Errorf("Title() = %q", lvl.Title())
	}
}

// Solutions for the embedded levels, as direction letters.
var solutions = map[string]string{
	"01-first-steps": "RRRUULULDDDD",
	"02-two-colours": "URRRDLLLDRRR",
	"03-freight":     "RRR",
	"04-corners":     "ULUURRDDLDRUULULDD",
	"05-twins":       "LDRURD",
}

func TestClassicSolutions(t *testing.T) {
	lvls, err := Classic().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	for _, lvl := range lvls {
		t.Run(lvl.ID, func(t *testing.T) {
			moves, ok := solutions[lvl.ID]
			if !ok {
				t.Fatalf("no solution recorded for %s", lvl.ID)
			}

			eng, err := lvl.NewEngine()
			if err != nil {
				t.Fatalf("NewEngine failed: %v", err)
			}
			for _, m := range moves {
				d, ok := core.ParseDirection(string(m))
				if !ok {
					t.Fatalf("bad move %q", m)
				}
				eng.PushKey(d)
				eng.Tick()
			}
			if got := eng.Gameplay().State; got != core.StateWon {
				t.Errorf("state after %q = %s, expected Won", moves, got)
			}
		})
	}
}
