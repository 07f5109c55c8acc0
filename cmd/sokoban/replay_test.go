package main

import (
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	engine "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func TestParseMoves(t *testing.T) {
	tests := []struct {
		in      string
		want    []engine.Direction
		wantErr bool
	}{
		{"RRUL", []engine.Direction{engine.DirRight, engine.DirRight, engine.DirUp, engine.DirLeft}, false},
		{"r d", []engine.Direction{engine.DirRight, engine.DirDown}, false},
		{"right,up", []engine.Direction{engine.DirRight, engine.DirUp}, false},
		{"down", []engine.Direction{engine.DirDown}, false},
		{"RX", nil, true},
		{"left jump", nil, true},
	}

	for _, tt := range tests {
		got, err := parseMoves(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMoves(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseMoves(%q) = %v, expected %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseMoves(%q)[%d] = %v, expected %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestActionRoundTrip(t *testing.T) {
	for _, d := range []engine.Direction{engine.DirUp, engine.DirDown, engine.DirLeft, engine.DirRight} {
		if a := action(d); !a.IsDirection() || a == core.ActionNone {
			t.Errorf("action(%v) = %v", d, a)
		}
	}
}
