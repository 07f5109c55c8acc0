package formats

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

const classicMap = `
    N N W W W W W W
    W W W . . . . W
    W . . . B . . W
    W . . . . . . W
    W . P . . . . W
    W . . . . . . W
    W . . S . . . W
    W . . . . . . W
    W W W W W W W W
`

func TestParseMapClassic(t *testing.T) {
	w, h, cells, err := ParseMap(classicMap)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if w != 8 || h != 9 {
		t.Errorf("expected 8x9, got %dx%d", w, h)
	}
	if len(cells) != 72 {
		t.Errorf("expected 72 cells, got %d", len(cells))
	}

	var box, spot core.Cell
	for _, c := range cells {
		switch c.Code {
		case core.CellBox:
			box = c
		case core.CellBoxSpot:
			spot = c
		}
	}
	if box.X != 4 || box.Y != 2 || box.Colour != core.ColourBlue {
		t.Errorf("legacy box = %+v, expected blue at (4,2)", box)
	}
	if spot.X != 3 || spot.Y != 6 || spot.Colour != core.ColourBlue {
		t.Errorf("legacy spot = %+v, expected blue at (3,6)", spot)
	}

	if _, err := core.Build(w, h, cells); err != nil {
		t.Errorf("Build failed on classic map: %v", err)
	}
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code string
	}{
		{"empty", "  \n\n ", "EMPTY"},
		{"unknown token", "P . X", "UNKNOWN_CELL"},
		{"lowercase", "p .", "UNKNOWN_CELL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := ParseMap(tc.text)
			var lerr *core.LevelError
			if !errors.As(err, &lerr) {
				t.Fatalf("expected LevelError, got %v", err)
			}
			if lerr.Code != tc.code {
				t.Errorf("Code = %s, expected %s", lerr.Code, tc.code)
			}
		})
	}
}

func TestParseMapUnknownTokenPosition(t *testing.T) {
	_, _, _, err := ParseMap("W W W\nW P Q")
	var lerr *core.LevelError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LevelError, got %v", err)
	}
	if lerr.X != 2 || lerr.Y != 1 {
		t.Errorf("error at (%d,%d), expected (2,1)", lerr.X, lerr.Y)
	}
}

func TestFormatMapRoundTrip(t *testing.T) {
	const text = "N W W W\nW P RB RS\nW BB BS ."
	w, h, cells, err := ParseMap(text)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}
	if got := FormatMap(w, h, cells); got != text {
		t.Errorf("FormatMap =\n%s\nexpected\n%s", got, text)
	}
}

func TestParseText(t *testing.T) {
	data := []byte("; id: corridor\n; Name: The Corridor\n; author: test\nW P BB BS W\n")

	lvl, err := ParseText(data)
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}
	if lvl.ID != "corridor" {
		t.Errorf("ID = %q", lvl.ID)
	}
	if lvl.Name != "The Corridor" {
		t.Errorf("Name = %q", lvl.Name)
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("Metadata = %v", lvl.Metadata)
	}
	if lvl.Width != 5 || lvl.Height != 1 {
		t.Errorf("expected 5x1, got %dx%d", lvl.Width, lvl.Height)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: yaml-level
name: YAML Level
map: |
  W W W W W
  W P RB RS W
  W W W W W
metadata:
  difficulty: easy
`)

	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.ID != "yaml-level" || lvl.Name != "YAML Level" {
		t.Errorf("got ID=%q Name=%q", lvl.ID, lvl.Name)
	}
	if lvl.Width != 5 || lvl.Height != 3 {
		t.Errorf("expected 5x3, got %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.Metadata["difficulty"] != "easy" {
		t.Errorf("Metadata = %v", lvl.Metadata)
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	if _, err := ParseYAML([]byte("id: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
id = "toml-level"
name = "TOML Level"
map = """
W W W W
W P BB BS
W W W W
"""

[metadata]
author = "someone"
`)

	lvl, err := ParseTOML(data)
	if err != nil {
		t.Fatalf("ParseTOML failed: %v", err)
	}
	if lvl.ID != "toml-level" {
		t.Errorf("ID = %q", lvl.ID)
	}
	if lvl.Width != 4 || lvl.Height != 3 {
		t.Errorf("expected 4x3, got %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.Metadata["author"] != "someone" {
		t.Errorf("Metadata = %v", lvl.Metadata)
	}
}

func TestParseTOMLUnknownKey(t *testing.T) {
	data := []byte("id = \"x\"\nmap = \"P\"\nsize = 3\n")
	if _, err := ParseTOML(data); err == nil {
		t.Error("expected error for unknown key")
	}
}
