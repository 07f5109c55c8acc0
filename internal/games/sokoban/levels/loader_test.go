package levels

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// testdataPath returns path to testdata/<name>.
func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(testdataPath("levels"))

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	if len(lvls) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(lvls))
	}

	// Should be sorted by ID
	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}
}

func TestLoaderIDFromFilename(t *testing.T) {
	loader := NewLoader(testdataPath("levels"))

	lvl, err := loader.LoadByID("01-corridor")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Corridor" {
		t.Errorf("expected Name 'Corridor', got %q", lvl.Name)
	}
	if lvl.Width != 6 || lvl.Height != 3 {
		t.Errorf("expected 6x3, got %dx%d", lvl.Width, lvl.Height)
	}
}

func TestLoaderFormats(t *testing.T) {
	loader := NewLoader(testdataPath("levels"))

	tests := []struct {
		id     string
		name   string
		width  int
		height int
	}{
		{"01-corridor", "Corridor", 6, 3},
		{"02-colours", "Two Colours", 6, 4},
		{"03-square", "Square", 5, 4},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			lvl, err := loader.LoadByID(tc.id)
			if err != nil {
				t.Fatalf("LoadByID failed: %v", err)
			}
			if lvl.Title() != tc.name {
				t.Errorf("Title() = %q, expected %q", lvl.Title(), tc.name)
			}
			if lvl.Width != tc.width || lvl.Height != tc.height {
				t.Errorf("expected %dx%d, got %dx%d", tc.width, tc.height, lvl.Width, lvl.Height)
			}
			if _, err := lvl.NewEngine(); err != nil {
				t.Errorf("NewEngine failed: %v", err)
			}
		})
	}
}

func TestLoaderUnknownID(t *testing.T) {
	loader := NewLoader(testdataPath("levels"))

	_, err := loader.LoadByID("nope")
	if !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestLoaderReportsBrokenFiles(t *testing.T) {
	loader := NewLoader(testdataPath("broken"))

	lvls, err := loader.LoadAll()
	if err == nil {
		t.Fatal("expected errors for broken files")
	}
	if len(lvls) != 1 || lvls[0].ID != "01-corridor" {
		t.Errorf("expected the valid level to survive, got %v", lvls)
	}

	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FileError in %v", err)
	}

	var lerr *core.LevelError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LevelError in %v", err)
	}
}

func TestLoaderDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt":  {Data: []byte("; id: same\nP BB BS")},
		"b.yaml": {Data: []byte("id: same\nmap: P BB BS\n")},
	}

	lvls, err := NewFSLoader(fsys, "mem").LoadAll()
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	if len(lvls) != 1 {
		t.Errorf("expected first level kept, got %d", len(lvls))
	}
}

func TestLevelMap(t *testing.T) {
	fsys := fstest.MapFS{
		"x.txt": {Data: []byte("N W W\nW P B\nW S .")},
	}

	lvl, err := NewFSLoader(fsys, "mem").LoadFile("x.txt")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if got, want := lvl.Map(), "N W W\nW P BB\nW BS ."; got != want {
		t.Errorf("Map() =\n%s\nexpected\n%s", got, want)
	}
	if lvl.FilePath != "mem/x.txt" {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}
}

func TestFind(t *testing.T) {
	lvls := []Level{{ID: "a"}, {ID: "b"}}
	if i, err := Find(lvls, "b"); err != nil || i != 1 {
		t.Errorf("Find(b) = %d, %v", i, err)
	}
	if _, err := Find(lvls, "c"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Find(c) error = %v", err)
	}
}
