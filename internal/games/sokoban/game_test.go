package sokoban

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/audio"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	engine "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

func testLevels(t *testing.T) []levels.Level {
	t.Helper()

	fsys := fstest.MapFS{
		"a.txt": {Data: []byte("; name: Alpha\nW W W W W W\nW P BB . BS W\nW W W W W W")},
		"b.txt": {Data: []byte("; name: Beta\nW W W W W\nW P RB BS W\nW W W W W")},
	}
	lvls, err := levels.NewFSLoader(fsys, "mem").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	return lvls
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newGame(t *testing.T, opts ...Option) (*Game, *audio.Recorder) {
	t.Helper()

	rec := &audio.Recorder{}
	opts = append([]Option{WithSounds(rec)}, opts...)
	g, err := New(testLevels(t), opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.Reset(core.DefaultConfig())
	return g, rec
}

func TestNewWithoutLevels(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoLevels) {
		t.Errorf("expected ErrNoLevels, got %v", err)
	}
}

func TestStepSolvesLevel(t *testing.T) {
	g, rec := newGame(t)

	res := g.Step(frame(core.ActionRight))
	if res.State.Won || res.State.Moves != 1 {
		t.Fatalf("after one push: %+v", res.State)
	}

	res = g.Step(frame(core.ActionRight))
	if !res.State.Won || !res.Solved {
		t.Errorf("expected the second push to solve the level: %+v", res)
	}
	if res.State.Finished {
		t.Error("first level of two should not finish the pack")
	}

	// The correct cue lags the placing push by one tick.
	res = g.Step(frame())
	if len(res.Sounds) != 1 || res.Sounds[0] != audio.CueCorrect {
		t.Errorf("sounds = %v, expected [correct]", res.Sounds)
	}
	if res.Solved {
		t.Error("Solved should only be reported on the transition tick")
	}
	if rec.Count(audio.CueCorrect) != 1 {
		t.Errorf("recorder = %v", rec.Cues())
	}
}

func TestStepMostRecentDirectionWins(t *testing.T) {
	g, _ := newGame(t)

	// Left runs into the wall; Right was pressed last and wins this tick.
	g.Step(frame(core.ActionLeft, core.ActionRight))
	if g.State().Moves != 1 {
		t.Errorf("Moves = %d, expected 1", g.State().Moves)
	}

	// The stale Left is consumed on the next tick and hits nothing but floor.
	res := g.Step(frame())
	if res.State.Moves != 2 {
		t.Errorf("Moves = %d, expected queued Left to move", res.State.Moves)
	}
}

func TestStepRestart(t *testing.T) {
	g, _ := newGame(t)

	g.Step(frame(core.ActionRight))
	res := g.Step(frame(core.ActionRestart))

	if res.State.Moves != 0 {
		t.Errorf("Moves after restart = %d, expected 0", res.State.Moves)
	}
}

func TestStepLevelNavigation(t *testing.T) {
	g, _ := newGame(t)

	res := g.Step(frame(core.ActionNextLevel))
	if res.State.LevelID != "b" || res.State.LevelIndex != 1 {
		t.Fatalf("after next: %+v", res.State)
	}

	// Past the end stays put.
	res = g.Step(frame(core.ActionNextLevel))
	if res.State.LevelID != "b" {
		t.Errorf("next on last level moved to %s", res.State.LevelID)
	}

	res = g.Step(frame(core.ActionRight))
	if !res.State.Won || !res.State.Finished {
		t.Errorf("red box on blue spot should still finish the pack: %+v", res.State)
	}

	res = g.Step(frame(core.ActionPrevLevel))
	if res.State.LevelID != "a" {
		t.Errorf("after prev: %s", res.State.LevelID)
	}
}

func TestIncorrectCue(t *testing.T) {
	g, rec := newGame(t)
	if err := g.SelectLevel("b"); err != nil {
		t.Fatalf("SelectLevel: %v", err)
	}

	g.Step(frame(core.ActionRight))
	g.Step(frame())

	if rec.Count(audio.CueIncorrect) != 1 {
		t.Errorf("cues = %v, expected one incorrect", rec.Cues())
	}
}

func TestSelectErrors(t *testing.T) {
	g, _ := newGame(t)

	if err := g.SelectLevel("zzz"); !errors.Is(err, levels.ErrUnknownLevel) {
		t.Errorf("SelectLevel(zzz) = %v", err)
	}
	if err := g.SelectIndex(5); err == nil {
		t.Error("SelectIndex(5) should fail")
	}
}

func TestRenderBoard(t *testing.T) {
	now := time.Unix(0, 0)
	g, _ := newGame(t, WithClock(func() time.Time { return now }))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Alpha", "Playing", "Moves: 0", "Boxes: 0/1", "██", "@", "[]", "()"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if len(g.MissingAssets()) != 0 {
		t.Errorf("default theme should cover all assets, missing %v", g.MissingAssets())
	}
}

func TestRenderAnimationFrames(t *testing.T) {
	now := time.Unix(0, 0)
	g, _ := newGame(t, WithClock(func() time.Time { return now }))
	scr := core.NewScreen(80, 24)

	playerGlyph := func() string {
		g.Render(scr)
		for y := 0; y < scr.Height(); y++ {
			row := []rune(scr.Row(y))
			for x, r := range row {
				if r == '@' {
					return string(row[x : x+2])
				}
			}
		}
		return ""
	}

	if got := playerGlyph(); got != "@ " {
		t.Errorf("frame 0 = %q", got)
	}
	now = now.Add(250 * time.Millisecond)
	if got := playerGlyph(); got != "@'" {
		t.Errorf("frame 1 = %q", got)
	}
}

func TestFrameIndex(t *testing.T) {
	tests := []struct {
		ms   int64
		want int
	}{
		{0, 0}, {249, 0}, {250, 1}, {999, 3}, {1000, 0}, {1750, 3},
	}
	for _, tt := range tests {
		if got := frameIndex(tt.ms); got != tt.want {
			t.Errorf("frameIndex(%d) = %d, expected %d", tt.ms, got, tt.want)
		}
	}
}

func TestRenderUnknownAsset(t *testing.T) {
	theme := DefaultTheme()
	delete(theme.Tiles, "/images/wall.png")

	g, _ := newGame(t, WithTheme(theme))
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	if !strings.Contains(scr.String(), "?") {
		t.Error("unknown asset should render as ?")
	}
	missing := g.MissingAssets()
	if len(missing) != 1 || missing[0] != "/images/wall.png" {
		t.Errorf("MissingAssets() = %v", missing)
	}
}

func TestRenderWonBanner(t *testing.T) {
	g, _ := newGame(t)
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Level complete!") {
		t.Errorf("missing win banner:\n%s", scr.String())
	}
	if !strings.Contains(scr.String(), engine.StateWon.String()) {
		t.Error("HUD should show the won state")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g, _ := newGame(t)
	g.Resize(8, 4)

	scr := core.NewScreen(30, 4)
	g.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Errorf("expected too small message:\n%s", scr.String())
	}
}

func TestThemeOverride(t *testing.T) {
	theme, err := DefaultTheme().Override(map[string]string{
		"/images/wall.png": "##:orange",
		"/images/mine.png": "!",
	})
	if err != nil {
		t.Fatalf("Override failed: %v", err)
	}
	if tile := theme.Tiles["/images/wall.png"]; tile.Glyph != "##" || tile.Color != core.ColorOrange {
		t.Errorf("wall tile = %+v", tile)
	}
	if tile := theme.Tiles["/images/mine.png"]; tile.Glyph != "!" || tile.Color != core.ColorDefault {
		t.Errorf("mine tile = %+v", tile)
	}
	if DefaultTheme().Tiles["/images/wall.png"].Glyph != "██" {
		t.Error("Override must not mutate the source theme")
	}

	if _, err := DefaultTheme().Override(map[string]string{"x": "##:mauve"}); err == nil {
		t.Error("expected unknown color error")
	}
}

func TestPadGlyph(t *testing.T) {
	tests := map[string]string{"#": "# ", "##": "##", "###": "##", "█": "█ "}
	for in, want := range tests {
		if got := padGlyph(in); got != want {
			t.Errorf("padGlyph(%q) = %q, expected %q", in, got, want)
		}
	}
}
