package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	records := []Completion{
		{PackID: "classic", LevelID: "01", Player: "ann", Moves: 14, Duration: 9 * time.Second},
		{PackID: "classic", LevelID: "01", Player: "bob", Moves: 12, Duration: 20 * time.Second},
		{PackID: "classic", LevelID: "01", Player: "cat", Moves: 12, Duration: 5 * time.Second},
		{PackID: "classic", LevelID: "02", Player: "ann", Moves: 30},
		{PackID: "other", LevelID: "01", Player: "ann", Moves: 1},
	}
	for _, r := range records {
		if _, err := store.SaveCompletion(r); err != nil {
			t.Fatalf("SaveCompletion() failed: %v", err)
		}
	}

	top, err := store.TopCompletions("classic", "01", 10)
	if err != nil {
		t.Fatalf("TopCompletions() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 completions, got %d", len(top))
	}

	// Fewest moves first, faster solve breaks ties
	if top[0].Player != "cat" || top[1].Player != "bob" || top[2].Player != "ann" {
		t.Errorf("unexpected order: %s, %s, %s", top[0].Player, top[1].Player, top[2].Player)
	}
	if top[0].Duration != 5*time.Second {
		t.Errorf("Duration = %v, expected 5s", top[0].Duration)
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestTopCompletionsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveCompletion(Completion{PackID: "p", LevelID: "l", Moves: i + 1}); err != nil {
			t.Fatal(err)
		}
	}

	top, err := store.TopCompletions("p", "l", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 5 || top[0].Moves != 1 {
		t.Errorf("got %d entries starting at %d moves", len(top), top[0].Moves)
	}

	// Non-positive limit falls back to 10
	top, err = store.TopCompletions("p", "l", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 10 {
		t.Errorf("default limit returned %d entries", len(top))
	}
}

func TestSaveCompletionValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveCompletion(Completion{LevelID: "x", Moves: 1}); err == nil {
		t.Error("expected error for missing pack ID")
	}
	if _, err := store.SaveCompletion(Completion{PackID: "p", LevelID: "x", Moves: -1}); err == nil {
		t.Error("expected error for negative moves")
	}
}

func TestBestMoves(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.BestMoves("classic", "01"); err != nil || ok {
		t.Errorf("unsolved level: ok=%v err=%v", ok, err)
	}

	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Moves: 20})
	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Moves: 13})

	best, ok, err := store.BestMoves("classic", "01")
	if err != nil || !ok || best != 13 {
		t.Errorf("BestMoves() = %d, %v, %v; expected 13", best, ok, err)
	}
}

func TestPackProgress(t *testing.T) {
	store := openTestStore(t)

	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Moves: 20})
	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Moves: 15})
	store.SaveCompletion(Completion{PackID: "classic", LevelID: "03", Moves: 3})
	store.SaveCompletion(Completion{PackID: "other", LevelID: "02", Moves: 7})

	progress, err := store.PackProgress("classic")
	if err != nil {
		t.Fatalf("PackProgress() failed: %v", err)
	}
	if len(progress) != 2 || progress["01"] != 15 || progress["03"] != 3 {
		t.Errorf("PackProgress() = %v", progress)
	}
}

func TestClearCompletions(t *testing.T) {
	store := openTestStore(t)

	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Moves: 20})
	store.SaveCompletion(Completion{PackID: "classic", LevelID: "02", Moves: 20})

	if err := store.ClearCompletions("classic", "01"); err != nil {
		t.Fatalf("ClearCompletions() failed: %v", err)
	}

	if _, ok, _ := store.BestMoves("classic", "01"); ok {
		t.Error("level 01 should have no records")
	}
	if _, ok, _ := store.BestMoves("classic", "02"); !ok {
		t.Error("level 02 should keep its records")
	}
}

func TestGetLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetLevelStats("classic", "01")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Solves != 0 || empty.BestMoves != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Player: "ann", Moves: 10})
	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Player: "ann", Moves: 20})
	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Player: "bob", Moves: 30})

	stats, err := store.GetLevelStats("classic", "01")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Solves != 3 || stats.BestMoves != 10 || stats.Players != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgMoves != 20 {
		t.Errorf("AvgMoves = %v, expected 20", stats.AvgMoves)
	}
	if stats.LastSolved.IsZero() {
		t.Error("LastSolved should be set")
	}
}

func TestStorePersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	store.SaveCompletion(Completion{PackID: "classic", LevelID: "01", Moves: 9})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if best, ok, _ := store.BestMoves("classic", "01"); !ok || best != 9 {
		t.Errorf("BestMoves after reopen = %d, %v", best, ok)
	}
}
