package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/blastpong/internal/engine"
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
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("bomber", "alice", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("pong", "bob", 5); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("bomber", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("TopScores returned %d entries, expected 3", len(scores))
	}
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Player != "alice" {
		t.Errorf("Player = %q, expected alice", scores[0].Player)
	}

	limited, _ := store.TopScores("bomber", 2)
	if len(limited) != 2 {
		t.Errorf("TopScores(limit 2) returned %d entries", len(limited))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("bomber")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore on empty table = %d, expected 0", high)
	}

	store.SaveScore("bomber", "", 100)
	store.SaveScore("bomber", "", 300)
	store.SaveScore("bomber", "", 200)

	high, _ = store.HighScore("bomber")
	if high != 300 {
		t.Errorf("HighScore = %d, expected 300", high)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		GameID:   "bomber",
		Player:   "alice",
		Seed:     42,
		Ticks:    182,
		Score:    0,
		Outcome:  "lost",
		Duration: 3016 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.SaveRun(Run{GameID: "pong", Seed: 1, Ticks: 100, Outcome: "tick_limit"})
	store.SaveRun(Run{GameID: "bomber", Seed: 7, Ticks: 900, Score: 40, Outcome: "won"})

	r, err := store.RunByID(id)
	if err != nil || r == nil {
		t.Fatalf("RunByID() = %v, %v", r, err)
	}
	if r.Seed != 42 || r.Ticks != 182 || r.Outcome != "lost" || r.Duration != 3016*time.Millisecond {
		t.Errorf("RunByID = %+v", r)
	}

	missing, err := store.RunByID(9999)
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v, expected nil, nil", missing, err)
	}

	bomberRuns, _ := store.RecentRuns("bomber", 10)
	if len(bomberRuns) != 2 || bomberRuns[0].Seed != 7 {
		t.Errorf("RecentRuns(bomber) = %+v, expected newest first", bomberRuns)
	}
	all, _ := store.RecentRuns("", 10)
	if len(all) != 3 {
		t.Errorf("RecentRuns(all) returned %d runs, expected 3", len(all))
	}
}

func TestStoreSaveSummary(t *testing.T) {
	store := openTestStore(t)

	sum := engine.Summary{GameID: "bomber", Seed: 3, Ticks: 500, Score: 30, Won: true, GameOver: true, Exit: "game_over"}
	if _, err := store.SaveSummary(sum, "carol"); err != nil {
		t.Fatalf("SaveSummary() failed: %v", err)
	}
	if _, err := store.SaveSummary(engine.Summary{GameID: "bomber", Exit: "quit"}, "carol"); err != nil {
		t.Fatalf("SaveSummary() failed: %v", err)
	}

	scores, _ := store.TopScores("bomber", 10)
	if len(scores) != 1 {
		t.Errorf("scoreless run should not add a score entry, got %d entries", len(scores))
	}

	stats, err := store.GetGameStats("bomber")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 30 || stats.TotalScore != 30 {
		t.Errorf("stats = %+v", stats)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["bomber"] == nil {
		t.Errorf("GetAllGamesStats = %v", all)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveSummary(engine.Summary{GameID: "bomber", Score: 10, Exit: "quit"}, "")
	store.SaveSummary(engine.Summary{GameID: "pong", Score: 3, Exit: "quit"}, "")

	if err := store.ClearScores("bomber"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("bomber", 10); len(scores) != 0 {
		t.Errorf("bomber scores after clear = %d, expected 0", len(scores))
	}
	if runs, _ := store.RecentRuns("bomber", 10); len(runs) != 0 {
		t.Errorf("bomber runs after clear = %d, expected 0", len(runs))
	}
	if scores, _ := store.TopScores("pong", 10); len(scores) != 1 {
		t.Error("pong scores should not be affected by clearing bomber")
	}
}

func TestStoreEmptyStats(t *testing.T) {
	store := openTestStore(t)
	stats, err := store.GetGameStats("pong")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("stats = %+v, expected empty", stats)
	}
}
